package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zerovicio/internal/domain/entities"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_PublishCreated(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: DefaultTopic}
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := p.PublishCreated(context.Background(), entities.TransactionRecord{
		ID:        "tx-1",
		Provider:  "suitpay",
		Plan:      "anual",
		Price:     decimal.RequireFromString("167.9"),
		Email:     "joana@example.com",
		FBP:       "fb.1.123",
		FBC:       "fb.1.456",
		CreatedAt: created,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "tx-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, EventChargeCreated, string(msg.Headers[0].Value))

	var ev ChargeCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, "167.90", ev.Price)
	assert.Equal(t, "BRL", ev.Currency)
	assert.Equal(t, "fb.1.123", ev.FBP)
	assert.Equal(t, "fb.1.456", ev.FBC)
	assert.True(t, created.Equal(ev.CreatedAt))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("leader not available")}, topic: DefaultTopic}

	err := p.PublishCreated(context.Background(), entities.TransactionRecord{ID: "tx-2"})
	assert.EqualError(t, err, "leader not available")
}

func TestNewKafkaPublisher(t *testing.T) {
	_, err := NewKafkaPublisher(" , ", "")
	assert.ErrorIs(t, err, ErrNoBrokers)

	p, err := NewKafkaPublisher("kafka-1:9092, kafka-2:9092", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTopic, p.topic)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, splitBrokers("kafka-1:9092, kafka-2:9092"))
}
