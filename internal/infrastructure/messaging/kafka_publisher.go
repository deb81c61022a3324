package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"zerovicio/internal/domain/entities"
	"zerovicio/internal/infrastructure/telemetry"
	"zerovicio/internal/usecase/interfaces"
)

const (
	EventChargeCreated = "pix.charge.created"
	DefaultTopic       = "pix.charge.created"

	defaultBatchTimeout = 50 * time.Millisecond
)

var ErrNoBrokers = errors.New("kafka brokers not configured")

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ChargeCreatedEvent is the message value. Attribution ids travel with the
// event so conversion tracking does not need to read the store.
type ChargeCreatedEvent struct {
	Event     string    `json:"event"`
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	IsMock    bool      `json:"is_mock"`
	Plan      string    `json:"plan"`
	Price     string    `json:"price"`
	Currency  string    `json:"currency"`
	Email     string    `json:"email"`
	FBP       string    `json:"fbp,omitempty"`
	FBC       string    `json:"fbc,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

var _ interfaces.ITransactionEventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher builds a synchronous writer for a comma separated broker
// list. Messages are keyed by transaction id.
func NewKafkaPublisher(brokers, topic string) (*KafkaPublisher, error) {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, ErrNoBrokers
	}
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           defaultBatchTimeout,
		Async:                  false,
		AllowAutoTopicCreation: false,
	}
	telemetry.Logger.Info("[messaging][kafka] publisher ready",
		zap.Strings("brokers", addrs),
		zap.String("topic", topic),
	)
	return &KafkaPublisher{writer: w, topic: topic}, nil
}

func (p *KafkaPublisher) PublishCreated(ctx context.Context, r entities.TransactionRecord) error {
	value, err := json.Marshal(newChargeCreatedEvent(r))
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(r.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(EventChargeCreated)},
		},
	}); err != nil {
		telemetry.Logger.Error("[messaging][kafka] publish failed",
			zap.String("topic", p.topic),
			zap.String("transaction_id", r.ID),
			zap.Error(err),
		)
		return err
	}
	telemetry.Logger.Info("[messaging][kafka] event published",
		zap.String("topic", p.topic),
		zap.String("transaction_id", r.ID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newChargeCreatedEvent(r entities.TransactionRecord) ChargeCreatedEvent {
	return ChargeCreatedEvent{
		Event:     EventChargeCreated,
		ID:        r.ID,
		Provider:  r.Provider,
		IsMock:    r.IsMock,
		Plan:      r.Plan,
		Price:     r.Price.StringFixed(2),
		Currency:  "BRL",
		Email:     r.Email,
		FBP:       r.FBP,
		FBC:       r.FBC,
		CreatedAt: r.CreatedAt,
	}
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
