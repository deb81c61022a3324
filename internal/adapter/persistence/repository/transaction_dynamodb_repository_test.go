package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"zerovicio/internal/domain/entities"
)

type fakePutItem struct {
	input *dynamodb.PutItemInput
	err   error
}

func (f *fakePutItem) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func TestTransactionDynamoRepository_Upsert(t *testing.T) {
	fake := &fakePutItem{}
	repo := newTransactionDynamoRepository(fake, "transactions")

	err := repo.Upsert(context.Background(), entities.TransactionRecord{
		ID:        "tx-1",
		Status:    entities.TransactionStatusCreated,
		Provider:  entities.ProviderMock,
		PixCode:   "000201",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600)),
		IsMock:    true,
		Name:      "Joana",
		Email:     "joana@example.com",
		Price:     decimal.RequireFromString("167.9"),
		Attempts: []entities.AttemptDiagnostic{
			{Gateway: "gw1", Outcome: entities.AttemptTimeout},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := fake.input
	if in == nil {
		t.Fatalf("expected PutItem call")
	}
	if *in.TableName != "transactions" {
		t.Fatalf("unexpected table %q", *in.TableName)
	}
	if in.ConditionExpression != nil {
		t.Fatalf("upsert must not carry a condition expression")
	}

	assertS(t, in.Item, "id", "tx-1")
	assertS(t, in.Item, "status", "created")
	assertS(t, in.Item, "provider", "MOCK_DEV")
	assertS(t, in.Item, "price", "167.90")
	assertS(t, in.Item, "created_at", "2026-03-01T15:00:00Z")

	if _, ok := in.Item["fbp"]; ok {
		t.Fatalf("empty fbp should be omitted")
	}
	if v, ok := in.Item["is_mock"].(*types.AttributeValueMemberBOOL); !ok || !v.Value {
		t.Fatalf("expected is_mock=true, got %#v", in.Item["is_mock"])
	}
	attempts, ok := in.Item["attempts"].(*types.AttributeValueMemberL)
	if !ok || len(attempts.Value) != 1 {
		t.Fatalf("expected one attempt line, got %#v", in.Item["attempts"])
	}
}

func TestTransactionDynamoRepository_UpsertError(t *testing.T) {
	repo := newTransactionDynamoRepository(&fakePutItem{err: errors.New("throttled")}, "transactions")

	err := repo.Upsert(context.Background(), entities.TransactionRecord{ID: "tx-2"})
	if err == nil || err.Error() != "throttled" {
		t.Fatalf("expected throttled error, got %v", err)
	}
}

func TestTransactionsTableName(t *testing.T) {
	t.Setenv("TRANSACTIONS_TABLE", "")
	if got := TransactionsTableName(); got != "transactions" {
		t.Fatalf("expected default table, got %q", got)
	}
	t.Setenv("TRANSACTIONS_TABLE", "zv-transactions")
	if got := TransactionsTableName(); got != "zv-transactions" {
		t.Fatalf("expected env table, got %q", got)
	}
}

func assertS(t *testing.T, item map[string]types.AttributeValue, key, want string) {
	t.Helper()
	v, ok := item[key].(*types.AttributeValueMemberS)
	if !ok {
		t.Fatalf("expected string attribute %q, got %#v", key, item[key])
	}
	if v.Value != want {
		t.Fatalf("attribute %q: expected %q, got %q", key, want, v.Value)
	}
}
