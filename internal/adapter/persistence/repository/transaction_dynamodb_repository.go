package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"zerovicio/internal/config"
	"zerovicio/internal/domain/entities"
	"zerovicio/internal/usecase/interfaces"
)

const defaultTransactionsTableName = "transactions"

// putItemAPI is the slice of *dynamodb.Client this repository needs.
type putItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type transactionItem struct {
	ID        string   `dynamodbav:"id"`
	Status    string   `dynamodbav:"status"`
	Provider  string   `dynamodbav:"provider"`
	PixCode   string   `dynamodbav:"pix_code"`
	QRImage   string   `dynamodbav:"qr_image,omitempty"`
	CreatedAt string   `dynamodbav:"created_at"`
	IsMock    bool     `dynamodbav:"is_mock"`
	Name      string   `dynamodbav:"name"`
	Email     string   `dynamodbav:"email"`
	Phone     string   `dynamodbav:"phone,omitempty"`
	Plan      string   `dynamodbav:"plan,omitempty"`
	Price     string   `dynamodbav:"price"`
	FBP       string   `dynamodbav:"fbp,omitempty"`
	FBC       string   `dynamodbav:"fbc,omitempty"`
	Attempts  []string `dynamodbav:"attempts,omitempty"`
}

// TransactionDynamoRepository persists TransactionRecord documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Writes are unconditional: a record with an existing id replaces it.
type TransactionDynamoRepository struct {
	ddb       putItemAPI
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb *dynamodb.Client) *TransactionDynamoRepository {
	return newTransactionDynamoRepository(ddb, TransactionsTableName())
}

func newTransactionDynamoRepository(ddb putItemAPI, table string) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{ddb: ddb, tableName: table}
}

// TransactionsTableName reads TRANSACTIONS_TABLE, defaulting to "transactions".
func TransactionsTableName() string {
	return config.GetenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName)
}

func (r *TransactionDynamoRepository) Upsert(ctx context.Context, t entities.TransactionRecord) error {
	av, err := attributevalue.MarshalMap(toTransactionItem(t))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func toTransactionItem(t entities.TransactionRecord) transactionItem {
	return transactionItem{
		ID:        t.ID,
		Status:    string(t.Status),
		Provider:  t.Provider,
		PixCode:   t.PixCode,
		QRImage:   t.QRImage,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
		IsMock:    t.IsMock,
		Name:      t.Name,
		Email:     t.Email,
		Phone:     t.Phone,
		Plan:      t.Plan,
		Price:     t.Price.StringFixed(2),
		FBP:       t.FBP,
		FBC:       t.FBC,
		Attempts:  entities.DiagnosticLines(t.Attempts),
	}
}
