package database

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	appconfig "zerovicio/internal/config"
	"zerovicio/internal/infrastructure/telemetry"
)

// NewDynamoDBClientFromEnv creates a DynamoDB client using environment variables.
//
// Supported env vars (local-friendly):
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (static, only when DYNAMODB_ENDPOINT is set)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
//
// Without DYNAMODB_ENDPOINT the default AWS credential chain is used.
func NewDynamoDBClientFromEnv(ctx context.Context) (*dynamodb.Client, error) {
	endpoint := os.Getenv("DYNAMODB_ENDPOINT")

	cfg, err := newAWSConfig(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamodb config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	telemetry.Logger.Info("[database][dynamodb] client ready",
		zap.String("region", cfg.Region),
		zap.String("endpoint", endpoint),
	)
	return client, nil
}

func newAWSConfig(ctx context.Context, endpoint string) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(appconfig.GetenvDefault("AWS_REGION", "us-east-1")),
	}

	// DynamoDB Local does not validate credentials, but the SDK requires them.
	if endpoint != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			appconfig.GetenvDefault("AWS_ACCESS_KEY_ID", "local"),
			appconfig.GetenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			"",
		)))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// EnsureTable creates a table keyed by a string "id" when it does not exist.
// Meant for DynamoDB Local; production tables are provisioned outside the app.
func EnsureTable(ctx context.Context, ddb *dynamodb.Client, table string) error {
	_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return err
	}

	_, err = ddb.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	var inUse *types.ResourceInUseException
	if err != nil && !errors.As(err, &inUse) {
		return err
	}
	telemetry.Logger.Info("[database][dynamodb] table created", zap.String("table", table))
	return nil
}
