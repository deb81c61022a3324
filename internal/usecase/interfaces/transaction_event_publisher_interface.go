package interfaces

import (
	"context"

	"zerovicio/internal/domain/entities"
)

// ITransactionEventPublisher emits a "charge created" event for downstream
// consumers (conversion tracking, CRM).
type ITransactionEventPublisher interface {
	PublishCreated(ctx context.Context, r entities.TransactionRecord) error
}
