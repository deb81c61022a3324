package interfaces

import (
	"context"

	"zerovicio/internal/domain/entities"
)

// ITransactionRepository abstracts the document store used to keep charges.
//
// Upsert overwrites any record with the same id. There is no read path.
type ITransactionRepository interface {
	Upsert(ctx context.Context, r entities.TransactionRecord) error
}
