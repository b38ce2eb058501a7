// Package transaction defines the transaction persistence interface.
package transaction

import (
	"context"
	"time"

	"github.com/huanvu/gigmart/pkg/domain/transaction"
)

// Repository persists purchase transactions. Not-found lookups return
// transaction.ErrNoTransaction.
type Repository interface {
	// Create inserts an unfinished transaction and fills in the new ID.
	Create(ctx context.Context, t *transaction.Transaction) error
	Get(ctx context.Context, id int64) (*transaction.Transaction, error)
	// GetDetail returns the transaction joined with job, seller and
	// refund context.
	GetDetail(ctx context.Context, id int64) (*transaction.Detail, error)
	// ListByBuyer returns all of a buyer's transactions, newest first.
	ListByBuyer(ctx context.Context, username string) ([]transaction.Detail, error)
	// MarkFinished flips status to finished and stamps finished_at.
	MarkFinished(ctx context.Context, id int64, at time.Time) error
	SetReview(ctx context.Context, id int64, review string) error
}
