// Package refund defines the refund request persistence interface.
package refund

import (
	"context"

	"github.com/huanvu/gigmart/pkg/domain/refund"
)

// Repository persists refund requests. Not-found lookups return
// refund.ErrNoRequest; inserting a second request for the same transaction
// returns refund.ErrAlreadyRequested.
type Repository interface {
	Create(ctx context.Context, r *refund.Request) error
	GetByTransaction(ctx context.Context, transactionID int64) (*refund.Request, error)
	// Resolve records the admin decision for a pending request.
	Resolve(ctx context.Context, transactionID int64, approved bool) error
	// ListPending returns all unresolved requests joined with transaction
	// and job context.
	ListPending(ctx context.Context) ([]refund.PendingRequest, error)
}
