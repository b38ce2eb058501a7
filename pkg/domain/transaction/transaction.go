// Package transaction holds the purchase aggregate and its
// unfinished -> finished state machine.
package transaction

import (
	"errors"
	"time"
)

var (
	// ErrNoTransaction is returned when no transaction exists for an ID.
	ErrNoTransaction = errors.New("no such transaction")
	// ErrNotBuyer is returned when a caller operates on a transaction they
	// did not make.
	ErrNotBuyer = errors.New("not the transaction's buyer")
	// ErrSelfPurchase is returned when a user buys their own job.
	ErrSelfPurchase = errors.New("cannot buy your own job")
	// ErrNotApproved is returned when the job is not approved for sale.
	ErrNotApproved = errors.New("job has not been approved for sale")
	// ErrNoPriceTier is returned when the requested price matches none of
	// the job's price tiers.
	ErrNoPriceTier = errors.New("price does not match any price tier")
	// ErrAlreadyFinished is returned when a finished transaction is marked
	// again.
	ErrAlreadyFinished = errors.New("cannot mark twice")
	// ErrNotFinished is returned when an operation requires a finished
	// transaction.
	ErrNotFinished = errors.New("transaction has yet to be finished")
	// ErrAlreadyReviewed is returned when a second review is added.
	ErrAlreadyReviewed = errors.New("cannot review twice")
)

// Transaction is a purchase of one job at one agreed price tier. A row only
// exists once the buyer's wallet has been debited; creation and the wallet
// transfer commit as one unit. Finished flips false -> true exactly once and
// starts the refund window.
type Transaction struct {
	ID         int64
	Buyer      string
	JobID      int64
	Price      int64
	Finished   bool
	Review     *string
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// AuthorizeBuyer fails unless username is the buyer.
func (t *Transaction) AuthorizeBuyer(username string) error {
	if t.Buyer != username {
		return ErrNotBuyer
	}
	return nil
}

// CanFinish checks the one-shot unfinished -> finished transition.
func (t *Transaction) CanFinish(username string) error {
	if err := t.AuthorizeBuyer(username); err != nil {
		return err
	}
	if t.Finished {
		return ErrAlreadyFinished
	}
	return nil
}

// CanReview checks the one-shot review attachment: buyer only, finished
// only, at most once.
func (t *Transaction) CanReview(username string) error {
	if err := t.AuthorizeBuyer(username); err != nil {
		return err
	}
	if t.Review != nil {
		return ErrAlreadyReviewed
	}
	if !t.Finished {
		return ErrNotFinished
	}
	return nil
}

// Detail is a transaction joined with its job and seller context, the shape
// returned to the buyer.
type Detail struct {
	ID               int64
	Buyer            string
	Price            int64
	PriceDescription string
	JobID            int64
	JobName          string
	JobDescription   string
	Seller           Seller
	Review           *string
	IsFinished       bool
	CreatedAt        time.Time
	FinishedAt       *time.Time
	Refund           *RefundInfo
}

// Seller identifies the job's owner.
type Seller struct {
	Username string
	Fullname string
}

// RefundInfo is the refund request attached to a transaction, if any.
type RefundInfo struct {
	Reason    string
	Status    *bool
	CreatedAt time.Time
}
