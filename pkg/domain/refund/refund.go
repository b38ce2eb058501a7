// Package refund holds the refund request aggregate and the eligibility
// window rule.
package refund

import (
	"errors"
	"time"
)

// Window is how long after a transaction is finished its buyer may still
// request a refund.
const Window = 3 * 24 * time.Hour

var (
	// ErrNoRequest is returned when no refund request exists for a
	// transaction.
	ErrNoRequest = errors.New("no such refund request")
	// ErrAlreadyRequested is returned when a transaction already has a
	// refund request.
	ErrAlreadyRequested = errors.New("refund already requested")
	// ErrAlreadyResolved is returned when a resolved request is resolved
	// again.
	ErrAlreadyResolved = errors.New("cannot approve or reject twice")
	// ErrWindowExpired is returned when the request arrives more than
	// Window after the transaction finished.
	ErrWindowExpired = errors.New("cannot request a refund after 3 days")
)

// Request is a refund request, 1:1 with its transaction. Status is nil while
// pending, then flips exactly once to true (approved) or false (rejected).
// Approval does not reverse the wallet transfer.
type Request struct {
	TransactionID int64
	Reason        string
	Status        *bool
	CreatedAt     time.Time
}

// IsPending reports whether the request still awaits an admin decision.
func (r *Request) IsPending() bool {
	return r.Status == nil
}

// WithinWindow reports whether now is still inside the refund window that
// opened at finishedAt. The boundary instant itself is allowed.
func WithinWindow(finishedAt, now time.Time) bool {
	return now.Sub(finishedAt) <= Window
}

// PendingRequest is a pending refund request joined with transaction and
// job context for admin review.
type PendingRequest struct {
	TransactionID    int64
	Buyer            string
	Seller           string
	JobName          string
	JobType          string
	JobDescription   string
	Price            int64
	PriceDescription string
	Reason           string
	CreatedAt        time.Time
}
