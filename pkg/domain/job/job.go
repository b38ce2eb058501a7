// Package job holds the job listing aggregate and its approval lifecycle.
package job

import (
	"errors"
	"time"
)

var (
	// ErrNoJob is returned when no job exists for an ID.
	ErrNoJob = errors.New("no such job")
	// ErrNotOwner is returned when someone other than the uploader tries
	// to modify a job.
	ErrNotOwner = errors.New("only uploaders can make changes to their jobs")
	// ErrApproved is returned when an already-approved job is updated.
	ErrApproved = errors.New("job is approved, it cannot be updated anymore")
	// ErrWalletInactive is returned when a user posts a job before
	// activating their wallet.
	ErrWalletInactive = errors.New("wallet must be activated first")
	// ErrNoPriceTiers is returned when a job is created without price tiers.
	ErrNoPriceTiers = errors.New("job must have at least one price tier")
)

// PriceTier is one (price, description) option a job can be purchased at.
// A transaction always references an existing (job, price) pair.
type PriceTier struct {
	JobID       int64
	Price       int64
	Description string
}

// Type is a job category.
type Type struct {
	ID   int64
	Name string
}

// Job is a listing posted by a seller. Status is nil while the listing is
// pending admin review, true once approved and false once rejected. Only
// approved jobs are purchasable.
type Job struct {
	ID          int64
	Username    string
	Fullname    string
	Name        string
	Description string
	TypeID      int64
	TypeName    string
	CVURL       string
	Status      *bool
	PriceTiers  []PriceTier
	CreatedAt   time.Time
}

// IsApproved reports whether the listing passed admin review.
func (j *Job) IsApproved() bool {
	return j.Status != nil && *j.Status
}

// TierFor returns the price tier matching price, or nil when the job has no
// such tier.
func (j *Job) TierFor(price int64) *PriceTier {
	for i := range j.PriceTiers {
		if j.PriceTiers[i].Price == price {
			return &j.PriceTiers[i]
		}
	}
	return nil
}

// Patch carries the updatable listing fields. Nil fields are left untouched.
// Any update resets the job back to pending review.
type Patch struct {
	Name        *string
	Description *string
	TypeID      *int64
	CVURL       *string
	PriceTiers  []PriceTier
}

// Filter narrows job listings. Fields map to a fixed set of query clauses;
// caller values are always bound as parameters.
type Filter struct {
	PriceLower int64
	PriceUpper int64
	Search     string
	Username   string
	TypeID     int64
}
