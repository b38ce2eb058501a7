// Package job defines the job listing persistence interface.
package job

import (
	"context"

	"github.com/huanvu/gigmart/pkg/domain/job"
)

// ListOptions selects and pages job listings.
type ListOptions struct {
	Page         int
	Size         int // -1 fetches all pages
	ApprovedOnly bool
	Filter       job.Filter
}

// Repository persists job listings, their price tiers and job types.
// Not-found lookups return job.ErrNoJob.
type Repository interface {
	// Create inserts the job and its price tiers and fills in the new ID.
	Create(ctx context.Context, j *job.Job) error
	Get(ctx context.Context, id int64) (*job.Job, error)
	List(ctx context.Context, opts ListOptions) ([]job.Job, error)
	// Update applies the patch and resets status to pending review.
	// Non-nil tier lists replace the existing tiers wholesale.
	Update(ctx context.Context, id int64, patch job.Patch) error
	// SetStatus records an admin approval (true) or rejection (false).
	SetStatus(ctx context.Context, id int64, approved bool) error
	ListTypes(ctx context.Context) ([]job.Type, error)
}
