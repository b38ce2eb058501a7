// Package job provides job listing management and admin review.
package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/huanvu/gigmart/pkg/domain/job"
	"github.com/huanvu/gigmart/pkg/repository"
	jobrepo "github.com/huanvu/gigmart/pkg/repository/job"
	notificationsvc "github.com/huanvu/gigmart/pkg/service/notification"
)

// Service manages job listings: creation, updates, browsing and admin
// approval.
type Service struct {
	uow      repository.UnitOfWork
	notifier *notificationsvc.Service
	logger   *slog.Logger
}

// New creates a job Service.
func New(
	uow repository.UnitOfWork,
	notifier *notificationsvc.Service,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, notifier: notifier, logger: logger}
}

// Create posts a new listing. The uploader must have an activated wallet,
// since approved listings receive payments.
func (s *Service) Create(ctx context.Context, j *job.Job) (*job.Job, error) {
	if len(j.PriceTiers) == 0 {
		return nil, job.ErrNoPriceTiers
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		uploader, err := uow.Accounts().FindByUsername(ctx, j.Username)
		if err != nil {
			return err
		}
		if !uploader.HasWallet() {
			return job.ErrWalletInactive
		}
		return uow.Jobs().Create(ctx, j)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("job created", "job_id", j.ID, "username", j.Username)
	return s.Find(ctx, j.ID)
}

// Find returns one listing with uploader, type and tier context.
func (s *Service) Find(ctx context.Context, id int64) (j *job.Job, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		j, err = uow.Jobs().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// List returns a page of listings. Public browsing sets ApprovedOnly;
// admin review lists the rest.
func (s *Service) List(ctx context.Context, opts jobrepo.ListOptions) (jobs []job.Job, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		jobs, err = uow.Jobs().List(ctx, opts)
		return err
	})
	return jobs, err
}

// Update patches one of the caller's listings. Approved listings are
// immutable; any accepted update resets the listing to pending review.
func (s *Service) Update(ctx context.Context, username string, id int64, patch job.Patch) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		j, err := uow.Jobs().Get(ctx, id)
		if err != nil {
			return err
		}
		if j.Username != username {
			return job.ErrNotOwner
		}
		if j.IsApproved() {
			return job.ErrApproved
		}
		return uow.Jobs().Update(ctx, id, patch)
	})
}

// Review records the admin decision and tells the uploader.
func (s *Service) Review(ctx context.Context, id int64, approved bool) error {
	var owner, name string
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		j, err := uow.Jobs().Get(ctx, id)
		if err != nil {
			return err
		}
		owner, name = j.Username, j.Name
		return uow.Jobs().SetStatus(ctx, id, approved)
	})
	if err != nil {
		return err
	}
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	s.notifier.NotifyQuietly(ctx, owner, fmt.Sprintf("Your job '%s' has been %s", name, outcome))
	return nil
}

// ListTypes returns the job categories.
func (s *Service) ListTypes(ctx context.Context) (types []job.Type, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		types, err = uow.Jobs().ListTypes(ctx)
		return err
	})
	return types, err
}
