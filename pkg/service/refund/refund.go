// Package refund orchestrates refund requests and their resolution.
package refund

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/huanvu/gigmart/infra/metrics"
	"github.com/huanvu/gigmart/pkg/domain/refund"
	"github.com/huanvu/gigmart/pkg/domain/transaction"
	"github.com/huanvu/gigmart/pkg/repository"
	notificationsvc "github.com/huanvu/gigmart/pkg/service/notification"
)

// Service manages the refund request lifecycle: none -> pending ->
// approved/rejected. Approval does not move funds back; the ledger keeps
// the original transfer.
type Service struct {
	uow      repository.UnitOfWork
	notifier *notificationsvc.Service
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a refund Service.
func New(
	uow repository.UnitOfWork,
	notifier *notificationsvc.Service,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, notifier: notifier, logger: logger, now: time.Now}
}

// CreateRequest opens a refund request for one of the buyer's finished
// transactions. Requests are only accepted within the refund window after
// finished_at, and each transaction can be refunded at most once.
// Notifications go out after the request is committed; their delivery
// never affects the request itself.
func (s *Service) CreateRequest(
	ctx context.Context,
	username string,
	transactionID int64,
	reason string,
) (*refund.Request, error) {
	req := &refund.Request{TransactionID: transactionID, Reason: reason}
	var seller string
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		t, err := uow.Transactions().Get(ctx, transactionID)
		if err != nil {
			return err
		}
		if err := t.AuthorizeBuyer(username); err != nil {
			return err
		}
		if !t.Finished {
			return transaction.ErrNotFinished
		}
		if !refund.WithinWindow(*t.FinishedAt, s.now()) {
			return refund.ErrWindowExpired
		}
		if err := uow.Refunds().Create(ctx, req); err != nil {
			return err
		}
		j, err := uow.Jobs().Get(ctx, t.JobID)
		if err != nil {
			return err
		}
		seller = j.Username
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RefundRequestsTotal.Inc()
	text := fmt.Sprintf("A refund has been requested for transaction #%d", transactionID)
	s.notifier.NotifyQuietly(ctx, username, text)
	s.notifier.NotifyQuietly(ctx, seller, text)
	return req, nil
}

// Resolve records the admin decision on a pending request, exactly once.
func (s *Service) Resolve(ctx context.Context, transactionID int64, approved bool) error {
	var buyer, seller string
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		req, err := uow.Refunds().GetByTransaction(ctx, transactionID)
		if err != nil {
			return err
		}
		if !req.IsPending() {
			return refund.ErrAlreadyResolved
		}
		if err := uow.Refunds().Resolve(ctx, transactionID, approved); err != nil {
			return err
		}
		t, err := uow.Transactions().Get(ctx, transactionID)
		if err != nil {
			return err
		}
		buyer = t.Buyer
		j, err := uow.Jobs().Get(ctx, t.JobID)
		if err != nil {
			return err
		}
		seller = j.Username
		return nil
	})
	if err != nil {
		return err
	}

	metrics.RecordRefundResolved(approved)
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	text := fmt.Sprintf("The refund request for transaction #%d has been %s", transactionID, outcome)
	s.notifier.NotifyQuietly(ctx, buyer, text)
	s.notifier.NotifyQuietly(ctx, seller, text)
	s.logger.Info("refund resolved", "transaction_id", transactionID, "approved", approved)
	return nil
}

// ListPending returns all unresolved requests with transaction and job
// context for admin review.
func (s *Service) ListPending(ctx context.Context) (pending []refund.PendingRequest, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pending, err = uow.Refunds().ListPending(ctx)
		return err
	})
	return pending, err
}
