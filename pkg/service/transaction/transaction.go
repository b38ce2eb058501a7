// Package transaction orchestrates purchases and the transaction
// lifecycle.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/huanvu/gigmart/infra/metrics"
	"github.com/huanvu/gigmart/pkg/domain/transaction"
	"github.com/huanvu/gigmart/pkg/domain/wallet"
	"github.com/huanvu/gigmart/pkg/repository"
	walletsvc "github.com/huanvu/gigmart/pkg/service/wallet"
)

// Service orchestrates the purchase flow and the unfinished -> finished
// transaction lifecycle.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a transaction Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// Purchase buys one job at one of its price tiers. The wallet transfer and
// the transaction insert run in the same database transaction: either the
// buyer is debited, the seller credited, one ledger entry appended and one
// transaction row created, or none of it happened.
func (s *Service) Purchase(ctx context.Context, buyer string, jobID, price int64) (*transaction.Transaction, error) {
	created := &transaction.Transaction{Buyer: buyer, JobID: jobID, Price: price}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		j, err := uow.Jobs().Get(ctx, jobID)
		if err != nil {
			return err
		}
		if j.Username == buyer {
			return transaction.ErrSelfPurchase
		}
		if !j.IsApproved() {
			return transaction.ErrNotApproved
		}
		if j.TierFor(price) == nil {
			return transaction.ErrNoPriceTier
		}

		buyerAcct, err := uow.Accounts().FindByUsername(ctx, buyer)
		if err != nil {
			return err
		}
		if !buyerAcct.HasWallet() {
			return wallet.ErrNoWallet
		}
		sellerAcct, err := uow.Accounts().FindByUsername(ctx, j.Username)
		if err != nil {
			return err
		}
		if !sellerAcct.HasWallet() {
			return wallet.ErrNoWallet
		}

		// Payment must be made before the transaction row exists.
		if err := walletsvc.TransferTx(
			ctx, uow,
			*buyerAcct.WalletID, *sellerAcct.WalletID,
			price, j.Name,
		); err != nil {
			return err
		}
		return uow.Transactions().Create(ctx, created)
	})
	if err != nil {
		metrics.RecordPurchase(purchaseResult(err))
		return nil, err
	}
	metrics.RecordPurchase("settled")
	s.logger.Info("purchase settled",
		"buyer", buyer, "job_id", jobID, "price", price, "transaction_id", created.ID)
	return created, nil
}

// MarkFinished flips the transaction to finished exactly once. Only the
// buyer can do it; finishing starts the refund window and unlocks
// reviewing.
func (s *Service) MarkFinished(ctx context.Context, username string, id int64) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		t, err := uow.Transactions().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := t.CanFinish(username); err != nil {
			return err
		}
		return uow.Transactions().MarkFinished(ctx, id, s.now())
	})
	if err != nil {
		return err
	}
	metrics.TransactionsFinishedTotal.Inc()
	return nil
}

// AddReview attaches the buyer's review to a finished transaction, once.
func (s *Service) AddReview(ctx context.Context, username string, id int64, review string) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		t, err := uow.Transactions().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := t.CanReview(username); err != nil {
			return err
		}
		return uow.Transactions().SetReview(ctx, id, review)
	})
}

// FindByID returns one of the user's transactions with job and seller
// context. Asking for someone else's transaction fails ErrNotBuyer.
func (s *Service) FindByID(ctx context.Context, username string, id int64) (d *transaction.Detail, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		d, err = uow.Transactions().GetDetail(ctx, id)
		if err != nil {
			return err
		}
		if d.Buyer != username {
			return transaction.ErrNotBuyer
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// FindAll returns all of the user's transactions, newest first.
func (s *Service) FindAll(ctx context.Context, username string) (ds []transaction.Detail, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ds, err = uow.Transactions().ListByBuyer(ctx, username)
		return err
	})
	return ds, err
}

func purchaseResult(err error) string {
	switch {
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, transaction.ErrSelfPurchase),
		errors.Is(err, transaction.ErrNotApproved),
		errors.Is(err, transaction.ErrNoPriceTier):
		return "rejected"
	default:
		return "error"
	}
}
