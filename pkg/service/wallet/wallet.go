// Package wallet provides the wallet ledger operations: activation,
// balance queries, top-ups, transfers and history.
package wallet

import (
	"context"
	"log/slog"

	"github.com/huanvu/gigmart/infra/metrics"
	"github.com/huanvu/gigmart/pkg/domain/wallet"
	"github.com/huanvu/gigmart/pkg/repository"
)

// Service orchestrates wallet operations. Every mutation runs inside one
// database transaction via the UnitOfWork.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a wallet Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Activate creates a zero-balance wallet for the account and links it.
// The account row is locked first so two concurrent activations cannot
// both pass the has-wallet check; the unique constraint on
// accounts.wallet_id backs the same rule at the schema level.
func (s *Service) Activate(ctx context.Context, username string) (walletID int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().FindByUsernameForUpdate(ctx, username)
		if err != nil {
			return err
		}
		if acct.HasWallet() {
			return wallet.ErrAlreadyActivated
		}
		w, err := uow.Wallets().Create(ctx)
		if err != nil {
			return err
		}
		if err := uow.Accounts().SetWalletID(ctx, username, w.ID); err != nil {
			return err
		}
		walletID = w.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.WalletActivationsTotal.Inc()
	s.logger.Info("wallet activated", "username", username, "wallet_id", walletID)
	return walletID, nil
}

// Balance returns the current balance of the user's wallet.
func (s *Service) Balance(ctx context.Context, username string) (balance int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		w, err := s.walletOf(ctx, uow, username)
		if err != nil {
			return err
		}
		balance = w.Balance
		return nil
	})
	return balance, err
}

// TopUp atomically credits the wallet and appends a ledger entry with a
// null source wallet. Returns the new balance.
func (s *Service) TopUp(ctx context.Context, username string, amount int64) (balance int64, err error) {
	if err := wallet.ValidateAmount(amount); err != nil {
		return 0, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		w, err := s.walletOf(ctx, uow, username)
		if err != nil {
			return err
		}
		if _, err := uow.Wallets().GetForUpdate(ctx, w.ID); err != nil {
			return err
		}
		balance, err = uow.Wallets().AddToBalance(ctx, w.ID, amount)
		if err != nil {
			return err
		}
		return uow.Wallets().AppendEntry(ctx, &wallet.Entry{
			ToWalletID: w.ID,
			Amount:     amount,
			Content:    "Top up",
		})
	})
	if err != nil {
		return 0, err
	}
	metrics.WalletTopUpsTotal.Inc()
	s.logger.Info("wallet topped up", "username", username, "amount", amount)
	return balance, nil
}

// History returns the user's ledger entries viewed from their wallet:
// credits positive, debits negative, newest first.
func (s *Service) History(ctx context.Context, username string) (items []wallet.HistoryItem, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		w, err := s.walletOf(ctx, uow, username)
		if err != nil {
			return err
		}
		entries, err := uow.Wallets().History(ctx, w.ID)
		if err != nil {
			return err
		}
		items = make([]wallet.HistoryItem, 0, len(entries))
		for i := range entries {
			items = append(items, entries[i].Signed(w.ID))
		}
		return nil
	})
	return items, err
}

func (s *Service) walletOf(ctx context.Context, uow repository.UnitOfWork, username string) (*wallet.Wallet, error) {
	acct, err := uow.Accounts().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !acct.HasWallet() {
		return nil, wallet.ErrNoWallet
	}
	return uow.Wallets().Get(ctx, *acct.WalletID)
}

// TransferTx moves amount between two wallets inside the caller's open
// transaction: debit, credit and one ledger entry commit together or not
// at all. Both wallet rows are locked in ascending id order so concurrent
// transfers touching the same wallets cannot deadlock, and a transfer that
// would overdraw the source fails with ErrInsufficientFunds before any
// write.
func TransferTx(
	ctx context.Context,
	uow repository.UnitOfWork,
	fromID, toID int64,
	amount int64,
	content string,
) error {
	if err := wallet.ValidateAmount(amount); err != nil {
		return err
	}

	wallets := uow.Wallets()
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	locked := make(map[int64]*wallet.Wallet, 2)
	for _, id := range []int64{first, second} {
		w, err := wallets.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		locked[id] = w
	}

	if !locked[fromID].CanDebit(amount) {
		return wallet.ErrInsufficientFunds
	}
	if _, err := wallets.AddToBalance(ctx, fromID, -amount); err != nil {
		return err
	}
	if _, err := wallets.AddToBalance(ctx, toID, amount); err != nil {
		return err
	}
	return wallets.AppendEntry(ctx, &wallet.Entry{
		FromWalletID: &fromID,
		ToWalletID:   toID,
		Amount:       amount,
		Content:      content,
	})
}
