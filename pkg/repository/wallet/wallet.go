// Package wallet defines the wallet and ledger persistence interface.
package wallet

import (
	"context"

	"github.com/huanvu/gigmart/pkg/domain/wallet"
)

// Repository persists wallets and the append-only ledger. Not-found lookups
// return wallet.ErrNoWallet.
type Repository interface {
	// Create inserts a wallet with balance zero and returns it.
	Create(ctx context.Context) (*wallet.Wallet, error)
	Get(ctx context.Context, id int64) (*wallet.Wallet, error)
	// GetForUpdate locks the wallet row for the duration of the
	// surrounding transaction. Money-moving paths lock every wallet they
	// touch, in ascending id order, before reading balances.
	GetForUpdate(ctx context.Context, id int64) (*wallet.Wallet, error)
	// AddToBalance applies a delta to the balance and returns the new
	// balance. Callers hold the row lock and have validated the delta.
	AddToBalance(ctx context.Context, id int64, delta int64) (int64, error)
	// AppendEntry records one ledger entry. Entries are never updated or
	// deleted.
	AppendEntry(ctx context.Context, e *wallet.Entry) error
	// History returns every ledger entry that touches the wallet, newest
	// first.
	History(ctx context.Context, walletID int64) ([]wallet.Entry, error)
}
