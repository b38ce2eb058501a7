// Package account defines the account persistence interface.
package account

import (
	"context"

	"github.com/huanvu/gigmart/pkg/domain/account"
)

// Repository persists accounts. Not-found lookups return account.ErrNoUser.
type Repository interface {
	Create(ctx context.Context, a *account.Account) error
	FindByUsername(ctx context.Context, username string) (*account.Account, error)
	// FindByUsernameForUpdate locks the account row for the duration of
	// the surrounding transaction. Wallet activation uses it to serialize
	// concurrent activations of the same account.
	FindByUsernameForUpdate(ctx context.Context, username string) (*account.Account, error)
	// SetWalletID links a freshly created wallet to the account. It is
	// written once; the accounts.wallet_id unique constraint backs the
	// single-activation guarantee.
	SetWalletID(ctx context.Context, username string, walletID int64) error
}
