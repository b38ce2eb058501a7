// Package wallet holds the wallet aggregate, the append-only ledger entry
// type and the invariants for balance mutation.
package wallet

import (
	"errors"
	"time"
)

var (
	// ErrNoWallet is returned when an operation targets a wallet that has
	// not been activated.
	ErrNoWallet = errors.New("wallet has not been activated")
	// ErrAlreadyActivated is returned when an account tries to activate a
	// second wallet.
	ErrAlreadyActivated = errors.New("wallet already activated")
	// ErrInsufficientFunds is returned when a transfer would drive the
	// source balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount is returned when a top-up or transfer amount is not
	// a positive integer.
	ErrInvalidAmount = errors.New("amount must be a positive integer")
)

// Wallet is a per-account integer balance. The balance is only ever mutated
// through atomic delta operations inside a database transaction; it is never
// set directly after creation.
type Wallet struct {
	ID        int64
	Balance   int64
	CreatedAt time.Time
}

// Entry is one immutable ledger record. FromWalletID is nil for top-ups.
type Entry struct {
	ID           int64
	FromWalletID *int64
	ToWalletID   int64
	Amount       int64
	Content      string
	CreatedAt    time.Time
}

// HistoryItem is a ledger entry viewed from one wallet's perspective:
// Amount is positive when the wallet received funds and negative when it
// sent them.
type HistoryItem struct {
	EntryID   int64
	Amount    int64
	Content   string
	CreatedAt time.Time
}

// Signed converts the entry into the signed view of the given wallet.
func (e *Entry) Signed(walletID int64) HistoryItem {
	amount := e.Amount
	if e.FromWalletID != nil && *e.FromWalletID == walletID {
		amount = -amount
	}
	return HistoryItem{
		EntryID:   e.ID,
		Amount:    amount,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}

// ValidateAmount rejects non-positive amounts before any balance mutation.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// CanDebit reports whether the wallet holds at least amount.
func (w *Wallet) CanDebit(amount int64) bool {
	return w.Balance >= amount
}
