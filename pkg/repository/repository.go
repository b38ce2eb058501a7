// Package repository defines the persistence interfaces consumed by the
// service layer. Implementations live in infra/repository.
package repository

import (
	"context"

	accountrepo "github.com/huanvu/gigmart/pkg/repository/account"
	jobrepo "github.com/huanvu/gigmart/pkg/repository/job"
	messagerepo "github.com/huanvu/gigmart/pkg/repository/message"
	refundrepo "github.com/huanvu/gigmart/pkg/repository/refund"
	transactionrepo "github.com/huanvu/gigmart/pkg/repository/transaction"
	walletrepo "github.com/huanvu/gigmart/pkg/repository/wallet"
)

// UnitOfWork provides a transaction boundary and repository access in one
// abstraction. Every repository obtained inside Do is bound to the same
// database transaction, so multi-repository sequences (debit + credit +
// ledger append + transaction insert) commit or roll back together.
type UnitOfWork interface {
	// Do runs fn inside a single database transaction. The UnitOfWork
	// passed to fn hands out transaction-bound repositories.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() accountrepo.Repository
	Wallets() walletrepo.Repository
	Jobs() jobrepo.Repository
	Transactions() transactionrepo.Repository
	Refunds() refundrepo.Repository
	Messages() messagerepo.Repository
}
