// Package repository provides the gorm-backed UnitOfWork.
package repository

import (
	"context"

	accountinfra "github.com/huanvu/gigmart/infra/repository/account"
	jobinfra "github.com/huanvu/gigmart/infra/repository/job"
	messageinfra "github.com/huanvu/gigmart/infra/repository/message"
	refundinfra "github.com/huanvu/gigmart/infra/repository/refund"
	transactioninfra "github.com/huanvu/gigmart/infra/repository/transaction"
	walletinfra "github.com/huanvu/gigmart/infra/repository/wallet"
	"github.com/huanvu/gigmart/pkg/repository"
	accountrepo "github.com/huanvu/gigmart/pkg/repository/account"
	jobrepo "github.com/huanvu/gigmart/pkg/repository/job"
	messagerepo "github.com/huanvu/gigmart/pkg/repository/message"
	refundrepo "github.com/huanvu/gigmart/pkg/repository/refund"
	transactionrepo "github.com/huanvu/gigmart/pkg/repository/transaction"
	walletrepo "github.com/huanvu/gigmart/pkg/repository/wallet"
	"gorm.io/gorm"
)

// UoW provides a transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do share the transaction
// session, so a multi-repository sequence commits or rolls back as a unit.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UnitOfWork for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a single database transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	// Nested Do calls join the enclosing transaction instead of opening a
	// savepoint.
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction handle inside Do, the bare connection
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) Accounts() accountrepo.Repository {
	return accountinfra.New(u.session())
}

func (u *UoW) Wallets() walletrepo.Repository {
	return walletinfra.New(u.session())
}

func (u *UoW) Jobs() jobrepo.Repository {
	return jobinfra.New(u.session())
}

func (u *UoW) Transactions() transactionrepo.Repository {
	return transactioninfra.New(u.session())
}

func (u *UoW) Refunds() refundrepo.Repository {
	return refundinfra.New(u.session())
}

func (u *UoW) Messages() messagerepo.Repository {
	return messageinfra.New(u.session())
}
