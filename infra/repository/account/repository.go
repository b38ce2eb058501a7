// Package account implements the account repository over gorm.
package account

import (
	"context"
	"errors"

	"github.com/huanvu/gigmart/infra/repository/model"
	"github.com/huanvu/gigmart/pkg/domain/account"
	"github.com/huanvu/gigmart/pkg/domain/wallet"
	repo "github.com/huanvu/gigmart/pkg/repository/account"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *account.Account) error {
	m := model.Account{
		Username:  a.Username,
		Fullname:  a.Fullname,
		Password:  a.Password,
		Email:     a.Email,
		Phone:     a.Phone,
		WalletID:  a.WalletID,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return account.ErrInvalidInfo
		}
		return err
	}
	return nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	return r.find(ctx, r.db, username)
}

func (r *repository) FindByUsernameForUpdate(ctx context.Context, username string) (*account.Account, error) {
	return r.find(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), username)
}

func (r *repository) find(ctx context.Context, tx *gorm.DB, username string) (*account.Account, error) {
	var m model.Account
	if err := tx.WithContext(ctx).First(&m, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrNoUser
		}
		return nil, err
	}
	return mapToDomain(&m), nil
}

func (r *repository) SetWalletID(ctx context.Context, username string, walletID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("username = ?", username).
		Update("wallet_id", walletID)
	if res.Error != nil {
		// The unique constraint on wallet_id backs the one-wallet-per-
		// account rule when two activations race.
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return wallet.ErrAlreadyActivated
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return account.ErrNoUser
	}
	return nil
}

func mapToDomain(m *model.Account) *account.Account {
	return &account.Account{
		Username:  m.Username,
		Fullname:  m.Fullname,
		Password:  m.Password,
		Email:     m.Email,
		Phone:     m.Phone,
		WalletID:  m.WalletID,
		IsAdmin:   m.IsAdmin,
		CreatedAt: m.CreatedAt,
	}
}
