// Package wallet implements the wallet and ledger repository over gorm.
package wallet

import (
	"context"
	"errors"

	"github.com/huanvu/gigmart/infra/repository/model"
	"github.com/huanvu/gigmart/pkg/domain/wallet"
	repo "github.com/huanvu/gigmart/pkg/repository/wallet"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a wallet repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context) (*wallet.Wallet, error) {
	m := model.Wallet{Balance: 0}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return mapToDomain(&m), nil
}

func (r *repository) Get(ctx context.Context, id int64) (*wallet.Wallet, error) {
	return r.get(ctx, r.db, id)
}

func (r *repository) GetForUpdate(ctx context.Context, id int64) (*wallet.Wallet, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *repository) get(ctx context.Context, tx *gorm.DB, id int64) (*wallet.Wallet, error) {
	var m model.Wallet
	if err := tx.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallet.ErrNoWallet
		}
		return nil, err
	}
	return mapToDomain(&m), nil
}

func (r *repository) AddToBalance(ctx context.Context, id int64, delta int64) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).
		Raw("UPDATE wallets SET balance = balance + ? WHERE id = ? RETURNING balance", delta, id).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *repository) AppendEntry(ctx context.Context, e *wallet.Entry) error {
	m := model.WalletTransaction{
		WalletFrom: e.FromWalletID,
		WalletTo:   e.ToWalletID,
		Amount:     e.Amount,
		Content:    e.Content,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	e.ID = m.ID
	e.CreatedAt = m.CreatedAt
	return nil
}

func (r *repository) History(ctx context.Context, walletID int64) ([]wallet.Entry, error) {
	var ms []model.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("wallet_from = ? OR wallet_to = ?", walletID, walletID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	entries := make([]wallet.Entry, 0, len(ms))
	for i := range ms {
		entries = append(entries, wallet.Entry{
			ID:           ms[i].ID,
			FromWalletID: ms[i].WalletFrom,
			ToWalletID:   ms[i].WalletTo,
			Amount:       ms[i].Amount,
			Content:      ms[i].Content,
			CreatedAt:    ms[i].CreatedAt,
		})
	}
	return entries, nil
}

func mapToDomain(m *model.Wallet) *wallet.Wallet {
	return &wallet.Wallet{
		ID:        m.ID,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
	}
}
