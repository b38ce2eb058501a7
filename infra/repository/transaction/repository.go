// Package transaction implements the transaction repository over gorm.
package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/huanvu/gigmart/infra/repository/model"
	"github.com/huanvu/gigmart/pkg/domain/transaction"
	repo "github.com/huanvu/gigmart/pkg/repository/transaction"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *transaction.Transaction) error {
	m := model.Transaction{
		Username: t.Buyer,
		JobID:    t.JobID,
		Price:    t.Price,
		Status:   false,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	t.ID = m.ID
	t.CreatedAt = m.CreatedAt
	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (*transaction.Transaction, error) {
	var m model.Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrNoTransaction
		}
		return nil, err
	}
	return &transaction.Transaction{
		ID:         m.ID,
		Buyer:      m.Username,
		JobID:      m.JobID,
		Price:      m.Price,
		Finished:   m.Status,
		Review:     m.Review,
		CreatedAt:  m.CreatedAt,
		FinishedAt: m.FinishedAt,
	}, nil
}

// detailRow is the flat scan target for the transaction detail join.
type detailRow struct {
	ID               int64
	Buyer            string
	Price            int64
	PriceDescription string
	JobID            int64
	JobName          string
	JobDescription   string
	SellerUsername   string
	SellerFullname   string
	Review           *string
	IsFinished       bool
	CreatedAt        time.Time
	FinishedAt       *time.Time
	RefundReason     *string
	RefundStatus     *bool
	RefundCreatedAt  *time.Time
}

const detailSelect = `
SELECT
	transactions.id AS id,
	transactions.username AS buyer,
	job_price_tiers.price AS price,
	job_price_tiers.description AS price_description,
	transactions.job_id AS job_id,
	jobs.name AS job_name,
	jobs.description AS job_description,
	accounts.username AS seller_username,
	accounts.fullname AS seller_fullname,
	transactions.review AS review,
	transactions.status AS is_finished,
	transactions.created_at AS created_at,
	transactions.finished_at AS finished_at,
	refund_requests.reason AS refund_reason,
	refund_requests.status AS refund_status,
	refund_requests.created_at AS refund_created_at
FROM transactions
	JOIN jobs ON (transactions.job_id = jobs.id)
	JOIN job_price_tiers ON (transactions.job_id = job_price_tiers.job_id AND transactions.price = job_price_tiers.price)
	JOIN accounts ON (jobs.username = accounts.username)
	LEFT JOIN refund_requests ON (refund_requests.transaction_id = transactions.id)`

func (r *repository) GetDetail(ctx context.Context, id int64) (*transaction.Detail, error) {
	var row detailRow
	res := r.db.WithContext(ctx).
		Raw(detailSelect+" WHERE transactions.id = ?", id).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, transaction.ErrNoTransaction
	}
	d := mapRow(&row)
	return &d, nil
}

func (r *repository) ListByBuyer(ctx context.Context, username string) ([]transaction.Detail, error) {
	var rows []detailRow
	err := r.db.WithContext(ctx).
		Raw(detailSelect+" WHERE transactions.username = ? ORDER BY transactions.created_at DESC", username).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	details := make([]transaction.Detail, 0, len(rows))
	for i := range rows {
		details = append(details, mapRow(&rows[i]))
	}
	return details, nil
}

func (r *repository) MarkFinished(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": true, "finished_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return transaction.ErrNoTransaction
	}
	return nil
}

func (r *repository) SetReview(ctx context.Context, id int64, review string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("review", review)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return transaction.ErrNoTransaction
	}
	return nil
}

func mapRow(row *detailRow) transaction.Detail {
	d := transaction.Detail{
		ID:               row.ID,
		Buyer:            row.Buyer,
		Price:            row.Price,
		PriceDescription: row.PriceDescription,
		JobID:            row.JobID,
		JobName:          row.JobName,
		JobDescription:   row.JobDescription,
		Seller: transaction.Seller{
			Username: row.SellerUsername,
			Fullname: row.SellerFullname,
		},
		Review:     row.Review,
		IsFinished: row.IsFinished,
		CreatedAt:  row.CreatedAt,
		FinishedAt: row.FinishedAt,
	}
	if row.RefundReason != nil {
		d.Refund = &transaction.RefundInfo{
			Reason:    *row.RefundReason,
			Status:    row.RefundStatus,
			CreatedAt: *row.RefundCreatedAt,
		}
	}
	return d
}
