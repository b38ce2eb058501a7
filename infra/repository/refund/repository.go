// Package refund implements the refund request repository over gorm.
package refund

import (
	"context"
	"errors"
	"time"

	"github.com/huanvu/gigmart/infra/repository/model"
	"github.com/huanvu/gigmart/pkg/domain/refund"
	repo "github.com/huanvu/gigmart/pkg/repository/refund"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a refund request repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *refund.Request) error {
	m := model.RefundRequest{
		TransactionID: req.TransactionID,
		Reason:        req.Reason,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		// transaction_id is the primary key: one request per transaction.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return refund.ErrAlreadyRequested
		}
		return err
	}
	req.Status = nil
	req.CreatedAt = m.CreatedAt
	return nil
}

func (r *repository) GetByTransaction(ctx context.Context, transactionID int64) (*refund.Request, error) {
	var m model.RefundRequest
	if err := r.db.WithContext(ctx).First(&m, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, refund.ErrNoRequest
		}
		return nil, err
	}
	return &refund.Request{
		TransactionID: m.TransactionID,
		Reason:        m.Reason,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func (r *repository) Resolve(ctx context.Context, transactionID int64, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.RefundRequest{}).
		Where("transaction_id = ?", transactionID).
		Update("status", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return refund.ErrNoRequest
	}
	return nil
}

// pendingRow is the flat scan target for the pending request join.
type pendingRow struct {
	TransactionID    int64
	Buyer            string
	Seller           string
	JobName          string
	JobType          string
	JobDescription   string
	Price            int64
	PriceDescription string
	Reason           string
	CreatedAt        time.Time
}

func (r *repository) ListPending(ctx context.Context) ([]refund.PendingRequest, error) {
	var rows []pendingRow
	err := r.db.WithContext(ctx).Raw(`
SELECT
	refund_requests.transaction_id AS transaction_id,
	transactions.username AS buyer,
	jobs.username AS seller,
	jobs.name AS job_name,
	job_types.name AS job_type,
	jobs.description AS job_description,
	job_price_tiers.price AS price,
	job_price_tiers.description AS price_description,
	refund_requests.reason AS reason,
	refund_requests.created_at AS created_at
FROM refund_requests
	JOIN transactions ON (refund_requests.transaction_id = transactions.id)
	JOIN jobs ON (transactions.job_id = jobs.id)
	JOIN job_types ON (jobs.type_id = job_types.id)
	JOIN job_price_tiers ON (transactions.job_id = job_price_tiers.job_id AND transactions.price = job_price_tiers.price)
WHERE refund_requests.status IS NULL
ORDER BY refund_requests.created_at`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	pending := make([]refund.PendingRequest, 0, len(rows))
	for _, row := range rows {
		pending = append(pending, refund.PendingRequest(row))
	}
	return pending, nil
}
