// Package sales implements the read-only sales rollup query.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/huanvu/gigmart/pkg/domain/sales"
	"gorm.io/gorm"
)

// Repository aggregates finished, non-refunded transactions. It reads with
// plain snapshot consistency; no locking is involved.
type Repository struct {
	db *gorm.DB
}

// New creates a sales repository using the provided *gorm.DB.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type shareRow struct {
	Date     time.Time
	TypeID   int64
	TypeName string
	Sum      int64
}

// Summary returns per-period sales for the last count periods of the given
// bucket size, split by job type. The bucket is validated against the
// enumerated values before being spliced into the query; count is bound as
// a parameter.
func (r *Repository) Summary(ctx context.Context, count int, bucket sales.Bucket) ([]sales.Period, error) {
	if !bucket.Valid() {
		return nil, fmt.Errorf("invalid sales bucket %q", bucket)
	}

	query := fmt.Sprintf(`
SELECT
	date_trunc('%[1]s', transactions.finished_at)::date AS date,
	job_types.id AS type_id,
	job_types.name AS type_name,
	SUM(transactions.price) AS sum
FROM transactions
	LEFT JOIN refund_requests ON (transactions.id = refund_requests.transaction_id)
	JOIN jobs ON (transactions.job_id = jobs.id)
	JOIN job_types ON (jobs.type_id = job_types.id)
WHERE
	transactions.status = TRUE
	AND refund_requests.transaction_id IS NULL
	AND transactions.finished_at > NOW() - (? * interval '1 %[1]s')
GROUP BY date_trunc('%[1]s', transactions.finished_at)::date, job_types.id, job_types.name
ORDER BY date`, bucket)

	var rows []shareRow
	if err := r.db.WithContext(ctx).Raw(query, count).Scan(&rows).Error; err != nil {
		return nil, err
	}

	byDate := make(map[time.Time]*sales.Period)
	for _, row := range rows {
		p, ok := byDate[row.Date]
		if !ok {
			p = &sales.Period{Date: row.Date}
			byDate[row.Date] = p
		}
		p.Sum += row.Sum
		p.Shares = append(p.Shares, sales.Share{
			TypeID:   row.TypeID,
			TypeName: row.TypeName,
			Sum:      row.Sum,
		})
	}

	return fill(byDate, count, bucket, time.Now()), nil
}

// fill pads the rollup with zero periods so every bucket in the window is
// present, oldest first.
func fill(byDate map[time.Time]*sales.Period, count int, bucket sales.Bucket, now time.Time) []sales.Period {
	out := make([]sales.Period, 0, count)
	for i := count - 1; i >= 0; i-- {
		var start time.Time
		switch bucket {
		case sales.ByMonth:
			t := now.AddDate(0, -i, 0)
			start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		default:
			t := now.AddDate(0, 0, -i)
			start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		if p, ok := byDate[start]; ok {
			out = append(out, *p)
			continue
		}
		out = append(out, sales.Period{Date: start, Sum: 0, Shares: []sales.Share{}})
	}
	return out
}
