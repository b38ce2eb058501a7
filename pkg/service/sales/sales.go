// Package sales provides the admin sales rollup.
package sales

import (
	"context"
	"log/slog"

	"github.com/huanvu/gigmart/pkg/domain/sales"
	salesrepo "github.com/huanvu/gigmart/pkg/repository/sales"
)

// Default and maximum number of periods a summary covers.
const (
	DefaultCount = 7
	MaxCount     = 60
)

// Service summarizes sales of finished, non-refunded transactions.
type Service struct {
	reader salesrepo.Reader
	logger *slog.Logger
}

// New creates a sales Service.
func New(reader salesrepo.Reader, logger *slog.Logger) *Service {
	return &Service{reader: reader, logger: logger}
}

// Summary returns sales totals for the last count periods. Out-of-range
// counts are clamped rather than rejected; the bucket must be one of the
// enumerated values.
func (s *Service) Summary(ctx context.Context, count int, bucket sales.Bucket) ([]sales.Period, error) {
	if count <= 0 {
		count = DefaultCount
	}
	if count > MaxCount {
		count = MaxCount
	}
	if !bucket.Valid() {
		bucket = sales.ByDay
	}
	return s.reader.Summary(ctx, count, bucket)
}
