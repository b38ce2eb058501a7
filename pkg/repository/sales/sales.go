// Package sales defines the read-only sales rollup interface.
package sales

import (
	"context"

	"github.com/huanvu/gigmart/pkg/domain/sales"
)

// Reader aggregates finished, non-refunded transactions into per-period
// totals.
type Reader interface {
	Summary(ctx context.Context, count int, bucket sales.Bucket) ([]sales.Period, error)
}
