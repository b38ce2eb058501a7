// Package sales holds the read-only sales rollup types.
package sales

import "time"

// Bucket is the aggregation granularity for a sales summary.
type Bucket string

const (
	ByDay   Bucket = "day"
	ByMonth Bucket = "month"
)

// Valid reports whether b is one of the enumerated buckets. Bucket values
// are spliced into date_trunc expressions, so anything else must be
// rejected before it reaches a query.
func (b Bucket) Valid() bool {
	return b == ByDay || b == ByMonth
}

// Share is one job type's contribution to a period's sales.
type Share struct {
	TypeID   int64  `json:"id"`
	TypeName string `json:"name"`
	Sum      int64  `json:"sum"`
}

// Period is the sales total for one day or month, split by job type.
// Periods with no sales carry a zero sum and no shares.
type Period struct {
	Date   time.Time `json:"date"`
	Sum    int64     `json:"sum"`
	Shares []Share   `json:"shares"`
}
