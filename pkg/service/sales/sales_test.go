package sales

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanvu/gigmart/pkg/domain/sales"
)

type readerFunc func(ctx context.Context, count int, bucket sales.Bucket) ([]sales.Period, error)

func (f readerFunc) Summary(ctx context.Context, count int, bucket sales.Bucket) ([]sales.Period, error) {
	return f(ctx, count, bucket)
}

func TestSummary_ClampsCount(t *testing.T) {
	var gotCount int
	var gotBucket sales.Bucket
	reader := readerFunc(func(ctx context.Context, count int, bucket sales.Bucket) ([]sales.Period, error) {
		gotCount, gotBucket = count, bucket
		return nil, nil
	})
	svc := New(reader, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Summary(context.Background(), 0, sales.ByDay)
	require.NoError(t, err)
	assert.Equal(t, DefaultCount, gotCount)

	_, err = svc.Summary(context.Background(), 1000, sales.ByMonth)
	require.NoError(t, err)
	assert.Equal(t, MaxCount, gotCount)
	assert.Equal(t, sales.ByMonth, gotBucket)
}

func TestSummary_DefaultsBucket(t *testing.T) {
	var gotBucket sales.Bucket
	reader := readerFunc(func(ctx context.Context, count int, bucket sales.Bucket) ([]sales.Period, error) {
		gotBucket = bucket
		return nil, nil
	})
	svc := New(reader, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Summary(context.Background(), 7, sales.Bucket("week"))
	require.NoError(t, err)
	assert.Equal(t, sales.ByDay, gotBucket)
}
