package refund

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanvu/gigmart/internal/fixtures"
	"github.com/huanvu/gigmart/pkg/domain/account"
	"github.com/huanvu/gigmart/pkg/domain/job"
	"github.com/huanvu/gigmart/pkg/domain/refund"
	"github.com/huanvu/gigmart/pkg/domain/transaction"
	notificationsvc "github.com/huanvu/gigmart/pkg/service/notification"
)

var finishedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *fixtures.MemStore) {
	t.Helper()
	store := fixtures.NewMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := notificationsvc.New(store.UoW(), logger)
	return New(store.UoW(), notifier, logger), store
}

// seedFinished stores a finished transaction between buyer and seller and
// returns its id.
func seedFinished(t *testing.T, store *fixtures.MemStore) int64 {
	t.Helper()
	store.SeedAccount(&account.Account{Username: "buyer", Fullname: "Buyer B"})
	store.SeedAccount(&account.Account{Username: "seller", Fullname: "Seller S"})
	approved := true
	jobID := store.SeedJob(&job.Job{
		Username:   "seller",
		Name:       "Logo design",
		TypeID:     1,
		Status:     &approved,
		PriceTiers: []job.PriceTier{{Price: 60, Description: "one concept"}},
	})
	at := finishedAt
	return store.SeedTransaction(&transaction.Transaction{
		Buyer:      "buyer",
		JobID:      jobID,
		Price:      60,
		Finished:   true,
		FinishedAt: &at,
	})
}

func TestCreateRequest(t *testing.T) {
	svc, store := newService(t)
	txID := seedFinished(t, store)
	svc.now = func() time.Time { return finishedAt.Add(48 * time.Hour) }

	req, err := svc.CreateRequest(context.Background(), "buyer", txID, "not as described")
	require.NoError(t, err)
	assert.Equal(t, txID, req.TransactionID)
	assert.True(t, req.IsPending())

	// Both parties hear about it.
	assert.Len(t, store.Notifications("buyer"), 1)
	assert.Len(t, store.Notifications("seller"), 1)
}

func TestCreateRequest_WindowBoundary(t *testing.T) {
	svc, store := newService(t)
	txID := seedFinished(t, store)

	// Exactly three days after finishing still counts.
	svc.now = func() time.Time { return finishedAt.Add(refund.Window) }
	_, err := svc.CreateRequest(context.Background(), "buyer", txID, "late but in time")
	assert.NoError(t, err)
}

func TestCreateRequest_WindowExpired(t *testing.T) {
	svc, store := newService(t)
	txID := seedFinished(t, store)
	svc.now = func() time.Time { return finishedAt.Add(96 * time.Hour) }

	_, err := svc.CreateRequest(context.Background(), "buyer", txID, "too late")
	assert.ErrorIs(t, err, refund.ErrWindowExpired)
	assert.Empty(t, store.Notifications("buyer"))
}

func TestCreateRequest_Preconditions(t *testing.T) {
	t.Run("not the buyer", func(t *testing.T) {
		svc, store := newService(t)
		txID := seedFinished(t, store)
		svc.now = func() time.Time { return finishedAt.Add(time.Hour) }
		_, err := svc.CreateRequest(context.Background(), "seller", txID, "reason")
		assert.ErrorIs(t, err, transaction.ErrNotBuyer)
	})

	t.Run("not finished", func(t *testing.T) {
		svc, store := newService(t)
		store.SeedAccount(&account.Account{Username: "buyer"})
		store.SeedAccount(&account.Account{Username: "seller"})
		jobID := store.SeedJob(&job.Job{Username: "seller", Name: "Logo design", TypeID: 1})
		txID := store.SeedTransaction(&transaction.Transaction{Buyer: "buyer", JobID: jobID, Price: 60})
		_, err := svc.CreateRequest(context.Background(), "buyer", txID, "reason")
		assert.ErrorIs(t, err, transaction.ErrNotFinished)
	})

	t.Run("already requested", func(t *testing.T) {
		svc, store := newService(t)
		txID := seedFinished(t, store)
		svc.now = func() time.Time { return finishedAt.Add(time.Hour) }
		_, err := svc.CreateRequest(context.Background(), "buyer", txID, "first")
		require.NoError(t, err)
		_, err = svc.CreateRequest(context.Background(), "buyer", txID, "second")
		assert.ErrorIs(t, err, refund.ErrAlreadyRequested)
	})

	t.Run("no such transaction", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.CreateRequest(context.Background(), "buyer", 999, "reason")
		assert.ErrorIs(t, err, transaction.ErrNoTransaction)
	})
}

func TestResolve(t *testing.T) {
	svc, store := newService(t)
	txID := seedFinished(t, store)
	svc.now = func() time.Time { return finishedAt.Add(time.Hour) }

	_, err := svc.CreateRequest(context.Background(), "buyer", txID, "not as described")
	require.NoError(t, err)

	require.NoError(t, svc.Resolve(context.Background(), txID, true))

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Request + resolution, to each party.
	assert.Len(t, store.Notifications("buyer"), 2)
	assert.Len(t, store.Notifications("seller"), 2)

	// Resolution is one-shot, in either direction.
	assert.ErrorIs(t, svc.Resolve(context.Background(), txID, true), refund.ErrAlreadyResolved)
	assert.ErrorIs(t, svc.Resolve(context.Background(), txID, false), refund.ErrAlreadyResolved)
}

func TestResolve_NoRequest(t *testing.T) {
	svc, _ := newService(t)
	assert.ErrorIs(t, svc.Resolve(context.Background(), 999, true), refund.ErrNoRequest)
}

func TestListPending(t *testing.T) {
	svc, store := newService(t)
	txID := seedFinished(t, store)
	svc.now = func() time.Time { return finishedAt.Add(time.Hour) }

	_, err := svc.CreateRequest(context.Background(), "buyer", txID, "not as described")
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	p := pending[0]
	assert.Equal(t, txID, p.TransactionID)
	assert.Equal(t, "buyer", p.Buyer)
	assert.Equal(t, "seller", p.Seller)
	assert.Equal(t, "Logo design", p.JobName)
	assert.Equal(t, int64(60), p.Price)
	assert.Equal(t, "one concept", p.PriceDescription)
	assert.Equal(t, "not as described", p.Reason)
}
