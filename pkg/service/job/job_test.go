package job

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanvu/gigmart/internal/fixtures"
	"github.com/huanvu/gigmart/pkg/domain/account"
	"github.com/huanvu/gigmart/pkg/domain/job"
	jobrepo "github.com/huanvu/gigmart/pkg/repository/job"
	notificationsvc "github.com/huanvu/gigmart/pkg/service/notification"
)

func newService(t *testing.T) (*Service, *fixtures.MemStore) {
	t.Helper()
	store := fixtures.NewMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := notificationsvc.New(store.UoW(), logger)
	return New(store.UoW(), notifier, logger), store
}

func seedSeller(store *fixtures.MemStore, withWallet bool) {
	store.SeedAccount(&account.Account{Username: "seller", Fullname: "Seller S"})
	if withWallet {
		store.SeedWallet("seller", 0)
	}
}

func listing() *job.Job {
	return &job.Job{
		Username:    "seller",
		Name:        "Logo design",
		Description: "A custom logo",
		TypeID:      1,
		PriceTiers:  []job.PriceTier{{Price: 60, Description: "one concept"}},
	}
}

func TestCreate(t *testing.T) {
	svc, store := newService(t)
	seedSeller(store, true)

	created, err := svc.Create(context.Background(), listing())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Nil(t, created.Status, "new listings start pending review")
	assert.Equal(t, "Seller S", created.Fullname)
	assert.Equal(t, "Design", created.TypeName)
}

func TestCreate_RequiresWallet(t *testing.T) {
	svc, store := newService(t)
	seedSeller(store, false)

	_, err := svc.Create(context.Background(), listing())
	assert.ErrorIs(t, err, job.ErrWalletInactive)
}

func TestCreate_RequiresPriceTiers(t *testing.T) {
	svc, store := newService(t)
	seedSeller(store, true)

	j := listing()
	j.PriceTiers = nil
	_, err := svc.Create(context.Background(), j)
	assert.ErrorIs(t, err, job.ErrNoPriceTiers)
}

func TestUpdate(t *testing.T) {
	svc, store := newService(t)
	seedSeller(store, true)
	created, err := svc.Create(context.Background(), listing())
	require.NoError(t, err)

	name := "Brand identity"
	require.NoError(t, svc.Update(context.Background(), "seller", created.ID, job.Patch{Name: &name}))

	updated, err := svc.Find(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brand identity", updated.Name)
	assert.Nil(t, updated.Status, "updates send the listing back to review")
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc, store := newService(t)
	seedSeller(store, true)
	created, err := svc.Create(context.Background(), listing())
	require.NoError(t, err)

	name := "Hijacked"
	err = svc.Update(context.Background(), "mallory", created.ID, job.Patch{Name: &name})
	assert.ErrorIs(t, err, job.ErrNotOwner)
}

func TestUpdate_ApprovedIsImmutable(t *testing.T) {
	svc, store := newService(t)
	seedSeller(store, true)
	created, err := svc.Create(context.Background(), listing())
	require.NoError(t, err)
	require.NoError(t, svc.Review(context.Background(), created.ID, true))

	name := "Too late"
	err = svc.Update(context.Background(), "seller", created.ID, job.Patch{Name: &name})
	assert.ErrorIs(t, err, job.ErrApproved)
}

func TestReview(t *testing.T) {
	svc, store := newService(t)
	seedSeller(store, true)
	created, err := svc.Create(context.Background(), listing())
	require.NoError(t, err)

	require.NoError(t, svc.Review(context.Background(), created.ID, true))

	reviewed, err := svc.Find(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, reviewed.IsApproved())

	notes := store.Notifications("seller")
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Content, "approved")
}

func TestList(t *testing.T) {
	svc, store := newService(t)
	seedSeller(store, true)

	first, err := svc.Create(context.Background(), listing())
	require.NoError(t, err)
	second := listing()
	second.Name = "Poster design"
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	require.NoError(t, svc.Review(context.Background(), first.ID, true))

	approved, err := svc.List(context.Background(), jobrepo.ListOptions{Page: 1, Size: 20, ApprovedOnly: true})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, first.ID, approved[0].ID)

	pending, err := svc.List(context.Background(), jobrepo.ListOptions{Page: 1, Size: 20})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Poster design", pending[0].Name)
}

func TestListTypes(t *testing.T) {
	svc, _ := newService(t)
	types, err := svc.ListTypes(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, types)
}
