package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanvu/gigmart/internal/fixtures"
	"github.com/huanvu/gigmart/pkg/config"
	"github.com/huanvu/gigmart/pkg/domain/account"
)

func newService(t *testing.T) (*Service, *fixtures.MemStore) {
	t.Helper()
	store := fixtures.NewMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	return New(store.UoW(), cfg, logger), store
}

func seedAccount(t *testing.T, store *fixtures.MemStore, isAdmin bool) {
	t.Helper()
	a, err := account.New("alice", "Alice A", "secret123", "alice@example.com", "0123456789")
	require.NoError(t, err)
	a.IsAdmin = isAdmin
	store.SeedAccount(a)
}

func TestLogin(t *testing.T) {
	svc, store := newService(t)
	seedAccount(t, store, true)

	token, a, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Username)

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*Claims)
	require.True(t, ok)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID, "tokens carry a unique jti")
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, store := newService(t)
	seedAccount(t, store, false)

	_, _, err := svc.Login(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, account.ErrWrongPassword)
}

func TestLogin_NoUser(t *testing.T) {
	svc, _ := newService(t)
	_, _, err := svc.Login(context.Background(), "ghost", "secret123")
	assert.ErrorIs(t, err, account.ErrNoUser)
}

func TestVerifyPassword(t *testing.T) {
	svc, store := newService(t)
	seedAccount(t, store, false)

	assert.NoError(t, svc.VerifyPassword(context.Background(), "alice", "secret123"))
	assert.ErrorIs(t, svc.VerifyPassword(context.Background(), "alice", "nope"), account.ErrWrongPassword)
}
