package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_HashesPassword(t *testing.T) {
	a, err := New("alice", "Alice A", "secret123", "alice@example.com", "0123456789")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", a.Password)
	assert.NoError(t, a.CheckPassword("secret123"))
	assert.ErrorIs(t, a.CheckPassword("wrong"), ErrWrongPassword)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		email    string
		phone    string
	}{
		{"empty username", "", "secret123", "a@example.com", "0123456789"},
		{"padded username", " alice", "secret123", "a@example.com", "0123456789"},
		{"username too long", "averyveryverylongname", "secret123", "a@example.com", "0123456789"},
		{"password too short", "alice", "short", "a@example.com", "0123456789"},
		{"bad email", "alice", "secret123", "not-an-email", "0123456789"},
		{"phone too short", "alice", "secret123", "a@example.com", "12345"},
		{"phone not digits", "alice", "secret123", "a@example.com", "01234abcde"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.username, "Full Name", tt.password, tt.email, tt.phone)
			assert.ErrorIs(t, err, ErrInvalidInfo)
		})
	}
}

func TestHasWallet(t *testing.T) {
	a := &Account{Username: "bob"}
	assert.False(t, a.HasWallet())
	id := int64(7)
	a.WalletID = &id
	assert.True(t, a.HasWallet())
}
