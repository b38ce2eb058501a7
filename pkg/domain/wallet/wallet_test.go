package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(1))
	assert.ErrorIs(t, ValidateAmount(0), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(-5), ErrInvalidAmount)
}

func TestCanDebit(t *testing.T) {
	w := &Wallet{Balance: 100}
	assert.True(t, w.CanDebit(100))
	assert.True(t, w.CanDebit(40))
	assert.False(t, w.CanDebit(101))
}

func TestEntrySigned(t *testing.T) {
	from := int64(1)
	e := &Entry{ID: 9, FromWalletID: &from, ToWalletID: 2, Amount: 60, Content: "Logo design"}

	sender := e.Signed(1)
	assert.Equal(t, int64(-60), sender.Amount)

	receiver := e.Signed(2)
	assert.Equal(t, int64(60), receiver.Amount)
}

func TestEntrySigned_TopUp(t *testing.T) {
	// Top-ups have no source wallet and always read as credits.
	e := &Entry{ID: 3, ToWalletID: 2, Amount: 100, Content: "Top up"}
	assert.Equal(t, int64(100), e.Signed(2).Amount)
}
