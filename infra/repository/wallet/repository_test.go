package wallet

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/huanvu/gigmart/pkg/domain/wallet"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGet_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE id = \$1`).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "created_at"}))

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, wallet.ErrNoWallet)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE id = \$1 (.+) FOR UPDATE`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "balance"}).AddRow(7, 100))

	w, err := repo.GetForUpdate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(100), w.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectQuery(`UPDATE wallets SET balance = balance \+ \$1 WHERE id = \$2 RETURNING balance`).
		WithArgs(int64(-60), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(40))

	balance, err := repo.AddToBalance(context.Background(), 7, -60)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendEntry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectQuery(`INSERT INTO "wallet_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	from := int64(1)
	e := &wallet.Entry{FromWalletID: &from, ToWalletID: 2, Amount: 60, Content: "Logo design"}
	require.NoError(t, repo.AppendEntry(context.Background(), e))
	assert.Equal(t, int64(11), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	rows := sqlmock.NewRows([]string{"id", "wallet_from", "wallet_to", "amount", "content"}).
		AddRow(2, 1, 2, 60, "Logo design").
		AddRow(1, nil, 1, 100, "Top up")
	mock.ExpectQuery(`SELECT \* FROM "wallet_transactions" WHERE wallet_from = \$1 OR wallet_to = \$2 ORDER BY created_at DESC`).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(rows)

	entries, err := repo.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotNil(t, entries[0].FromWalletID)
	assert.Nil(t, entries[1].FromWalletID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
