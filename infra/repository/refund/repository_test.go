package refund

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/huanvu/gigmart/pkg/domain/refund"
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

func TestCreate_DuplicateBecomesAlreadyRequested(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectExec(`INSERT INTO "refund_requests"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &refund.Request{TransactionID: 1, Reason: "dup"})
	assert.ErrorIs(t, err, refund.ErrAlreadyRequested)
}

func TestGetByTransaction_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectQuery(`SELECT \* FROM "refund_requests" WHERE transaction_id = \$1`).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{"transaction_id", "reason", "status", "created_at"}))

	_, err := repo.GetByTransaction(context.Background(), 42)
	assert.ErrorIs(t, err, refund.ErrNoRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)

	mock.ExpectExec(`UPDATE "refund_requests" SET "status"=\$1 WHERE transaction_id = \$2`).
		WithArgs(true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Resolve(context.Background(), 7, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}
