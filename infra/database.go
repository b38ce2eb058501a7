// Package infra wires the application's infrastructure: database
// connection, migrations and the persistence implementations.
package infra

import (
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/huanvu/gigmart/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the postgres connection, retrying while the
// database comes up.
func NewDBConnection(cfg *config.DB, appEnv string) (*gorm.DB, error) {
	if cfg.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	var connection *gorm.DB
	err := retry.Do(
		func() (err error) {
			connection, err = gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
				Logger:                 logger.Default.LogMode(logMode),
				SkipDefaultTransaction: true,
				TranslateError:         true,
			})
			return err
		},
		retry.Attempts(cfg.ConnectRetries),
		retry.Delay(cfg.ConnectDelay),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("database connection attempt failed", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}
