// Package initializer builds the application's infrastructure dependencies
// from configuration.
package initializer

import (
	"fmt"

	"github.com/huanvu/gigmart/infra"
	infrarepo "github.com/huanvu/gigmart/infra/repository"
	salesinfra "github.com/huanvu/gigmart/infra/repository/sales"
	"github.com/huanvu/gigmart/pkg/config"
)

// InitializeDependencies sets up logging, the database connection and the
// persistence layer, returning the dependency bundle services are built
// from.
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := infra.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &config.Deps{
		Uow:    infrarepo.NewUoW(db),
		Sales:  salesinfra.New(db),
		Logger: logger,
		Config: cfg,
	}, nil
}
