package config

import (
	"log/slog"

	"github.com/huanvu/gigmart/pkg/repository"
	salesrepo "github.com/huanvu/gigmart/pkg/repository/sales"
)

// Deps holds all infrastructure dependencies for building the app and
// services.
type Deps struct {
	Uow    repository.UnitOfWork
	Sales  salesrepo.Reader
	Logger *slog.Logger
	Config *App
}
