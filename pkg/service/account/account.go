// Package account provides account registration and profile lookup.
package account

import (
	"context"
	"log/slog"

	"github.com/huanvu/gigmart/pkg/domain/account"
	"github.com/huanvu/gigmart/pkg/repository"
)

// Service manages account registration and lookup. Authentication lives in
// the auth service.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an account Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register validates the registration info and creates the account.
func (s *Service) Register(
	ctx context.Context,
	username, fullname, password, email, phone string,
) (*account.Account, error) {
	a, err := account.New(username, fullname, password, email, phone)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Accounts().Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account registered", "username", a.Username)
	return a, nil
}

// Find returns the account for username.
func (s *Service) Find(ctx context.Context, username string) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = uow.Accounts().FindByUsername(ctx, username)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
