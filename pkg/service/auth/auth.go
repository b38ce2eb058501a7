// Package auth provides username/password login and JWT issuance.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/huanvu/gigmart/pkg/config"
	"github.com/huanvu/gigmart/pkg/domain/account"
	"github.com/huanvu/gigmart/pkg/repository"
)

// Claims is the JWT payload issued on login.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Service authenticates users and issues JWTs.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth Service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login checks the credentials and returns a signed token together with
// the account.
func (s *Service) Login(ctx context.Context, username, password string) (string, *account.Account, error) {
	a, err := s.verify(ctx, username, password)
	if err != nil {
		s.logger.Warn("login failed", "username", username, "error", err)
		return "", nil, err
	}

	claims := Claims{
		Username: a.Username,
		IsAdmin:  a.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   a.Username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.Expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("login successful", "username", a.Username)
	return token, a, nil
}

// VerifyPassword re-checks a logged-in user's password. Sensitive
// operations (manual top-up, marking a transaction finished) require it on
// top of a valid token.
func (s *Service) VerifyPassword(ctx context.Context, username, password string) error {
	_, err := s.verify(ctx, username, password)
	return err
}

func (s *Service) verify(ctx context.Context, username, password string) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = uow.Accounts().FindByUsername(ctx, username)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := a.CheckPassword(password); err != nil {
		return nil, err
	}
	return a, nil
}
