// Package notification delivers system messages to users.
package notification

import (
	"context"
	"log/slog"

	"github.com/huanvu/gigmart/pkg/domain/message"
	"github.com/huanvu/gigmart/pkg/repository"
)

// Service writes and reads system notifications. Delivery is best-effort:
// callers on financial paths log failures instead of rolling back.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a notification Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Notify sends a system message to username.
func (s *Service) Notify(ctx context.Context, username, content string) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Messages().Create(ctx, message.Notification(username, content))
	})
}

// NotifyQuietly sends a system message and only logs on failure. Used by
// flows whose outcome must not depend on notification delivery.
func (s *Service) NotifyQuietly(ctx context.Context, username, content string) {
	if err := s.Notify(ctx, username, content); err != nil {
		s.logger.Warn("notification delivery failed",
			"username", username, "error", err)
	}
}

// ListForUser returns all of a user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, username string) (msgs []message.Message, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		msgs, err = uow.Messages().ListNotifications(ctx, username)
		return err
	})
	return msgs, err
}
