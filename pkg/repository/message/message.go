// Package message defines the message and notification persistence
// interface.
package message

import (
	"context"

	"github.com/huanvu/gigmart/pkg/domain/message"
)

// Repository persists chat messages and system notifications.
type Repository interface {
	Create(ctx context.Context, m *message.Message) error
	// ListNotifications returns the system messages sent to username,
	// newest first.
	ListNotifications(ctx context.Context, username string) ([]message.Message, error)
}
