// Package message implements the message repository over gorm.
package message

import (
	"context"

	"github.com/huanvu/gigmart/infra/repository/model"
	"github.com/huanvu/gigmart/pkg/domain/message"
	repo "github.com/huanvu/gigmart/pkg/repository/message"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a message repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *message.Message) error {
	row := model.Message{
		UsernameFrom: m.From,
		UsernameTo:   m.To,
		Content:      m.Content,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	m.ID = row.ID
	m.CreatedAt = row.CreatedAt
	return nil
}

func (r *repository) ListNotifications(ctx context.Context, username string) ([]message.Message, error) {
	var rows []model.Message
	err := r.db.WithContext(ctx).
		Where("username_from = ? AND username_to = ?", message.SystemSender, username).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]message.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, message.Message{
			ID:        row.ID,
			From:      row.UsernameFrom,
			To:        row.UsernameTo,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
