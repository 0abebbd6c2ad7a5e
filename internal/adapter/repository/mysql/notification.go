package mysql

import (
	"context"

	"gorm.io/gorm"

	notificationDomain "sacco-loan-service/internal/domain/notification"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notificationDomain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]notificationDomain.Notification, error) {
	var out []notificationDomain.Notification
	res := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&out)
	return out, res.Error
}
