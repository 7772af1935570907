package notification

import (
	"context"

	"FoodLoop-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	NotificationRepository interface {
		CreateNotification(ctx context.Context, tx *gorm.DB, notification *entities.Notification) error
		GetUnreadNotifications(ctx context.Context, userID uuid.UUID) ([]*entities.Notification, error)
		MarkAsRead(ctx context.Context, id uuid.UUID) (int64, error)
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *notificationRepository) CreateNotification(ctx context.Context, tx *gorm.DB, notification *entities.Notification) error {
	return r.conn(tx).WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetUnreadNotifications(ctx context.Context, userID uuid.UUID) ([]*entities.Notification, error) {
	var notifications []*entities.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAsRead flips is_read false -> true; the read flag never goes back.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
