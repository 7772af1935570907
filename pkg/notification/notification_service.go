package notification

import (
	"context"
	"time"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	NotificationService interface {
		Notify(ctx context.Context, tx *gorm.DB, userID uuid.UUID, message string, notificationType string) error
		GetUnread(ctx context.Context, userID string) ([]*domain.NotificationResponse, error)
		MarkAsRead(ctx context.Context, notificationID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
	}
)

func NewNotificationService(notificationRepository NotificationRepository) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
	}
}

func (s *notificationService) Notify(ctx context.Context, tx *gorm.DB, userID uuid.UUID, message string, notificationType string) error {
	notification := &entities.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
		Type:    notificationType,
		IsRead:  false,
	}
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()
	return s.notificationRepository.CreateNotification(ctx, tx, notification)
}

func (s *notificationService) GetUnread(ctx context.Context, userID string) ([]*domain.NotificationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	notifications, err := s.notificationRepository.GetUnreadNotifications(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, &domain.NotificationResponse{
			ID:        n.ID.String(),
			Message:   n.Message,
			Type:      n.Type,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return result, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, notificationID string) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return domain.ErrParseUUID
	}

	affected, err := s.notificationRepository.MarkAsRead(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
