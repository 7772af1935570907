package notification

import (
	"context"
	"fmt"
	"testing"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) NotificationService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Notification{}))
	return NewNotificationService(NewNotificationRepository(db))
}

func TestNotifyAndGetUnread(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, service.Notify(ctx, nil, userID, "You've earned 10 points for reporting food waste!", "reward"))
	require.NoError(t, service.Notify(ctx, nil, uuid.New(), "someone else's", "reward"))

	unread, err := service.GetUnread(ctx, userID.String())
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, "reward", unread[0].Type)
	require.False(t, unread[0].IsRead)
}

func TestMarkAsRead(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, service.Notify(ctx, nil, userID, "message", "collection"))

	unread, err := service.GetUnread(ctx, userID.String())
	require.NoError(t, err)
	require.Len(t, unread, 1)

	require.NoError(t, service.MarkAsRead(ctx, unread[0].ID))

	unread, err = service.GetUnread(ctx, userID.String())
	require.NoError(t, err)
	require.Empty(t, unread)

	// Second read of the same notification no longer matches
	err = service.MarkAsRead(ctx, uuid.New().String())
	require.ErrorIs(t, err, domain.ErrNotificationNotFound)
}
