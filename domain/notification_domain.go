package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkAsRead       = "notification marked as read"
	MessageFailedGetNotifications  = "failed to retrieve notifications"
	MessageFailedMarkAsRead        = "failed to mark notification as read"

	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
