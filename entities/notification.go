package entities

import (
	"github.com/google/uuid"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID  uuid.UUID `gorm:"index" json:"user_id"`
	Message string    `json:"message"`
	Type    string    `json:"type"` // "reward", "collection"
	IsRead  bool      `json:"is_read"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
