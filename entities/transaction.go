package entities

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	Type        string    `json:"type"` // "earned_report", "earned_collect", "redeemed"
	Amount      int       `json:"amount"` // always positive, sign is derived from Type
	Description string    `json:"description"`
	Date        time.Time `gorm:"type:timestamp" json:"date"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
