package entities

import (
	"github.com/google/uuid"
)

// Reward rows serve two roles: the per-user points account (one row per user,
// unique on user_id+name, points kept in sync with the transaction ledger) and
// redeemable catalog items (is_available=true, cost set, user_id is the nil UUID).
type Reward struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"uniqueIndex:idx_rewards_user_name" json:"user_id"`
	Name           string    `gorm:"uniqueIndex:idx_rewards_user_name" json:"name"`
	CollectionInfo string    `json:"collection_info"`
	Points         int       `json:"points"`
	Level          int       `json:"level"`
	IsAvailable    bool      `json:"is_available"`
	Description    string    `json:"description,omitempty"`
	Cost           int       `json:"cost,omitempty"`

	Timestamp
}
