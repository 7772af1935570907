package entities

import (
	"github.com/google/uuid"
)

type Report struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	Location           string     `json:"location"`
	FoodType           string     `json:"food_type"`
	Quantity           string     `json:"quantity"`
	ImageURL           string     `json:"image_url,omitempty"`
	VerificationResult string     `json:"verification_result,omitempty" gorm:"type:text"`
	Status             string     `json:"status"` // "pending", "in_progress", "verified"
	CollectorID        *uuid.UUID `json:"collector_id,omitempty"`

	User      *User `gorm:"foreignKey:UserID"`
	Collector *User `gorm:"foreignKey:CollectorID"`
	Timestamp
}
