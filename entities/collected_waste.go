package entities

import (
	"time"

	"github.com/google/uuid"
)

type CollectedWaste struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReportID           uuid.UUID `json:"report_id"`
	CollectorID        uuid.UUID `json:"collector_id"`
	CollectionDate     time.Time `gorm:"type:timestamp" json:"collection_date"`
	Status             string    `json:"status"`
	Notes              string    `json:"notes,omitempty"`
	VerificationResult string    `json:"verification_result,omitempty" gorm:"type:text"`

	Report    *Report `gorm:"foreignKey:ReportID"`
	Collector *User   `gorm:"foreignKey:CollectorID"`
	Timestamp
}
