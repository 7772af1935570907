package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	// Points credited to the reporter when a report is created
	PointsPerReport = 10

	// Used when a report arrives without a location
	DefaultReportLocation = "PES College Of Engineering, Mandya, Karnataka"

	ReportStatusPending    = "pending"
	ReportStatusInProgress = "in_progress"
	ReportStatusVerified   = "verified"
)

var (
	MessageSuccessCreateReport = "report created successfully"
	MessageSuccessGetReports   = "reports retrieved successfully"
	MessageFailedCreateReport  = "failed to create report"
	MessageFailedGetReports    = "failed to retrieve reports"

	ErrReportNotFound = errors.New("report not found")
)

type (
	CreateReportRequest struct {
		Location string                `json:"location" form:"location"`
		Metadata string                `json:"metadata" form:"metadata"`
		Image    *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ReportResponse struct {
		ID                 string    `json:"id"`
		UserID             string    `json:"user_id"`
		Location           string    `json:"location"`
		FoodType           string    `json:"food_type"`
		Quantity           string    `json:"quantity"`
		ImageURL           string    `json:"image_url,omitempty"`
		VerificationResult string    `json:"verification_result,omitempty"`
		Status             string    `json:"status"`
		CollectorID        string    `json:"collector_id,omitempty"`
		CreatedAt          time.Time `json:"created_at"`
	}
)
