package domain

import (
	"errors"
	"time"
)

const (
	// Collection rewards are drawn uniformly from [CollectRewardMin, CollectRewardMax]
	CollectRewardMin = 10
	CollectRewardMax = 59
)

var (
	MessageSuccessGetTasks     = "collection tasks retrieved successfully"
	MessageSuccessClaimTask    = "task claimed successfully"
	MessageSuccessCompleteTask = "task completed successfully"
	MessageSuccessGetCollected = "collected waste history retrieved successfully"
	MessageFailedGetTasks      = "failed to retrieve collection tasks"
	MessageFailedClaimTask     = "failed to claim task"
	MessageFailedCompleteTask  = "failed to complete task"
	MessageFailedGetCollected  = "failed to retrieve collected waste history"

	ErrTaskAlreadyClaimed = errors.New("task already claimed by another collector")
	ErrInvalidTaskState   = errors.New("task is not in a state that allows this transition")
	ErrNotTaskCollector   = errors.New("task is assigned to a different collector")
)

type (
	CollectionTaskResponse struct {
		ID          string    `json:"id"`
		Location    string    `json:"location"`
		FoodType    string    `json:"food_type"`
		Quantity    string    `json:"quantity"`
		ImageURL    string    `json:"image_url,omitempty"`
		Status      string    `json:"status"`
		CollectorID string    `json:"collector_id,omitempty"`
		Date        string    `json:"date"`
		CreatedAt   time.Time `json:"created_at"`
	}

	CompleteTaskResponse struct {
		ReportID     string `json:"report_id"`
		PointsEarned int    `json:"points_earned"`
		CollectedID  string `json:"collected_id"`
	}

	CollectedWasteResponse struct {
		ID             string    `json:"id"`
		ReportID       string    `json:"report_id"`
		CollectorID    string    `json:"collector_id"`
		CollectionDate time.Time `json:"collection_date"`
		Status         string    `json:"status"`
		Notes          string    `json:"notes,omitempty"`
	}
)
