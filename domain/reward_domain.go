package domain

import (
	"errors"
	"time"
)

const (
	// Canonical name of the per-user points account row
	PointsAccountName = "Points Account"

	TransactionEarnedReport  = "earned_report"
	TransactionEarnedCollect = "earned_collect"
	TransactionRedeemed      = "redeemed"
)

var (
	MessageSuccessGetRewards      = "available rewards retrieved successfully"
	MessageSuccessRedeem          = "reward redeemed successfully"
	MessageSuccessGetBalance      = "balance retrieved successfully"
	MessageSuccessGetTransactions = "transaction history retrieved successfully"
	MessageSuccessGetLeaderboard  = "leaderboard retrieved successfully"
	MessageFailedGetRewards       = "failed to retrieve available rewards"
	MessageFailedRedeem           = "failed to redeem reward"
	MessageFailedGetBalance       = "failed to retrieve balance"
	MessageFailedGetTransactions  = "failed to retrieve transaction history"
	MessageFailedGetLeaderboard   = "failed to retrieve leaderboard"

	ErrRewardNotFound         = errors.New("reward not found")
	ErrInsufficientPoints     = errors.New("insufficient points")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

type (
	// RedeemRequest with an empty RewardID redeems the user's entire balance.
	RedeemRequest struct {
		RewardID string `json:"reward_id" validate:"omitempty,uuid"`
	}

	RedeemResponse struct {
		RewardName     string `json:"reward_name"`
		PointsRedeemed int    `json:"points_redeemed"`
		Balance        int    `json:"balance"`
	}

	AvailableReward struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		Cost           int    `json:"cost"`
		Points         int    `json:"points"`
		Level          int    `json:"level"`
		Description    string `json:"description,omitempty"`
		CollectionInfo string `json:"collection_info"`
	}

	TransactionResponse struct {
		ID          string    `json:"id"`
		Type        string    `json:"type"`
		Amount      int       `json:"amount"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
	}

	LeaderboardEntry struct {
		UserID   string `json:"user_id"`
		UserName string `json:"user_name"`
		Points   int    `json:"points"`
		Level    int    `json:"level"`
	}
)
