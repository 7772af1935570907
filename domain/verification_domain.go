package domain

import (
	"errors"
)

var (
	MessageSuccessVerifyFood = "food verified successfully"
	MessageFailedVerifyFood  = "failed to verify food"

	ErrVerificationRejected          = errors.New("food verification rejected")
	ErrVerificationTimeout           = errors.New("food verification timed out")
	ErrMalformedVerificationResponse = errors.New("verification response did not contain a parsable result")
	ErrVerificationImageMissing      = errors.New("image is required")
)

type (
	VerifyFoodRequest struct {
		Image string `json:"image" validate:"required"` // base64, with or without data URL prefix
	}

	// FoodVerification is the structured result extracted from the vision model.
	FoodVerification struct {
		FoodType    string  `json:"foodType"`
		Quantity    string  `json:"quantity"`
		Confidence  float64 `json:"confidence"`
		ExpiryHours int     `json:"expiryHours"`
	}
)
