package domain

import (
	"errors"
)

var (
	MessageSuccessGetLocation = "location resolved successfully"
	MessageFailedGetLocation  = "failed to resolve location"

	ErrInvalidCoordinates = errors.New("latitude and longitude are required")
	ErrAddressNotFound    = errors.New("no suitable address found")
)

type LocationResponse struct {
	Address string `json:"address"`
}
