package handlers

import (
	"errors"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/internal/api/presenters"
	"FoodLoop-Backend/pkg/location"

	"github.com/gofiber/fiber/v2"
)

type (
	LocationHandler interface {
		ResolveAddress(c *fiber.Ctx) error
	}

	locationHandler struct {
		locationService location.LocationService
	}
)

func NewLocationHandler(locationService location.LocationService) LocationHandler {
	return &locationHandler{locationService: locationService}
}

func (h *locationHandler) ResolveAddress(c *fiber.Ctx) error {
	lat := c.Query("lat")
	lng := c.Query("lng")

	res, err := h.locationService.ResolveAddress(c.Context(), lat, lng)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrAddressNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedGetLocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLocation)
}
