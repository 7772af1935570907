package handlers

import (
	"errors"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/internal/api/presenters"
	"FoodLoop-Backend/pkg/verification"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	VerificationHandler interface {
		VerifyFood(c *fiber.Ctx) error
	}

	verificationHandler struct {
		verificationService verification.VerificationService
		validator           *validator.Validate
	}
)

func NewVerificationHandler(verificationService verification.VerificationService, validator *validator.Validate) VerificationHandler {
	return &verificationHandler{
		verificationService: verificationService,
		validator:           validator,
	}
}

func (h *verificationHandler) VerifyFood(c *fiber.Ctx) error {
	req := new(domain.VerifyFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyFood, err)
	}

	res, err := h.verificationService.VerifyFoodBase64(c.Context(), req.Image)
	if err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrVerificationRejected):
			status = fiber.StatusUnprocessableEntity
		case errors.Is(err, domain.ErrVerificationTimeout):
			status = fiber.StatusGatewayTimeout
		case errors.Is(err, domain.ErrMalformedVerificationResponse):
			status = fiber.StatusBadGateway
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedVerifyFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessVerifyFood)
}
