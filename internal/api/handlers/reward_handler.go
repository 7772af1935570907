package handlers

import (
	"errors"
	"strconv"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/internal/api/presenters"
	"FoodLoop-Backend/pkg/ledger"
	"FoodLoop-Backend/pkg/reward"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RewardHandler interface {
		GetAvailableRewards(c *fiber.Ctx) error
		Redeem(c *fiber.Ctx) error
		GetBalance(c *fiber.Ctx) error
		GetTransactions(c *fiber.Ctx) error
		GetLeaderboard(c *fiber.Ctx) error
	}

	rewardHandler struct {
		rewardService reward.RewardService
		ledgerService ledger.LedgerService
		validator     *validator.Validate
	}
)

func NewRewardHandler(rewardService reward.RewardService, ledgerService ledger.LedgerService, validator *validator.Validate) RewardHandler {
	return &rewardHandler{
		rewardService: rewardService,
		ledgerService: ledgerService,
		validator:     validator,
	}
}

func (h *rewardHandler) GetAvailableRewards(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.rewardService.GetAvailableRewards(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRewards, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRewards)
}

func (h *rewardHandler) Redeem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RedeemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRedeem, err)
	}

	res, err := h.rewardService.Redeem(c.Context(), *req, userID)
	if err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrRewardNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, domain.ErrInsufficientPoints):
			status = fiber.StatusUnprocessableEntity
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedRedeem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRedeem)
}

func (h *rewardHandler) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	balance, err := h.ledgerService.Balance(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBalance, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"balance": balance}, fiber.StatusOK, domain.MessageSuccessGetBalance)
}

func (h *rewardHandler) GetTransactions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	res, err := h.ledgerService.History(c.Context(), userID, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTransactions, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTransactions)
}

func (h *rewardHandler) GetLeaderboard(c *fiber.Ctx) error {
	res, err := h.rewardService.GetLeaderboard(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLeaderboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLeaderboard)
}
