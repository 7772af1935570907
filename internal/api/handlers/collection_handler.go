package handlers

import (
	"errors"
	"strconv"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/internal/api/presenters"
	"FoodLoop-Backend/pkg/collection"

	"github.com/gofiber/fiber/v2"
)

type (
	CollectionHandler interface {
		GetTasks(c *fiber.Ctx) error
		ClaimTask(c *fiber.Ctx) error
		CompleteTask(c *fiber.Ctx) error
		GetCollectedWaste(c *fiber.Ctx) error
	}

	collectionHandler struct {
		collectionService collection.CollectionService
	}
)

func NewCollectionHandler(collectionService collection.CollectionService) CollectionHandler {
	return &collectionHandler{collectionService: collectionService}
}

func (h *collectionHandler) GetTasks(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	res, err := h.collectionService.GetTasks(c.Context(), limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTasks, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTasks)
}

func (h *collectionHandler) ClaimTask(c *fiber.Ctx) error {
	collectorID := c.Locals("user_id").(string)
	taskID := c.Params("id")

	if err := h.collectionService.ClaimTask(c.Context(), taskID, collectorID); err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrReportNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, domain.ErrTaskAlreadyClaimed):
			status = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedClaimTask, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClaimTask)
}

func (h *collectionHandler) CompleteTask(c *fiber.Ctx) error {
	collectorID := c.Locals("user_id").(string)
	taskID := c.Params("id")

	res, err := h.collectionService.CompleteTask(c.Context(), taskID, collectorID)
	if err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrReportNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, domain.ErrInvalidTaskState):
			status = fiber.StatusConflict
		case errors.Is(err, domain.ErrNotTaskCollector):
			status = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedCompleteTask, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCompleteTask)
}

func (h *collectionHandler) GetCollectedWaste(c *fiber.Ctx) error {
	collectorID := c.Locals("user_id").(string)

	res, err := h.collectionService.GetCollectorHistory(c.Context(), collectorID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCollected, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCollected)
}
