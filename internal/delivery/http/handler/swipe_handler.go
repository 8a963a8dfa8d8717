package handler

import (
	"errors"

	"talentswipe/internal/delivery/http/dto"
	"talentswipe/internal/delivery/http/middleware"
	"talentswipe/internal/domain/swipe"
	"talentswipe/internal/pkg/response"
	"talentswipe/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SwipeHandler struct {
	uc usecase.SwipeUsecase
}

func NewSwipeHandler(uc usecase.SwipeUsecase) *SwipeHandler {
	return &SwipeHandler{uc: uc}
}

func (h *SwipeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/swipes")
	grp.Post("/", h.Record)
	grp.Get("/", h.History)
	grp.Get("/stats", h.Stats)
}

func (h *SwipeHandler) Record(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	role, ok := middleware.Role(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.RecordSwipeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	targetType, ok := swipe.ParseTargetType(req.TargetType)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid target type", nil, nil)
	}
	direction, ok := swipe.ParseDirection(req.Direction)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid direction", nil, nil)
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid target id", nil, err)
	}

	res, err := h.uc.Record(c.Context(), userID, role, usecase.RecordSwipeInput{
		TargetType: targetType,
		TargetID:   targetID,
		Direction:  direction,
	})
	if err != nil {
		return mapSwipeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewSwipeResultResponse(res))
}

func (h *SwipeHandler) History(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var targetType *swipe.TargetType
	if raw := c.Query("target_type"); raw != "" {
		tt, ok := swipe.ParseTargetType(raw)
		if !ok {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid target type", nil, nil)
		}
		targetType = &tt
	}

	swipes, pagination, err := h.uc.History(c.Context(), userID, targetType, queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		return mapSwipeUsecaseError(err)
	}

	out := dto.PagedResponse[dto.SwipeResponse]{
		Items:      dto.NewSwipeListResponse(swipes),
		Pagination: dto.NewPaginationResponse(pagination),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SwipeHandler) Stats(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	stats, err := h.uc.Stats(c.Context(), userID)
	if err != nil {
		return mapSwipeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSwipeStatsResponse(stats))
}

func mapSwipeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid swipe input", nil, err)
	case errors.Is(err, usecase.ErrInvalidTargetForRole):
		return middleware.NewAppError(fiber.StatusForbidden, "Target type not allowed for role", nil, err)
	case errors.Is(err, usecase.ErrDuplicateSwipe):
		return middleware.NewAppError(fiber.StatusConflict, "Already swiped on this target", nil, err)
	case errors.Is(err, usecase.ErrTargetNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Swipe target not found", nil, err)
	case errors.Is(err, usecase.ErrTargetUnavailable):
		return middleware.NewAppError(fiber.StatusConflict, "Swipe target no longer available", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
