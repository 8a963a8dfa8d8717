package handler

import (
	"errors"
	"time"

	"talentswipe/internal/delivery/http/dto"
	"talentswipe/internal/delivery/http/middleware"
	"talentswipe/internal/pkg/response"
	"talentswipe/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches/:match_id/messages")
	grp.Post("/", h.Send)
	grp.Get("/", h.List)
}

func (h *MessageHandler) Send(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match id", nil, err)
	}

	var req dto.SendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	msg, err := h.uc.Send(c.Context(), matchID, userID, role, req.Body)
	if err != nil {
		return mapMessageUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewMessageResponse(msg))
}

func (h *MessageHandler) List(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match id", nil, err)
	}

	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid before timestamp", nil, err)
		}
		before = &t
	}

	msgs, hasMore, err := h.uc.List(c.Context(), matchID, userID, role, before, queryInt(c, "limit", 50))
	if err != nil {
		return mapMessageUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageListResponse(msgs, hasMore))
}

func mapMessageUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid message", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a party to this match", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
