package handler

import (
	"errors"

	"talentswipe/internal/delivery/http/dto"
	"talentswipe/internal/delivery/http/middleware"
	"talentswipe/internal/pkg/response"
	"talentswipe/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SettingsHandler struct {
	uc usecase.CooldownUsecase
}

func NewSettingsHandler(uc usecase.CooldownUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

func (h *SettingsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/me")
	grp.Get("/cooldown", h.GetCooldown)
	grp.Put("/cooldown", h.SetCooldown)
}

func (h *SettingsHandler) GetCooldown(c fiber.Ctx) error {
	userID, _, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	days, err := h.uc.GetCooldownDays(c.Context(), userID)
	if err != nil {
		return mapSettingsUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CooldownResponse{CooldownDays: days})
}

func (h *SettingsHandler) SetCooldown(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	var req dto.CooldownRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	if err := h.uc.SetCooldownDays(c.Context(), userID, role, req.CooldownDays); err != nil {
		return mapSettingsUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CooldownResponse{CooldownDays: req.CooldownDays})
}

func mapSettingsUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cooldown days out of range", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Recruiter role required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
