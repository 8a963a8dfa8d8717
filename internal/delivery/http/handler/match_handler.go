package handler

import (
	"errors"

	"talentswipe/internal/delivery/http/dto"
	"talentswipe/internal/delivery/http/middleware"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/pkg/response"
	"talentswipe/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Get("/", h.List)
	grp.Get("/stats", h.Stats)
	grp.Get("/:match_id", h.Get)
	grp.Delete("/:match_id", h.Unmatch)
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	matches, pagination, err := h.uc.List(c.Context(), userID, role, queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := dto.PagedResponse[dto.MatchResponse]{
		Items:      dto.NewMatchListResponse(matches),
		Pagination: dto.NewPaginationResponse(pagination),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) Stats(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	stats, err := h.uc.Stats(c.Context(), userID, role)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchStatsResponse(stats))
}

func (h *MatchHandler) Get(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match id", nil, err)
	}

	m, err := h.uc.Get(c.Context(), matchID, userID, role)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}

func (h *MatchHandler) Unmatch(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match id", nil, err)
	}

	if err := h.uc.Unmatch(c.Context(), matchID, userID, role); err != nil {
		return mapMatchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func identity(c fiber.Ctx) (uuid.UUID, user.Role, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, "", middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	role, ok := middleware.Role(c)
	if !ok {
		return uuid.Nil, "", middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, role, nil
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a party to this match", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
