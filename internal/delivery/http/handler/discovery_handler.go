package handler

import (
	"errors"
	"strconv"
	"strings"

	"talentswipe/internal/delivery/http/dto"
	"talentswipe/internal/delivery/http/middleware"
	"talentswipe/internal/domain/profile"
	"talentswipe/internal/pkg/response"
	"talentswipe/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DiscoveryHandler struct {
	uc usecase.DiscoveryUsecase
}

func NewDiscoveryHandler(uc usecase.DiscoveryUsecase) *DiscoveryHandler {
	return &DiscoveryHandler{uc: uc}
}

func (h *DiscoveryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/discovery")
	grp.Get("/candidates", h.CandidateFeed)
	grp.Get("/filters", h.GetFilters)
	grp.Put("/filters", h.SaveFilters)
}

func (h *DiscoveryHandler) CandidateFeed(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	override, err := parseFeedFilterQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid feed filters", nil, err)
	}

	profiles, err := h.uc.CandidateFeed(c.Context(), userID, role, override)
	if err != nil {
		return mapDiscoveryUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateFeedResponse(profiles))
}

func (h *DiscoveryHandler) GetFilters(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	f, err := h.uc.GetFilters(c.Context(), userID, role)
	if err != nil {
		return mapDiscoveryUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFeedFiltersResponse(f))
}

func (h *DiscoveryHandler) SaveFilters(c fiber.Ctx) error {
	userID, role, appErr := identity(c)
	if appErr != nil {
		return appErr
	}

	var req dto.FeedFiltersRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	if err := h.uc.SaveFilters(c.Context(), userID, role, req.ToFilter()); err != nil {
		return mapDiscoveryUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func parseFeedFilterQuery(c fiber.Ctx) (profile.Filter, error) {
	var f profile.Filter

	if raw := c.Query("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				f.Skills = append(f.Skills, s)
			}
		}
	}
	f.Location = strings.TrimSpace(c.Query("location"))

	if raw := c.Query("min_yoe"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return f, errors.New("min_yoe must be a non-negative integer")
		}
		f.MinYOE = &n
	}
	if raw := c.Query("max_yoe"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return f, errors.New("max_yoe must be a non-negative integer")
		}
		f.MaxYOE = &n
	}

	return f, nil
}

func mapDiscoveryUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid filters", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Recruiter role required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
