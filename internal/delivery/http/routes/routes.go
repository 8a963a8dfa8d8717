package routes

import (
	"talentswipe/internal/delivery/http/handler"
	"talentswipe/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health    *handler.HealthHandler
	Swipes    *handler.SwipeHandler
	Matches   *handler.MatchHandler
	Messages  *handler.MessageHandler
	Discovery *handler.DiscoveryHandler
	Settings  *handler.SettingsHandler
	Auth      *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)
	r.registerAPI(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r)
}
