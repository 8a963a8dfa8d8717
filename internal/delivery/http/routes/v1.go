package routes

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterV1 mounts the authenticated API surface. Every v1 route
// requires a valid access token.
func RegisterV1(r fiber.Router, reg *Registry) {
	if r == nil || reg == nil {
		return
	}

	protected := r.Group("", reg.Auth.RequireAuth())

	reg.Swipes.RegisterRoutes(protected)
	reg.Matches.RegisterRoutes(protected)
	reg.Messages.RegisterRoutes(protected)
	reg.Discovery.RegisterRoutes(protected)
	reg.Settings.RegisterRoutes(protected)
}
