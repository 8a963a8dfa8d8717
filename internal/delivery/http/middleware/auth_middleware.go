package middleware

import (
	"strings"

	"talentswipe/internal/domain/user"
	pkgjwt "talentswipe/internal/pkg/jwt"
	"talentswipe/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "user_role"
)

type AuthMiddleware struct {
	jwt pkgjwt.Service
}

func NewAuthMiddleware(jwt pkgjwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// RequireAuth validates the Bearer access token and stores the caller's
// identity in the request locals.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return response.Error(c, fiber.StatusUnauthorized, "missing authorization header", nil)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return response.Error(c, fiber.StatusUnauthorized, "invalid authorization header", nil)
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			return response.Error(c, fiber.StatusUnauthorized, "invalid or expired token", nil)
		}
		if m.jwt.IsRefreshToken(claims) {
			return response.Error(c, fiber.StatusUnauthorized, "refresh token not accepted here", nil)
		}

		if claims.UserID == uuid.Nil {
			return response.Error(c, fiber.StatusUnauthorized, "invalid token subject", nil)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxRoleKey, claims.Role)
		return c.Next()
	}
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id, ok
}

// Role reads the authenticated role set by RequireAuth.
func Role(c fiber.Ctx) (user.Role, bool) {
	role, ok := c.Locals(CtxRoleKey).(user.Role)
	return role, ok
}
