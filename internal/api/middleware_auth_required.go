package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sonali689/rebate-portal/internal/services"
)

// AuthRequired authenticates the bearer token and loads the live user
// record into the request context.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return apiError(c, fiber.StatusUnauthorized, "missing or invalid token")
	}

	email, err := handler.parseToken(tokenString)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "missing or invalid token")
	}

	user, err := handler.authService.ResolveByEmail(email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return apiError(c, fiber.StatusUnauthorized, "user not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || !user.IsAdmin() {
		return apiError(c, fiber.StatusForbidden, "Access denied. Admin privileges required.")
	}
	return c.Next()
}

func (handler *Handler) StudentOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || !user.IsStudent() {
		return apiError(c, fiber.StatusForbidden, "Students only.")
	}
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
