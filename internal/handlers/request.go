package handlers

import (
	"fmt"

	"storefront/internal/apperr"
	"storefront/internal/middleware"
	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Guards are the route middlewares handlers attach per route.
type Guards struct {
	Auth  fiber.Handler
	Admin fiber.Handler
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Invalid("body", "invalid request body")
	}
	return nil
}

// currentUser never returns nil for routes behind Guards.Auth.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, fmt.Errorf("no authenticated user: %w", apperr.ErrUnauthenticated)
	}
	return user, nil
}

func message(msg string) fiber.Map {
	return fiber.Map{"message": msg}
}
