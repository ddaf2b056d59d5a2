package http

import "github.com/gofiber/fiber/v2"

// NewAuthMiddleware returns a fiber handler that validates the Authorization
// header against the configured API token. Missing or invalid tokens get 401;
// valid requests pass through untouched.
func NewAuthMiddleware(validToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}
		if header != "Bearer "+validToken {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		return c.Next()
	}
}
