package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireAdminKey gates the admin surface behind the X-Admin-Key header.
// With no key configured the surface hard-fails rather than opening up.
func RequireAdminKey(key string) fiber.Handler {
	key = strings.TrimSpace(key)
	if key == "" {
		return func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusInternalServerError, "ADMIN_KEY not set")
		}
	}

	return func(c *fiber.Ctx) error {
		got := strings.TrimSpace(c.Get("X-Admin-Key"))
		if got == "" || got != key {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid admin key")
		}
		return c.Next()
	}
}
