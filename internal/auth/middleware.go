package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userIDLocal = "user_id"

// Middleware verifies the Authorization bearer token and stores the caller's
// user id in the request locals. A missing token is reported as 403 and a bad
// one as 401, matching the historical API contract.
func Middleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"msg": "Token not provided."})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "Invalid token."})
		}

		userID, err := ParseToken(strings.TrimSpace(parts[1]), secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "Invalid token."})
		}

		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// UserID extracts the authenticated caller's id set by Middleware.
func UserID(c *fiber.Ctx) (int64, bool) {
	uid, ok := c.Locals(userIDLocal).(int64)
	if !ok || uid <= 0 {
		return 0, false
	}
	return uid, true
}
