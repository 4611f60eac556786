package middlewares

import (
	"strings"
	"time"

	"nexstore/helpers"
	"nexstore/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func bearerToken(c *fiber.Ctx) string {
	authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

func authenticate(c *fiber.Ctx) error {
	raw := bearerToken(c)
	if raw == "" {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "MISSING_TOKEN")
	}

	userID, username, role, err := helpers.ParseAccessToken(raw)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
	}

	c.Locals("user_id", userID)
	c.Locals("username", username)
	c.Locals("role", role)
	return nil
}

// UserAuth accepts any valid token and hydrates the actor locals.
func UserAuth(c *fiber.Ctx) error {
	if err := authenticate(c); err != nil {
		return err
	}
	return c.Next()
}

// AdminAuth additionally requires the admin claim.
func AdminAuth(c *fiber.Ctx) error {
	if err := authenticate(c); err != nil {
		return err
	}
	if c.Locals("role") != models.RoleAdmin {
		return helpers.JSONError(c, fiber.StatusForbidden, "ADMIN_ACCESS_REQUIRED")
	}
	return c.Next()
}

// AuthRateLimiter throttles credential endpoints per client IP.
func AuthRateLimiter(maxPerMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        maxPerMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return helpers.JSONError(c, fiber.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED")
		},
	})
}
