package middleware

import (
	"crypto/subtle"

	"stockroom-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAdminKey gates administrative routes (set, clear, settle, price
// changes, export) behind a shared key. An empty configured key disables the
// gate, which is only acceptable for local development.
func RequireAdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}
		got := c.Get(adminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return response.Unauthorized(c, "Admin key required")
		}
		return c.Next()
	}
}
