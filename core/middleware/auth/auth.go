// Package auth protects routes with a static API key.
package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Header carries the API key.
const Header = "X-API-Key"

// Config configures the middleware.
type Config struct {
	// ApiKey is the expected key. Empty disables the check.
	ApiKey string
	// Next skips the check when it returns true.
	Next func(c *fiber.Ctx) bool
}

// New returns middleware rejecting requests without the configured key.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" || (cfg.Next != nil && cfg.Next(c)) {
			return c.Next()
		}
		key := c.Get(Header)
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or missing API key"})
		}
		return c.Next()
	}
}
