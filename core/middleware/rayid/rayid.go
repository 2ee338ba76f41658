// Package rayid tags every request with a unique id.
package rayid

import (
	"inventory-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request id on requests and responses.
const Header = "X-Ray-ID"

// New returns middleware that reuses an incoming X-Ray-ID or generates one,
// stores it in Locals under logger.RayIDKey and echoes it on the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(logger.RayIDKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// FromCtx returns the request id, or "" outside the middleware.
func FromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(logger.RayIDKey).(string)
	return id
}
