package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the header carrying the request trace ID.
const HeaderName = "X-Ray-ID"

// New returns a middleware that assigns every request a RayID. An incoming
// ID is reused so traces can span callers; otherwise a fresh UUID is issued.
// The ID is stored in locals and echoed in the response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("ray_id", id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
