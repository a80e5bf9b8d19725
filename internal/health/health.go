package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a backing store is reachable. *pgxpool.Pool
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the health endpoint. With a nil pinger the service reports
// healthy whenever it can answer at all.
func Handler(p Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).
					SendString("Error: Unable to connect to the element set database")
			}
		}
		return c.JSON(fiber.Map{"message": "Healthy"})
	}
}
