package httputil

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP extracts the client IP address from the request.
// When trustProxy is true, X-Forwarded-For (first entry) and X-Real-IP
// headers are checked before falling back to the connection address. Only
// enable trustProxy when the server is behind a trusted reverse proxy.
func ClientIP(c *fiber.Ctx, trustProxy bool) string {
	if trustProxy {
		if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
			// Take the first (leftmost) IP — the original client.
			if i := strings.IndexByte(xff, ','); i > 0 {
				xff = xff[:i]
			}
			if ip := strings.TrimSpace(xff); ip != "" {
				return ip
			}
		}
		if xri := c.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}
	return c.IP()
}
