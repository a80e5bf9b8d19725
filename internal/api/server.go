package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/makeaweli/satchecker/internal/auth"
	"github.com/makeaweli/satchecker/internal/catalog"
	"github.com/makeaweli/satchecker/internal/ephemeris"
	"github.com/makeaweli/satchecker/internal/health"
	"github.com/makeaweli/satchecker/internal/httputil"
	"github.com/makeaweli/satchecker/internal/metrics"
	"github.com/makeaweli/satchecker/internal/ratelimit"
)

const docsURL = "https://satchecker.readthedocs.io/en/latest/"

// Server wires the HTTP surface to the ephemeris engine and the catalog.
type Server struct {
	App     *fiber.App
	engine  *ephemeris.Engine
	repo    catalog.Repository
	limiter *ratelimit.Limiter
	logger  *slog.Logger
}

// NewServer builds the fiber app with all routes registered. The limiter and
// pinger may be nil; auth applies to the tools group only when a token is set.
func NewServer(engine *ephemeris.Engine, repo catalog.Repository, limiter *ratelimit.Limiter, pinger health.Pinger, authCfg auth.Config, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{App: app, engine: engine, repo: repo, limiter: limiter, logger: logger}

	app.Use(recover.New())
	app.Use(metrics.Middleware())
	app.Use(s.requestLogger())

	// Operational endpoints stay outside the rate limit.
	app.Get("/health", health.Handler(pinger))
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	app.Use(s.rateLimit())

	app.Get("/", s.handleRoot)
	app.Get("/index", s.handleRoot)

	app.Get("/ephemeris/name/", s.handleEphemerisName)
	app.Get("/ephemeris/name-jdstep/", s.handleEphemerisNameJDStep)
	app.Get("/ephemeris/catalog-number/", s.handleEphemerisCatalog)
	app.Get("/ephemeris/catalog-number-jdstep/", s.handleEphemerisCatalogJDStep)
	app.Get("/ephemeris/tle/", s.handleEphemerisTLE)
	app.Get("/ephemeris/tle-jdstep/", s.handleEphemerisTLEJDStep)

	tools := app.Group("/tools", auth.Middleware(authCfg))
	tools.Get("/norad-ids-from-name/", s.handleNoradIDsFromName)
	tools.Get("/names-from-norad-id/", s.handleNamesFromNoradID)
	tools.Get("/get-tle-data/", s.handleGetTLEData)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).
			SendString("Error 404: Page not found\nCheck your spelling to ensure you are accessing the correct endpoint.")
	})

	return s
}

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.Redirect(docsURL, fiber.StatusFound)
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()
		c.Locals("request_id", requestID)

		err := c.Next()

		level := slog.LevelInfo
		if c.Path() == "/health" || c.Path() == "/metrics" {
			level = slog.LevelDebug
		}
		s.logger.Log(c.Context(), level, "request",
			"component", "api",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_ip", httputil.ClientIP(c, true),
		)
		return err
	}
}

func (s *Server) rateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.limiter == nil {
			return c.Next()
		}
		if !s.limiter.Allow(c.Context(), httputil.ClientIP(c, true)) {
			metrics.RateLimited.Inc()
			return c.Status(fiber.StatusTooManyRequests).
				SendString("Error 429: You have exceeded your rate limit")
		}
		return c.Next()
	}
}
