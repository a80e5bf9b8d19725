package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/makeaweli/satchecker/internal/catalog"
	"github.com/makeaweli/satchecker/internal/ephemeris"
	"github.com/makeaweli/satchecker/internal/propagation"
	"github.com/makeaweli/satchecker/internal/tle"
)

const badRequestMessage = "Error 400: Incorrect parameters or too many results to return " +
	"(maximum of 1000 in a single request)\nCheck your request and try again."

func badRequest(c *fiber.Ctx, detail string) error {
	body := badRequestMessage
	if detail != "" {
		body += "\n\n" + detail
	}
	return c.Status(fiber.StatusBadRequest).SendString(body)
}

func serverError(c *fiber.Ctx, description string) error {
	return c.Status(fiber.StatusInternalServerError).
		SendString("Error 500: Internal server error: " + description)
}

// writeError maps engine and catalog failures onto the public error contract.
// Bad input is the caller's fault; missing or unusable element data is not.
func (s *Server) writeError(c *fiber.Ctx, err error) error {
	var (
		rangeErr   ephemeris.InvalidRangeError
		identErr   catalog.InvalidIdentifierError
		missing    catalog.NoElementSetFoundError
		malformed  tle.MalformedElementSetError
		propFailed propagation.PropagationError
	)

	switch {
	case errors.As(err, &rangeErr):
		return badRequest(c, rangeErr.Error())
	case errors.As(err, &identErr):
		return badRequest(c, identErr.Error())
	case errors.As(err, &missing):
		return serverError(c, "No TLE found")
	case errors.As(err, &malformed):
		return serverError(c, "Incorrect TLE format")
	case errors.As(err, &propFailed):
		return serverError(c, propFailed.Error())
	default:
		s.logger.Error("request failed", "error", err)
		return serverError(c, "unexpected failure")
	}
}
