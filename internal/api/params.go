package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/makeaweli/satchecker/internal/ephemeris"
	"github.com/makeaweli/satchecker/internal/transform"
)

// paramError marks a query-string problem; handlers turn it into a 400.
type paramError struct {
	detail string
}

func (e paramError) Error() string { return e.detail }

func requiredFloat(c *fiber.Ctx, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, paramError{detail: "missing parameter: " + name}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, paramError{detail: fmt.Sprintf("parameter %s=%q is not a number", name, raw)}
	}
	return v, nil
}

func optionalFloat(c *fiber.Ctx, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, paramError{detail: fmt.Sprintf("parameter %s=%q is not a number", name, raw)}
	}
	return v, nil
}

// observerParams reads latitude, longitude and elevation. All three are
// required; latitude and longitude must be plausible coordinates.
func observerParams(c *fiber.Ctx) (transform.Observer, error) {
	lat, err := requiredFloat(c, "latitude")
	if err != nil {
		return transform.Observer{}, err
	}
	lon, err := requiredFloat(c, "longitude")
	if err != nil {
		return transform.Observer{}, err
	}
	elev, err := requiredFloat(c, "elevation")
	if err != nil {
		return transform.Observer{}, err
	}
	if lat < -90 || lat > 90 {
		return transform.Observer{}, paramError{detail: fmt.Sprintf("latitude %v out of range", lat)}
	}
	if lon < -180 || lon > 360 {
		return transform.Observer{}, paramError{detail: fmt.Sprintf("longitude %v out of range", lon)}
	}
	return transform.NewObserver(lat, lon, elev), nil
}

// altitudeWindow reads the optional horizon filter, defaulting to the
// 0..90 degree visible sky.
func altitudeWindow(c *fiber.Ctx) (minAlt, maxAlt float64, err error) {
	minAlt, err = optionalFloat(c, "min_altitude", 0)
	if err != nil {
		return 0, 0, err
	}
	maxAlt, err = optionalFloat(c, "max_altitude", 90)
	if err != nil {
		return 0, 0, err
	}
	return minAlt, maxAlt, nil
}

func sourceParam(c *fiber.Ctx) string {
	return strings.ToLower(strings.TrimSpace(c.Query("data_source")))
}

// gridParams reads startjd, stopjd and the optional stepjd for ranged
// requests and expands them into the sample grid.
func gridParams(c *fiber.Ctx) ([]float64, error) {
	start, err := requiredFloat(c, "startjd")
	if err != nil {
		return nil, err
	}
	stop, err := requiredFloat(c, "stopjd")
	if err != nil {
		return nil, err
	}
	step, err := optionalFloat(c, "stepjd", ephemeris.DefaultStepJD)
	if err != nil {
		return nil, err
	}

	grid, err := ephemeris.JulianGrid(start, stop, step)
	if err != nil {
		return nil, err
	}
	if len(grid) > ephemeris.MaxSamples {
		return nil, paramError{detail: fmt.Sprintf("%d samples requested, maximum is %d", len(grid), ephemeris.MaxSamples)}
	}
	return grid, nil
}
