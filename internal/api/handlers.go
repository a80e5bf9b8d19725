package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/makeaweli/satchecker/internal/catalog"
	"github.com/makeaweli/satchecker/internal/ephemeris"
	"github.com/makeaweli/satchecker/internal/tle"
	"github.com/makeaweli/satchecker/internal/transform"
)

// toolsDateFormat is the timestamp layout for the tools endpoints.
const toolsDateFormat = "2006-01-02 15:04:05 MST"

func (s *Server) handleEphemerisName(c *fiber.Ctx) error {
	return s.ephemerisSingle(c, c.Query("name"), catalog.KindName)
}

func (s *Server) handleEphemerisCatalog(c *fiber.Ctx) error {
	return s.ephemerisSingle(c, c.Query("catalog"), catalog.KindCatalogNumber)
}

func (s *Server) handleEphemerisNameJDStep(c *fiber.Ctx) error {
	return s.ephemerisRange(c, c.Query("name"), catalog.KindName)
}

func (s *Server) handleEphemerisCatalogJDStep(c *fiber.Ctx) error {
	return s.ephemerisRange(c, c.Query("catalog"), catalog.KindCatalogNumber)
}

// ephemerisSingle serves the single-date catalog-backed endpoints. A Julian
// Date of zero evaluates at the element set's own epoch.
func (s *Server) ephemerisSingle(c *fiber.Ctx, identifier string, kind catalog.IdentifierKind) error {
	if identifier == "" {
		return badRequest(c, "missing identifier parameter")
	}
	obs, err := observerParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	jd, err := requiredFloat(c, "julian_date")
	if err != nil {
		return badRequest(c, err.Error())
	}
	minAlt, maxAlt, err := altitudeWindow(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	req := ephemeris.Request{
		Identifier:  identifier,
		Kind:        kind,
		Source:      sourceParam(c),
		Observer:    obs,
		MinAltitude: minAlt,
		MaxAltitude: maxAlt,
		TargetJD:    jd,
	}
	if jd == 0 {
		req.UseEpoch = true
	} else {
		req.Times = []float64{jd}
	}

	return s.respond(c, req)
}

// ephemerisRange serves the jdstep endpoints.
func (s *Server) ephemerisRange(c *fiber.Ctx, identifier string, kind catalog.IdentifierKind) error {
	if identifier == "" {
		return badRequest(c, "missing identifier parameter")
	}
	obs, err := observerParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	times, err := gridParams(c)
	if err != nil {
		return s.rangeParamError(c, err)
	}
	minAlt, maxAlt, err := altitudeWindow(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return s.respond(c, ephemeris.Request{
		Identifier:  identifier,
		Kind:        kind,
		Source:      sourceParam(c),
		Times:       times,
		TargetJD:    times[0],
		Observer:    obs,
		MinAltitude: minAlt,
		MaxAltitude: maxAlt,
	})
}

func (s *Server) handleEphemerisTLE(c *fiber.Ctx) error {
	set, err := parseTLEParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	obs, err := observerParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	jd, err := requiredFloat(c, "julian_date")
	if err != nil {
		return badRequest(c, err.Error())
	}
	minAlt, maxAlt, err := altitudeWindow(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	req := ephemeris.Request{
		Elements:    &set,
		Observer:    obs,
		MinAltitude: minAlt,
		MaxAltitude: maxAlt,
	}
	if jd == 0 {
		req.UseEpoch = true
	} else {
		req.Times = []float64{jd}
	}
	return s.respond(c, req)
}

func (s *Server) handleEphemerisTLEJDStep(c *fiber.Ctx) error {
	set, err := parseTLEParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	obs, err := observerParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	times, err := gridParams(c)
	if err != nil {
		return s.rangeParamError(c, err)
	}
	minAlt, maxAlt, err := altitudeWindow(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return s.respond(c, ephemeris.Request{
		Elements:    &set,
		Times:       times,
		Observer:    obs,
		MinAltitude: minAlt,
		MaxAltitude: maxAlt,
	})
}

// parseTLEParam reads the caller-supplied element set. Absent or garbled
// data is a malformed set, not a missing parameter, to match the published
// error contract.
func parseTLEParam(c *fiber.Ctx) (tle.ElementSet, error) {
	raw := c.Query("tle")
	if raw == "" {
		return tle.ElementSet{}, tle.MalformedElementSetError{Reason: "no element set supplied"}
	}
	return tle.ParseSet(raw)
}

func (s *Server) rangeParamError(c *fiber.Ctx, err error) error {
	var pErr paramError
	if errors.As(err, &pErr) {
		return badRequest(c, pErr.detail)
	}
	return s.writeError(c, err)
}

func (s *Server) respond(c *fiber.Ctx, req ephemeris.Request) error {
	records, err := s.engine.Compute(c.Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	if records == nil {
		records = []ephemeris.Record{}
	}
	return c.JSON(records)
}

func (s *Server) handleNoradIDsFromName(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return badRequest(c, "missing parameter: name")
	}

	recs, err := s.repo.FindCatalogsByName(c.Context(), tle.NormalizeName(name))
	if err != nil {
		return s.writeError(c, err)
	}

	out := make([]fiber.Map, 0, len(recs))
	for _, r := range recs {
		out = append(out, fiber.Map{
			"name":       r.Name,
			"norad_id":   r.CatalogNumber,
			"date_added": r.DateAdded.UTC().Format(toolsDateFormat),
		})
	}
	return c.JSON(out)
}

func (s *Server) handleNamesFromNoradID(c *fiber.Ctx) error {
	raw := c.Query("id")
	if raw == "" {
		return badRequest(c, "missing parameter: id")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return badRequest(c, "parameter id must be a catalog number")
	}

	recs, err := s.repo.FindNamesByCatalog(c.Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}

	out := make([]fiber.Map, 0, len(recs))
	for _, r := range recs {
		out = append(out, fiber.Map{
			"name":       r.Name,
			"norad_id":   r.CatalogNumber,
			"date_added": r.DateAdded.UTC().Format(toolsDateFormat),
		})
	}
	return c.JSON(out)
}

func (s *Server) handleGetTLEData(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "missing parameter: id")
	}
	kind := catalog.IdentifierKind(c.Query("id_type"))
	if kind != catalog.KindCatalogNumber && kind != catalog.KindName {
		return badRequest(c, "id_type must be catalog or name")
	}
	if kind == catalog.KindName {
		id = tle.NormalizeName(id)
	}

	start, err := jdBound(c, "start_date_jd")
	if err != nil {
		return badRequest(c, err.Error())
	}
	end, err := jdBound(c, "end_date_jd")
	if err != nil {
		return badRequest(c, err.Error())
	}

	cands, err := s.repo.FindElementSetsInRange(c.Context(), id, kind, start, end)
	if err != nil {
		return s.writeError(c, err)
	}

	out := make([]fiber.Map, 0, len(cands))
	for _, cand := range cands {
		out = append(out, fiber.Map{
			"satellite_name": cand.Object.Name,
			"satellite_id":   cand.Object.CatalogNumber,
			"tle_line1":      cand.Set.Line1,
			"tle_line2":      cand.Set.Line2,
			"epoch":          cand.Set.Epoch.UTC().Format(toolsDateFormat),
			"date_collected": cand.Set.DateCollected.UTC().Format(toolsDateFormat),
		})
	}
	return c.JSON(out)
}

func jdBound(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	jd, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, paramError{detail: "parameter " + name + " is not a Julian Date"}
	}
	t := transform.TimeFromJD(jd)
	return &t, nil
}
