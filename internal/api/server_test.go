package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/makeaweli/satchecker/internal/auth"
	"github.com/makeaweli/satchecker/internal/catalog"
	"github.com/makeaweli/satchecker/internal/ephemeris"
	"github.com/makeaweli/satchecker/internal/tle"
)

const (
	issLine1 = "1 25544U 98067A   23248.54842295  .00012769  00000+0  22936-3 0  9997"
	issLine2 = "2 25544  51.6416 290.4299 0005730  30.7454 132.9751 15.50238117414255"
)

type fakeRepo struct {
	candidates []catalog.Candidate
	names      []catalog.NameRecord
}

func (f *fakeRepo) FindElementSets(context.Context, string, catalog.IdentifierKind, string) ([]catalog.Candidate, error) {
	return f.candidates, nil
}

func (f *fakeRepo) FindElementSetsInRange(context.Context, string, catalog.IdentifierKind, *time.Time, *time.Time) ([]catalog.Candidate, error) {
	return f.candidates, nil
}

func (f *fakeRepo) FindNamesByCatalog(context.Context, int) ([]catalog.NameRecord, error) {
	return f.names, nil
}

func (f *fakeRepo) FindCatalogsByName(context.Context, string) ([]catalog.NameRecord, error) {
	return f.names, nil
}

func issCandidate(t *testing.T) catalog.Candidate {
	t.Helper()
	set, err := tle.ParseSet("ISS (ZARYA)\n" + issLine1 + "\n" + issLine2)
	if err != nil {
		t.Fatal(err)
	}
	set.DataSource = "spacetrack"
	set.DateCollected = time.Date(2023, 9, 5, 16, 21, 29, 0, time.UTC)
	return catalog.Candidate{
		Set:    set,
		Object: tle.TrackedObject{CatalogNumber: 25544, Name: "ISS (ZARYA)"},
	}
}

func testServer(t *testing.T, repo catalog.Repository) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := ephemeris.NewEngine(catalog.NewResolver(repo, logger), 2, logger)
	return NewServer(engine, repo, nil, nil, auth.Config{}, logger)
}

func get(t *testing.T, s *Server, path string) (int, string) {
	t.Helper()
	resp, err := s.App.Test(httptest.NewRequest("GET", path, nil), -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestRootRedirectsToDocs(t *testing.T) {
	s := testServer(t, &fakeRepo{})
	resp, err := s.App.Test(httptest.NewRequest("GET", "/index", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 302 {
		t.Errorf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != docsURL {
		t.Errorf("location = %q", loc)
	}
}

func TestHealth(t *testing.T) {
	s := testServer(t, &fakeRepo{})
	code, body := get(t, s, "/health")
	if code != 200 || !strings.Contains(body, "Healthy") {
		t.Errorf("health = %d %q", code, body)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := testServer(t, &fakeRepo{})
	code, body := get(t, s, "/ephemeris/bogus/")
	if code != 404 || !strings.Contains(body, "Error 404") {
		t.Errorf("got %d %q", code, body)
	}
}

func TestEphemerisMissingParameters(t *testing.T) {
	s := testServer(t, &fakeRepo{candidates: []catalog.Candidate{issCandidate(t)}})

	paths := []string{
		// julian_date missing
		"/ephemeris/name/?name=ISS%20(ZARYA)&elevation=150&latitude=32&longitude=-110",
		// elevation missing
		"/ephemeris/catalog-number/?catalog=25544&latitude=32&longitude=-110&julian_date=2460193.104167",
		// latitude missing
		"/ephemeris/catalog-number/?catalog=25544&elevation=150&longitude=-110&julian_date=2460193.104167",
		// identifier missing
		"/ephemeris/catalog-number/?elevation=150&latitude=32&longitude=-110&julian_date=2460193.104167",
		// stopjd missing
		"/ephemeris/name-jdstep/?name=ISS%20(ZARYA)&elevation=150&latitude=32&longitude=-110&startjd=2460193.1",
	}
	for _, p := range paths {
		code, body := get(t, s, p)
		if code != 400 {
			t.Errorf("%s: status = %d, want 400", p, code)
		}
		if !strings.Contains(body, "Incorrect parameters") {
			t.Errorf("%s: body %q lacks the parameter error message", p, body)
		}
	}
}

func TestEphemerisByCatalogNumber(t *testing.T) {
	s := testServer(t, &fakeRepo{candidates: []catalog.Candidate{issCandidate(t)}})

	code, body := get(t, s,
		"/ephemeris/catalog-number/?catalog=25544&elevation=150&latitude=32&longitude=-110&julian_date=2460193.104167&min_altitude=-90")
	if code != 200 {
		t.Fatalf("status = %d, body %s", code, body)
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	r := records[0]
	if r["CATALOG_ID"] != float64(25544) {
		t.Errorf("CATALOG_ID = %v", r["CATALOG_ID"])
	}
	if r["DATA_SOURCE"] != "spacetrack" {
		t.Errorf("DATA_SOURCE = %v", r["DATA_SOURCE"])
	}
	if _, ok := r["ILLUMINATED"].(bool); !ok {
		t.Errorf("ILLUMINATED missing or not boolean: %v", r["ILLUMINATED"])
	}
	for _, key := range []string{
		"NAME", "TLE-DATE", "JULIAN_DATE", "ALTITUDE-DEG", "AZIMUTH-DEG",
		"RIGHT_ASCENSION-DEG", "DECLINATION-DEG", "DRA_COSDEC-DEG_PER_SEC",
		"DDEC-DEG_PER_SEC", "RANGE-KM", "RANGE_RATE-KM_PER_SEC",
		"PHASE_ANGLE-DEG", "OBSERVER_GCRS_KM", "SATELLITE_GCRS_KM",
	} {
		if _, ok := r[key]; !ok {
			t.Errorf("response missing %s", key)
		}
	}
}

func TestEphemerisAltitudeFilterDefault(t *testing.T) {
	s := testServer(t, &fakeRepo{candidates: []catalog.Candidate{issCandidate(t)}})

	// The reference geometry is below the horizon, so the default 0..90
	// window returns an empty list.
	code, body := get(t, s,
		"/ephemeris/catalog-number/?catalog=25544&elevation=150&latitude=32&longitude=-110&julian_date=2460193.104167")
	if code != 200 {
		t.Fatalf("status = %d, body %s", code, body)
	}
	if strings.TrimSpace(body) != "[]" {
		t.Errorf("body = %q, want empty list", body)
	}
}

func TestEphemerisNoElementSet(t *testing.T) {
	s := testServer(t, &fakeRepo{})
	code, body := get(t, s,
		"/ephemeris/name/?name=MISSING_SAT&elevation=150&latitude=32&longitude=-110&julian_date=2459000.5")
	if code != 500 || !strings.Contains(body, "No TLE found") {
		t.Errorf("got %d %q", code, body)
	}
}

func TestEphemerisJDStepSampleCap(t *testing.T) {
	s := testServer(t, &fakeRepo{candidates: []catalog.Candidate{issCandidate(t)}})
	code, body := get(t, s,
		"/ephemeris/catalog-number-jdstep/?catalog=25544&elevation=150&latitude=32&longitude=-110&startjd=2460193.1&stopjd=2460213.1&stepjd=0.0001")
	if code != 400 {
		t.Errorf("status = %d, want 400; body %q", code, body)
	}
}

func TestEphemerisByTLE(t *testing.T) {
	s := testServer(t, &fakeRepo{})

	tleParam := url.QueryEscape("ISS (ZARYA)\n" + issLine1 + "\n" + issLine2)
	code, body := get(t, s,
		"/ephemeris/tle/?tle="+tleParam+"&elevation=150&latitude=32&longitude=-110&julian_date=2460193.104167&min_altitude=-90")
	if code != 200 {
		t.Fatalf("status = %d, body %s", code, body)
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(body), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0]["DATA_SOURCE"] != "user" {
		t.Errorf("got %v", records)
	}
}

func TestEphemerisByTLEMalformed(t *testing.T) {
	s := testServer(t, &fakeRepo{})

	// Truncated first line.
	tleParam := url.QueryEscape("ISS (ZARYA)\n1 25544U 98067A   23248.54842295\n" + issLine2)
	code, body := get(t, s,
		"/ephemeris/tle/?tle="+tleParam+"&elevation=150&latitude=32&longitude=-110&julian_date=2460193.104167")
	if code != 500 || !strings.Contains(body, "Incorrect TLE format") {
		t.Errorf("got %d %q", code, body)
	}

	// Missing entirely.
	code, body = get(t, s,
		"/ephemeris/tle/?elevation=150&latitude=32&longitude=-110&julian_date=2460193.104167")
	if code != 500 || !strings.Contains(body, "Incorrect TLE format") {
		t.Errorf("got %d %q", code, body)
	}
}

func TestToolsNamesFromNoradID(t *testing.T) {
	added := time.Date(2024, 4, 25, 18, 0, 0, 0, time.UTC)
	s := testServer(t, &fakeRepo{names: []catalog.NameRecord{
		{Name: "ISS (ZARYA)", CatalogNumber: 25544, DateAdded: added},
	}})

	code, body := get(t, s, "/tools/names-from-norad-id/?id=25544")
	if code != 200 {
		t.Fatalf("status = %d, body %s", code, body)
	}
	var out []map[string]any
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0]["name"] != "ISS (ZARYA)" {
		t.Errorf("got %v", out)
	}
	if out[0]["date_added"] != "2024-04-25 18:00:00 UTC" {
		t.Errorf("date_added = %v", out[0]["date_added"])
	}

	if code, _ := get(t, s, "/tools/names-from-norad-id/"); code != 400 {
		t.Errorf("missing id: status = %d, want 400", code)
	}
}

func TestToolsGetTLEData(t *testing.T) {
	s := testServer(t, &fakeRepo{candidates: []catalog.Candidate{issCandidate(t)}})

	code, body := get(t, s, "/tools/get-tle-data/?id=25544&id_type=catalog")
	if code != 200 {
		t.Fatalf("status = %d, body %s", code, body)
	}
	var out []map[string]any
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0]["tle_line1"] != issLine1 {
		t.Errorf("got %v", out)
	}

	if code, _ := get(t, s, "/tools/get-tle-data/?id=25544&id_type=intl"); code != 400 {
		t.Errorf("bad id_type: status = %d, want 400", code)
	}
}
