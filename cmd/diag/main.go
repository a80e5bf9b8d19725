package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/makeaweli/satchecker/internal/ephemeris"
	"github.com/makeaweli/satchecker/internal/tle"
	"github.com/makeaweli/satchecker/internal/transform"
)

// diag computes an ephemeris for a TLE file offline, without the API or the
// catalog database. Handy for eyeballing a satellite from the command line.
func main() {
	var (
		tlePath = flag.String("tle", "", "path to a 2- or 3-line element set file")
		lat     = flag.Float64("lat", 39.7392, "observer latitude, degrees")
		lon     = flag.Float64("lon", -104.9903, "observer longitude, degrees")
		elev    = flag.Float64("elev", 1609, "observer elevation, meters")
		jd      = flag.Float64("jd", 0, "Julian Date to evaluate (0 = element set epoch)")
		stopJD  = flag.Float64("stopjd", 0, "optional end of a Julian Date range")
		stepJD  = flag.Float64("stepjd", ephemeris.DefaultStepJD, "range step in days")
	)
	flag.Parse()

	if *tlePath == "" {
		fmt.Fprintln(os.Stderr, "usage: diag -tle FILE [-lat DEG -lon DEG -elev M] [-jd JD [-stopjd JD -stepjd D]]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*tlePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR reading element set:", err)
		os.Exit(1)
	}
	set, err := tle.ParseSet(string(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR parsing element set:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s (catalog %d), epoch %v\n", set.Name, set.CatalogNumber, set.Epoch)

	req := ephemeris.Request{
		Elements:    &set,
		Observer:    transform.NewObserver(*lat, *lon, *elev),
		MinAltitude: -90,
		MaxAltitude: 90,
	}
	switch {
	case *jd == 0:
		req.UseEpoch = true
	case *stopJD > 0:
		times, err := ephemeris.JulianGrid(*jd, *stopJD, *stepJD)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			os.Exit(1)
		}
		req.Times = times
	default:
		req.Times = []float64{*jd}
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := ephemeris.NewEngine(nil, 4, logger)

	records, err := engine.Compute(context.Background(), req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			os.Exit(1)
		}
	}
	fmt.Fprintf(os.Stderr, "%d records\n", len(records))
}
