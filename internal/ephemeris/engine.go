package ephemeris

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/makeaweli/satchecker/internal/catalog"
	"github.com/makeaweli/satchecker/internal/metrics"
	"github.com/makeaweli/satchecker/internal/propagation"
	"github.com/makeaweli/satchecker/internal/tle"
	"github.com/makeaweli/satchecker/internal/transform"
)

// Engine turns ephemeris requests into assembled records. Samples within a
// request are computed in parallel by a fixed worker pool; output order
// always matches the input time grid.
type Engine struct {
	resolver *catalog.Resolver
	workers  int
	logger   *slog.Logger
}

func NewEngine(resolver *catalog.Resolver, workers int, logger *slog.Logger) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{resolver: resolver, workers: workers, logger: logger}
}

// Compute resolves the element set for the request and evaluates every
// point of the time grid. Records come back in time-grid order.
func (e *Engine) Compute(ctx context.Context, req Request) ([]Record, error) {
	if len(req.Times) == 0 && !req.UseEpoch {
		return nil, InvalidRangeError{Reason: "no sample times"}
	}
	if len(req.Times) > MaxSamples {
		return nil, InvalidRangeError{Reason: fmt.Sprintf("%d samples exceed the limit of %d", len(req.Times), MaxSamples)}
	}

	set, err := e.elementSet(ctx, req)
	if err != nil {
		return nil, err
	}

	times := req.Times
	if req.UseEpoch {
		times = []float64{transform.JulianDate(set.Epoch)}
	}

	started := time.Now()
	out, err := e.computeSet(ctx, set, times, req)
	if err != nil {
		return nil, err
	}

	metrics.EphemerisSamples.Add(float64(len(out)))
	e.logger.Info("ephemeris computed",
		"identifier", req.Identifier,
		"catalog", set.CatalogNumber,
		"samples", len(out),
		"duration_ms", time.Since(started).Milliseconds())
	return out, nil
}

func (e *Engine) elementSet(ctx context.Context, req Request) (tle.ElementSet, error) {
	if req.Elements != nil {
		set := *req.Elements
		if set.DataSource == "" {
			set.DataSource = "user"
		}
		if set.DateCollected.IsZero() {
			set.DateCollected = time.Now().UTC()
		}
		return set, nil
	}

	cand, err := e.resolver.Resolve(ctx, req.Identifier, req.Kind, req.Source, req.TargetJD)
	if err != nil {
		return tle.ElementSet{}, err
	}
	return cand.Set, nil
}

type sampleResult struct {
	index int
	rec   Record
	err   error
}

func (e *Engine) computeSet(ctx context.Context, set tle.ElementSet, times []float64, req Request) ([]Record, error) {
	prop, err := propagation.New(set)
	if err != nil {
		metrics.PropagationErrors.Inc()
		return nil, err
	}

	jobs := make(chan int)
	results := make(chan sampleResult, e.workers)

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec, err := e.sample(prop, set, req.Observer, times[i])
				select {
				case results <- sampleResult{index: i, rec: rec, err: err}:
				case <-workCtx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range times {
			select {
			case jobs <- i:
			case <-workCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]Record, len(times))
	var firstErr error
	received := 0
	for r := range results {
		received++
		if r.err != nil && firstErr == nil {
			firstErr = r.err
			cancel()
		}
		if r.err == nil {
			records[r.index] = r.rec
		}
		if received == len(times) {
			break
		}
	}
	if firstErr != nil {
		metrics.PropagationErrors.Inc()
		return nil, firstErr
	}

	// Horizon filter runs after assembly so it never hides model failures.
	out := records[:0]
	for _, rec := range records {
		if rec.AltitudeDeg < req.MinAltitude || rec.AltitudeDeg > req.MaxAltitude {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (e *Engine) sample(prop *propagation.Propagator, set tle.ElementSet, obs transform.Observer, jd float64) (Record, error) {
	st, err := prop.At(jd)
	if err != nil {
		return Record{}, err
	}

	o := transform.Observe(st.Position, st.Velocity, obs, jd)
	return Record{
		Name:            set.Name,
		CatalogID:       set.CatalogNumber,
		DataSource:      set.DataSource,
		TLEDate:         set.DateCollected.UTC().Format(tleDateFormat),
		JulianDate:      o.JulianDate,
		AltitudeDeg:     o.AltitudeDeg,
		AzimuthDeg:      o.AzimuthDeg,
		RightAscDeg:     o.RightAscDeg,
		DeclinationDeg:  o.DeclinationDeg,
		DRACosDec:       o.DRACosDecDegPerSec,
		DDec:            o.DDecDegPerSec,
		RangeKm:         o.RangeKm,
		RangeRate:       o.RangeRateKmPerSec,
		PhaseAngleDeg:   o.PhaseAngleDeg,
		Illuminated:     o.Illuminated,
		ObserverGCRSKm:  o.ObserverGCRSKm,
		SatelliteGCRSKm: o.SatelliteGCRSKm,
	}, nil
}
