package propagation

import (
	"fmt"
	"math"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/makeaweli/satchecker/internal/tle"
	"github.com/makeaweli/satchecker/internal/transform"
)

// SGP4 library choice: github.com/joshuaferrara/go-satellite
//
// Selected for: most community adoption, pure Go (no CGO), battle-tested
// since 2016, explicit TEME output.
//
// Note: Propagate() takes Satellite by value so SGP4 error codes are not
// visible to the caller. We detect propagation failures by checking output
// for NaN/Inf and unreasonable position magnitudes.

// PropagationError reports that the orbital model could not produce a usable
// state for an element set, either at init or at a requested time.
type PropagationError struct {
	Reason string
}

func (e PropagationError) Error() string {
	return "propagation failed: " + e.Reason
}

// State is a satellite state vector in the TEME frame at a Julian Date.
type State struct {
	Position transform.Vec3 // km
	Velocity transform.Vec3 // km/s
	JD       float64
}

// Propagator computes TEME states for a single element set.
type Propagator struct {
	sat satellite.Satellite
	set tle.ElementSet
}

// New initializes the SGP4 model for an element set.
//
// The element set must already be format-validated; physically unusable
// elements (hyperbolic eccentricity, non-positive mean motion) and model
// init failures come back as PropagationError.
func New(set tle.ElementSet) (*Propagator, error) {
	if set.Eccentricity >= 1.0 {
		return nil, PropagationError{Reason: fmt.Sprintf("eccentricity %.7f not below 1", set.Eccentricity)}
	}
	if set.MeanMotion <= 0 {
		return nil, PropagationError{Reason: fmt.Sprintf("mean motion %.8f not positive", set.MeanMotion)}
	}

	sat := satellite.TLEToSat(set.Line1, set.Line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, PropagationError{Reason: fmt.Sprintf("sgp4 init code=%d %s", sat.Error, sat.ErrorStr)}
	}
	return &Propagator{sat: sat, set: set}, nil
}

// Set returns the element set driving this propagator.
func (p *Propagator) Set() tle.ElementSet { return p.set }

// At propagates to the given Julian Date (UTC).
func (p *Propagator) At(jd float64) (State, error) {
	t := transform.TimeFromJD(jd)
	pos, vel := satellite.Propagate(p.sat,
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())

	for _, v := range []float64{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return State{}, PropagationError{
				Reason: fmt.Sprintf("catalog %d at jd %.6f: output is NaN/Inf", p.set.CatalogNumber, jd),
			}
		}
	}

	// Position magnitude should be between ~6200 km and ~50000 km for
	// anything in Earth orbit; outside that the model has decayed or blown up.
	mag := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if mag < 6200.0 || mag > 50000.0 {
		return State{}, PropagationError{
			Reason: fmt.Sprintf("catalog %d at jd %.6f: unreasonable position magnitude %.1f km", p.set.CatalogNumber, jd, mag),
		}
	}

	return State{
		Position: transform.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z},
		Velocity: transform.Vec3{X: vel.X, Y: vel.Y, Z: vel.Z},
		JD:       jd,
	}, nil
}
