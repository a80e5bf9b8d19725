package propagation

import (
	"errors"
	"math"
	"testing"

	"github.com/makeaweli/satchecker/internal/tle"
)

const (
	issLine1 = "1 25544U 98067A   23248.54842295  .00012769  00000+0  22936-3 0  9997"
	issLine2 = "2 25544  51.6416 290.4299 0005730  30.7454 132.9751 15.50238117414255"
)

func issSet(t *testing.T) tle.ElementSet {
	t.Helper()
	set, err := tle.ParseSet("ISS (ZARYA)\n" + issLine1 + "\n" + issLine2)
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}
	return set
}

func TestPropagatorAtEpoch(t *testing.T) {
	p, err := New(issSet(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	epochJD := 2460193.0 + (0.54842295 - 0.5)
	st, err := p.At(epochJD)
	if err != nil {
		t.Fatalf("At: %v", err)
	}

	// ISS orbits at roughly 420 km altitude.
	r := st.Position.Norm()
	if r < 6700 || r > 6900 {
		t.Errorf("position magnitude = %.1f km, want ~6790", r)
	}
	v := st.Velocity.Norm()
	if v < 7.5 || v > 7.8 {
		t.Errorf("speed = %.3f km/s, want ~7.66", v)
	}
}

func TestPropagatorDeterministic(t *testing.T) {
	set := issSet(t)
	jd := 2460193.104167

	p1, err := New(set)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := New(set)
	if err != nil {
		t.Fatal(err)
	}

	a, err := p1.At(jd)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p2.At(jd)
	if err != nil {
		t.Fatal(err)
	}
	if a.Position != b.Position || a.Velocity != b.Velocity {
		t.Errorf("identical inputs produced different states:\n%+v\n%+v", a, b)
	}
}

func TestPropagatorOrbitalPeriod(t *testing.T) {
	p, err := New(issSet(t))
	if err != nil {
		t.Fatal(err)
	}

	jd := 2460193.104167
	period := 1.0 / 15.50238117 // days per revolution

	a, err := p.At(jd)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.At(jd + period)
	if err != nil {
		t.Fatal(err)
	}

	// One revolution later the satellite is back in the neighborhood.
	sep := a.Position.Sub(b.Position).Norm()
	if sep > 300 {
		t.Errorf("position after one period moved %.1f km, want < 300", sep)
	}
	if math.Abs(a.Position.Norm()-b.Position.Norm()) > 50 {
		t.Errorf("radius changed by %.1f km over one period", math.Abs(a.Position.Norm()-b.Position.Norm()))
	}
}

func TestNewRejectsUnusableElements(t *testing.T) {
	set := issSet(t)

	hyper := set
	hyper.Eccentricity = 1.2
	if _, err := New(hyper); err == nil {
		t.Error("hyperbolic eccentricity accepted")
	} else {
		var pe PropagationError
		if !errors.As(err, &pe) {
			t.Errorf("want PropagationError, got %T", err)
		}
	}

	still := set
	still.MeanMotion = 0
	if _, err := New(still); err == nil {
		t.Error("zero mean motion accepted")
	}
}
