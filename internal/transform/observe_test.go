package transform

import (
	"math"
	"testing"
)

func TestObserveOverheadGeometry(t *testing.T) {
	jd := 2460193.104167
	obs := NewObserver(0, 0, 0)

	// Place the satellite 500 km straight above the site in the Earth-fixed
	// frame and give it a co-rotating velocity, then feed the equivalent
	// TEME state to Observe.
	satECEF := Vec3{wgs84A + 500, 0, 0}
	satTEME := rot3(-GMST(jd)).apply(satECEF)
	velTEME := InertialVelocity(satTEME)

	o := Observe(satTEME, velTEME, obs, jd)

	if math.Abs(o.AltitudeDeg-90) > 1e-3 {
		t.Errorf("altitude = %v, want 90", o.AltitudeDeg)
	}
	if math.Abs(o.RangeKm-500) > 1e-3 {
		t.Errorf("range = %v, want 500", o.RangeKm)
	}
	// Co-rotating satellite neither approaches nor recedes.
	if math.Abs(o.RangeRateKmPerSec) > 1e-6 {
		t.Errorf("range rate = %v, want ~0", o.RangeRateKmPerSec)
	}
}

func TestObserveFrameConsistency(t *testing.T) {
	jd := 2460193.104167
	obs := NewObserver(32, -110, 150)
	pos := Vec3{1554, -6620, -371}
	vel := Vec3{5.9, 2.2, -3.7}

	o := Observe(pos, vel, obs, jd)

	// Slant range is frame-invariant, so the GCRS vectors must agree with
	// the Earth-fixed range.
	d := Vec3{
		o.SatelliteGCRSKm[0] - o.ObserverGCRSKm[0],
		o.SatelliteGCRSKm[1] - o.ObserverGCRSKm[1],
		o.SatelliteGCRSKm[2] - o.ObserverGCRSKm[2],
	}
	if diff := math.Abs(d.Norm() - o.RangeKm); diff > 1e-6 {
		t.Errorf("GCRS separation %v vs range %v", d.Norm(), o.RangeKm)
	}

	if o.RightAscDeg < 0 || o.RightAscDeg >= 360 {
		t.Errorf("right ascension %v out of [0, 360)", o.RightAscDeg)
	}
	if o.DeclinationDeg < -90 || o.DeclinationDeg > 90 {
		t.Errorf("declination %v out of [-90, 90]", o.DeclinationDeg)
	}
	if o.PhaseAngleDeg < 0 || o.PhaseAngleDeg > 180 {
		t.Errorf("phase angle %v out of [0, 180]", o.PhaseAngleDeg)
	}
	for _, v := range []float64{o.DRACosDecDegPerSec, o.DDecDegPerSec, o.RangeRateKmPerSec} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("non-finite rate in %+v", o)
		}
	}
}

func TestObserveBelowHorizon(t *testing.T) {
	jd := 2460193.104167
	obs := NewObserver(32, -110, 150)

	// A satellite over the opposite side of the planet is below the horizon.
	anti := NewObserver(-32, 70, 0)
	satECEF := anti.ECEF.Scale((anti.ECEF.Norm() + 500) / anti.ECEF.Norm())
	satTEME := rot3(-GMST(jd)).apply(satECEF)

	o := Observe(satTEME, InertialVelocity(satTEME), obs, jd)
	if o.AltitudeDeg > 0 {
		t.Errorf("antipodal satellite has altitude %v, want negative", o.AltitudeDeg)
	}
}
