package transform

import "math"

// Observation is the full set of observer-relative quantities for one
// satellite state at one instant.
type Observation struct {
	JulianDate     float64
	AltitudeDeg    float64
	AzimuthDeg     float64
	RightAscDeg    float64
	DeclinationDeg float64

	// Apparent angular rates, degrees per second. The right-ascension rate
	// is projected onto the sky (multiplied by cos dec).
	DRACosDecDegPerSec float64
	DDecDegPerSec      float64
	RangeKm            float64
	RangeRateKmPerSec  float64
	PhaseAngleDeg      float64
	Illuminated        bool
	ObserverGCRSKm     [3]float64
	SatelliteGCRSKm    [3]float64
}

// Observe derives all observer-relative quantities from a satellite TEME
// state (km, km/s) at Julian Date jd as seen from obs.
//
// Azimuth, elevation and range come from the Earth-fixed frame; right
// ascension, declination and their rates come from the GCRS frame so they are
// directly comparable to star catalogs.
func Observe(pos, vel Vec3, obs Observer, jd float64) Observation {
	// Earth-fixed geometry for look angles.
	satECEF, _ := TEMEToECEF(pos, vel, jd)
	azDeg, elDeg, rangeKm := obs.LookAngles(satECEF)

	// Inertial geometry for celestial coordinates.
	obsTEME := obs.TEME(jd)
	obsVelTEME := InertialVelocity(obsTEME)

	rot := GCRSRotation(jd)
	satGCRS := rot.apply(pos)
	satVelGCRS := rot.apply(vel)
	obsGCRS := rot.apply(obsTEME)
	obsVelGCRS := rot.apply(obsVelTEME)

	rho := satGCRS.Sub(obsGCRS)
	rhoDot := satVelGCRS.Sub(obsVelGCRS)

	rhoMag := rho.Norm()
	rhoXY2 := rho.X*rho.X + rho.Y*rho.Y

	ra := math.Atan2(rho.Y, rho.X)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(rho.Z / rhoMag)

	rangeRate := rho.Dot(rhoDot) / rhoMag

	raDot := (rho.X*rhoDot.Y - rho.Y*rhoDot.X) / rhoXY2
	decDot := (rhoDot.Z*rhoMag - rho.Z*rangeRate) / (rhoMag * math.Sqrt(rhoXY2))

	// Sun geometry in the of-date frame, consistent with TEME positions.
	sun := SunVector(jd)

	return Observation{
		JulianDate:         jd,
		AltitudeDeg:        elDeg,
		AzimuthDeg:         azDeg,
		RightAscDeg:        ra / deg2rad,
		DeclinationDeg:     dec / deg2rad,
		DRACosDecDegPerSec: raDot * math.Cos(dec) / deg2rad,
		DDecDegPerSec:      decDot / deg2rad,
		RangeKm:            rangeKm,
		RangeRateKmPerSec:  rangeRate,
		PhaseAngleDeg:      PhaseAngle(pos, sun, obsTEME),
		Illuminated:        Illuminated(pos, sun),
		ObserverGCRSKm:     obsGCRS.Array(),
		SatelliteGCRSKm:    satGCRS.Array(),
	}
}
