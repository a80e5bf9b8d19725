package transform

import "math"

const (
	astronomicalUnitKm = 1.49597870691e8
	earthRadiusKm      = 6378.137
)

// SunVector returns the geocentric position of the Sun in km for the given
// Julian Date, in the true-equator frame of date. Low-precision series
// (accurate to about 0.01 degrees), referred to epoch 1900 January 0.5.
func SunVector(jd float64) Vec3 {
	d := jd - 2415020.0
	t := d / 36525.0

	// Mean anomaly, mean longitude, eccentricity of Earth's orbit.
	m := math.Mod(358.47583+0.985600267*d-1.5e-4*t*t-3.0e-6*t*t*t, 360.0) * deg2rad
	l := math.Mod(279.6966778+0.9856473354*d+3.03e-4*t*t, 360.0) * deg2rad
	e := 0.01675104 - 4.18e-5*t - 1.26e-7*t*t

	// Equation of center.
	c := ((1.919460-0.004789*t-0.000014*t*t)*math.Sin(m) +
		(0.020094-0.000100*t)*math.Sin(2*m) +
		0.000293*math.Sin(3*m)) * deg2rad

	trueLon := l + c

	// Correction for nutation in longitude and aberration.
	o := math.Mod(259.18-1934.142*t, 360.0) * deg2rad
	apparentLon := trueLon - (0.00569+0.00479*math.Sin(o))*deg2rad

	nu := m + c
	r := astronomicalUnitKm * (1 - e*e) / (1 + e*math.Cos(nu))

	eps := (23.452294 - 0.0130125*t - 1.64e-6*t*t + 5.03e-7*t*t*t) * deg2rad

	return Vec3{
		r * math.Cos(apparentLon),
		r * math.Sin(apparentLon) * math.Cos(eps),
		r * math.Sin(apparentLon) * math.Sin(eps),
	}
}

// Illuminated reports whether a satellite at the given geocentric position is
// in sunlight, using a cylindrical Earth-shadow model: the satellite is dark
// only if it is on the anti-sun side and within one Earth radius of the
// shadow axis.
func Illuminated(satPos, sunPos Vec3) bool {
	sunUnit := sunPos.Unit()
	along := satPos.Dot(sunUnit)
	if along >= 0 {
		return true
	}
	perp := satPos.Sub(sunUnit.Scale(along))
	return perp.Norm() > earthRadiusKm
}

// PhaseAngle returns the Sun-satellite-observer angle in degrees. Zero means
// the satellite is fully lit as seen from the observer.
func PhaseAngle(satPos, sunPos, obsPos Vec3) float64 {
	toSun := sunPos.Sub(satPos).Unit()
	toObs := obsPos.Sub(satPos).Unit()
	cosA := toSun.Dot(toObs)
	if cosA > 1 {
		cosA = 1
	} else if cosA < -1 {
		cosA = -1
	}
	return math.Acos(cosA) / deg2rad
}
