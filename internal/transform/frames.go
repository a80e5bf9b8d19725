package transform

import "math"

const (
	deg2rad    = math.Pi / 180.0
	arcsec2rad = deg2rad / 3600.0
)

// TEMEToECEF rotates a TEME position and velocity into the Earth-fixed
// (ECEF/PEF) frame at the given UT1 Julian Date. Polar motion is neglected,
// so PEF and ECEF coincide here. Units are km and km/s.
//
// The velocity transform subtracts the frame rotation term (ω × r), see
// Vallado "Fundamentals of Astrodynamics" Sec 3.7.
func TEMEToECEF(pos, vel Vec3, jd float64) (Vec3, Vec3) {
	gmst := GMST(jd)
	r := rot3(gmst)

	pECEF := r.apply(pos)
	vRot := r.apply(vel)

	// v_ECEF = R*v_TEME - ω × r_ECEF, with ω = (0, 0, OmegaEarth).
	vECEF := Vec3{
		vRot.X + OmegaEarth*pECEF.Y,
		vRot.Y - OmegaEarth*pECEF.X,
		vRot.Z,
	}
	return pECEF, vECEF
}

// nutation returns the truncated IAU-1980 nutation angles Δψ, Δε and the
// mean obliquity ε̄, all in radians, for Julian centuries T of TT from J2000.
// Only the four largest terms are kept; accuracy is a few hundredths of an
// arcsecond, ample for arcminute-level apparent places.
func nutation(t float64) (dpsi, deps, meanEps float64) {
	// Fundamental arguments, degrees: longitude of the Moon's ascending
	// node, mean longitude of the Sun, mean longitude of the Moon.
	omega := 125.04452 - 1934.136261*t
	lSun := 280.4665 + 36000.7698*t
	lMoon := 218.3165 + 481267.8813*t

	omega *= deg2rad
	lSun *= deg2rad
	lMoon *= deg2rad

	dpsi = (-17.20*math.Sin(omega) - 1.32*math.Sin(2*lSun) -
		0.23*math.Sin(2*lMoon) + 0.21*math.Sin(2*omega)) * arcsec2rad
	deps = (9.20*math.Cos(omega) + 0.57*math.Cos(2*lSun) +
		0.10*math.Cos(2*lMoon) - 0.09*math.Cos(2*omega)) * arcsec2rad

	meanEps = (23.439291 - 0.0130042*t - 1.64e-7*t*t + 5.04e-7*t*t*t) * deg2rad
	return
}

// precession returns the IAU-76 precession rotation from MOD (mean of date)
// to GCRS/J2000 for Julian centuries T of TT from J2000.
func precession(t float64) mat3 {
	zeta := (2306.2181*t + 0.30188*t*t + 0.017998*t*t*t) * arcsec2rad
	z := (2306.2181*t + 1.09468*t*t + 0.018203*t*t*t) * arcsec2rad
	theta := (2004.3109*t - 0.42665*t*t - 0.041833*t*t*t) * arcsec2rad

	// MOD -> J2000 is ROT3(zeta) * ROT2(-theta) * ROT3(z), Vallado Eq 3-57.
	c1, s1 := math.Cos(zeta), math.Sin(zeta)
	c2, s2 := math.Cos(theta), math.Sin(theta)
	c3, s3 := math.Cos(z), math.Sin(z)

	return mat3{
		{c1*c2*c3 - s1*s3, c1*c2*s3 + s1*c3, c1 * s2},
		{-s1*c2*c3 - c1*s3, -s1*c2*s3 + c1*c3, -s1 * s2},
		{-s2 * c3, -s2 * s3, c2},
	}
}

// GCRSRotation returns the rotation matrix taking TEME vectors to GCRS at the
// given Julian Date. TEME differs from the true-of-date frame only by the
// equation of the equinoxes about the Z axis; from there nutation and
// precession carry the vector back to the J2000-aligned GCRS frame.
func GCRSRotation(jd float64) mat3 {
	t := (jd - J2000) / 36525.0
	dpsi, deps, meanEps := nutation(t)
	eqeq := dpsi * math.Cos(meanEps)

	// TEME -> TOD: rotate by -eqeq about Z.
	temeToTOD := rot3(-eqeq)

	// TOD -> MOD: inverse of the nutation matrix ROT1(-ε)ROT3(-Δψ)ROT1(ε̄).
	trueEps := meanEps + deps
	nut := rot1(-meanEps).mul(rot3(dpsi)).mul(rot1(trueEps))

	return precession(t).mul(nut).mul(temeToTOD)
}
