package transform

import "math"

// WGS-84 ellipsoid: semi-major axis in km, flattening.
const (
	wgs84A = 6378.137
	wgs84F = 1 / 298.257223563
)

// Observer is a ground site with both geodetic and Earth-fixed coordinates.
type Observer struct {
	LatDeg float64
	LonDeg float64
	ElevM  float64
	ECEF   Vec3 // km
	latRad float64
	lonRad float64
	sinLat float64
	cosLat float64
	sinLon float64
	cosLon float64
}

// NewObserver builds an Observer from geodetic latitude, longitude (degrees)
// and ellipsoidal height (meters), computing the site's ECEF position on the
// WGS-84 ellipsoid.
func NewObserver(latDeg, lonDeg, elevM float64) Observer {
	lat := latDeg * deg2rad
	lon := lonDeg * deg2rad
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)

	e2 := wgs84F * (2 - wgs84F)
	// Prime-vertical radius of curvature, km.
	n := wgs84A / math.Sqrt(1-e2*sinLat*sinLat)
	h := elevM / 1000.0

	return Observer{
		LatDeg: latDeg,
		LonDeg: lonDeg,
		ElevM:  elevM,
		ECEF: Vec3{
			(n + h) * cosLat * cosLon,
			(n + h) * cosLat * sinLon,
			(n*(1-e2) + h) * sinLat,
		},
		latRad: lat,
		lonRad: lon,
		sinLat: sinLat,
		cosLat: cosLat,
		sinLon: sinLon,
		cosLon: cosLon,
	}
}

// TEME returns the observer's position in the TEME frame at the given UT1
// Julian Date. The Earth-fixed site simply rotates with GMST.
func (o Observer) TEME(jd float64) Vec3 {
	return rot3(-GMST(jd)).apply(o.ECEF)
}

// InertialVelocity returns the observer's velocity in an Earth-centered
// inertial frame due to Earth rotation, km/s, given the observer's inertial
// position. v = ω × r with ω along +Z.
func InertialVelocity(pos Vec3) Vec3 {
	return Vec3{-OmegaEarth * pos.Y, OmegaEarth * pos.X, 0}
}

// LookAngles converts a satellite ECEF position (km) to topocentric azimuth,
// elevation (degrees) and slant range (km) as seen from the observer.
// Azimuth is measured clockwise from north.
func (o Observer) LookAngles(satECEF Vec3) (azDeg, elDeg, rangeKm float64) {
	rho := satECEF.Sub(o.ECEF)

	// Rotate the range vector into the SEZ (south-east-zenith) frame.
	south := o.sinLat*o.cosLon*rho.X + o.sinLat*o.sinLon*rho.Y - o.cosLat*rho.Z
	east := -o.sinLon*rho.X + o.cosLon*rho.Y
	zenith := o.cosLat*o.cosLon*rho.X + o.cosLat*o.sinLon*rho.Y + o.sinLat*rho.Z

	rangeKm = rho.Norm()
	elDeg = math.Asin(zenith/rangeKm) / deg2rad

	az := math.Atan2(east, -south)
	if az < 0 {
		az += 2 * math.Pi
	}
	azDeg = az / deg2rad
	return
}
