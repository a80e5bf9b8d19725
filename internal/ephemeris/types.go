package ephemeris

import (
	"github.com/makeaweli/satchecker/internal/catalog"
	"github.com/makeaweli/satchecker/internal/tle"
	"github.com/makeaweli/satchecker/internal/transform"
)

// Record is one fully assembled ephemeris point. Field names follow the
// published response schema, so the JSON tags are part of the contract.
type Record struct {
	Name            string     `json:"NAME"`
	CatalogID       int        `json:"CATALOG_ID"`
	DataSource      string     `json:"DATA_SOURCE"`
	TLEDate         string     `json:"TLE-DATE"`
	JulianDate      float64    `json:"JULIAN_DATE"`
	AltitudeDeg     float64    `json:"ALTITUDE-DEG"`
	AzimuthDeg      float64    `json:"AZIMUTH-DEG"`
	RightAscDeg     float64    `json:"RIGHT_ASCENSION-DEG"`
	DeclinationDeg  float64    `json:"DECLINATION-DEG"`
	DRACosDec       float64    `json:"DRA_COSDEC-DEG_PER_SEC"`
	DDec            float64    `json:"DDEC-DEG_PER_SEC"`
	RangeKm         float64    `json:"RANGE-KM"`
	RangeRate       float64    `json:"RANGE_RATE-KM_PER_SEC"`
	PhaseAngleDeg   float64    `json:"PHASE_ANGLE-DEG"`
	Illuminated     bool       `json:"ILLUMINATED"`
	ObserverGCRSKm  [3]float64 `json:"OBSERVER_GCRS_KM"`
	SatelliteGCRSKm [3]float64 `json:"SATELLITE_GCRS_KM"`
}

// tleDateFormat is the element-set timestamp layout in responses.
const tleDateFormat = "2006-01-02 15:04:05"

// Request describes one ephemeris computation. Either Identifier+Kind (the
// catalog supplies the elements) or Elements (caller-supplied set, catalog
// bypassed) must be populated.
type Request struct {
	Identifier string
	Kind       catalog.IdentifierKind
	Source     string

	// Elements, when non-nil, is used directly instead of a catalog lookup.
	Elements *tle.ElementSet

	// Times is the Julian Date grid to evaluate. Ignored when UseEpoch is
	// set, in which case each resolved set is evaluated at its own epoch.
	Times []float64

	// UseEpoch computes a single point at the element set's epoch, for
	// requests that pass a zero Julian Date.
	UseEpoch bool

	// TargetJD steers element-set selection toward the nearest epoch. Zero
	// selects the most recently collected set instead.
	TargetJD float64

	Observer transform.Observer

	// Horizon filters, degrees. Applied after computation; records outside
	// [MinAltitude, MaxAltitude] are dropped.
	MinAltitude float64
	MaxAltitude float64
}
