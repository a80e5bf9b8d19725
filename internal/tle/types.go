package tle

import (
	"strings"
	"time"
)

// TrackedObject is a catalogued satellite. Identity is the catalog number;
// names are aliases maintained by the ingestion pipeline and may be shared
// between objects transiently.
type TrackedObject struct {
	CatalogNumber int
	Name          string
	Constellation string
	RCSSize       string
	ObjectType    string
	LaunchDate    *time.Time
	DecayDate     *time.Time
	DateAdded     time.Time
}

// ElementSet is a single two-line element record for one tracked object.
// Line1 and Line2 hold the original 69-column text verbatim so the record
// can be re-serialized without loss.
type ElementSet struct {
	CatalogNumber int
	Name          string
	Line1         string
	Line2         string

	Epoch          time.Time
	DateCollected  time.Time
	DataSource     string
	IsSupplemental bool

	// Mean elements decoded from Line2, consumed by propagation pre-checks.
	Eccentricity float64
	MeanMotion   float64 // revolutions per day
}

// Lines returns the two element lines joined by a newline, byte-identical
// to the parsed input.
func (e ElementSet) Lines() string {
	return e.Line1 + "\n" + e.Line2
}

// NormalizeName upper-cases and trims an object name for catalog matching.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
