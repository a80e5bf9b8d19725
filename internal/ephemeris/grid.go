package ephemeris

import (
	"fmt"
	"math"
)

// DefaultStepJD is the default sample spacing for ranged requests, two
// minutes expressed in days.
const DefaultStepJD = 0.00138889

// MaxSamples caps the number of points a single request may compute.
const MaxSamples = 1000

// InvalidRangeError rejects a time range that cannot form a grid.
type InvalidRangeError struct {
	Reason string
}

func (e InvalidRangeError) Error() string {
	return "invalid time range: " + e.Reason
}

// JulianGrid expands an inclusive [start, stop] range into evenly spaced
// Julian Dates. The stop bound is included when it lands on a step within
// floating-point slack.
func JulianGrid(startJD, stopJD, stepJD float64) ([]float64, error) {
	if stepJD <= 0 {
		return nil, InvalidRangeError{Reason: fmt.Sprintf("step %v must be positive", stepJD)}
	}
	if stopJD < startJD {
		return nil, InvalidRangeError{Reason: fmt.Sprintf("stop %v before start %v", stopJD, startJD)}
	}

	// Bound the count before allocating. A subnormal step over a finite
	// range yields a quotient far past any int, and anything above the
	// sample cap will be rejected downstream anyway.
	steps := (stopJD - startJD) / stepJD
	if math.IsNaN(steps) || steps > MaxSamples {
		return nil, InvalidRangeError{Reason: fmt.Sprintf("step %v yields more than %d samples", stepJD, MaxSamples)}
	}

	n := int(steps+1e-9) + 1
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = startJD + float64(i)*stepJD
	}
	return grid, nil
}
