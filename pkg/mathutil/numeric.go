// Package mathutil provides common mathematical utility functions.
package mathutil

import "math"

// PositivePart returns max(val, 0).
// Used for the top-bracket base, which only counts income above the cutoff.
func PositivePart(val float64) float64 {
	if val > 0 {
		return val
	}
	return 0
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// AllFinite reports whether every value is finite.
func AllFinite(vals ...float64) bool {
	for _, v := range vals {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// Sign returns -1 for negative values and +1 otherwise, so that zero maps to a
// positive step direction.
func Sign(val float64) float64 {
	if val < 0 {
		return -1
	}
	return 1
}
