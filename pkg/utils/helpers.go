package utils

import (
	"math"
	"strconv"
)

// RoundTo rounds a float to the given number of decimal places.
// Ties are resolved half-to-even against the exact binary value, so
// 2.675 (stored as 2.67499999...) rounds to 2.67 and 0.125 rounds to 0.12.
func RoundTo(value float64, places int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', places, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}

// Lerp performs linear interpolation between two values
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// IsFinite reports whether every value is neither NaN nor infinite
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
