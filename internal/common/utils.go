package common

import "math"

// Clamp constrains v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds v to two decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
