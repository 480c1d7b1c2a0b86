package scorers

import "math"

// round2 rounds to 2 decimal places
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// clamp constrains v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp01 constrains a probability to [0, 1]
func clamp01(v float64) float64 {
	return clamp(v, 0.0, 1.0)
}
