package service

import "math"

// round1 rounds to one decimal. Numeric rounding happens only at the DTO
// boundary; the aggregation engine keeps full precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
