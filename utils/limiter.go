package utils

import "math"

/*
	Slope limiters for monotone (TVD) linear reconstruction.

	Both return a slope whose magnitude never exceeds the smallest input
	magnitude when all inputs share a sign, and exactly zero otherwise, so
	reconstruction cannot introduce new extrema.
*/

// Minmod2 returns the smaller-magnitude of a and b when they share a sign,
// zero otherwise
func Minmod2(a, b float64) (s float64) {
	switch {
	case a > 0 && b > 0:
		s = math.Min(a, b)
	case a < 0 && b < 0:
		s = math.Max(a, b)
	}
	return
}

// Minmod3 is the three-argument generalization used for slope reconstruction
// with a retained previous-step slope c. The compressiveness parameter alpha
// is applied by the caller to the one-sided differences a and b.
func Minmod3(a, b, c float64) (s float64) {
	switch {
	case a > 0 && b > 0 && c > 0:
		s = math.Min(math.Min(a, b), c)
	case a < 0 && b < 0 && c < 0:
		s = math.Max(math.Max(a, b), c)
	}
	return
}
