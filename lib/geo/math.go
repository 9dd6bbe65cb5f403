package geo

import "math"

// Tolerance used when deciding whether a vector is degenerate.
const Epsilon = 1e-9

func EuclideanDistance(x1, y1, x2, y2 float64) float64 {
	if x1 == x2 {
		return math.Abs(y1 - y2)
	} else if y1 == y2 {
		return math.Abs(x1 - x2)
	}
	return math.Hypot(x1-x2, y1-y2)
}

// compare a and b and consider them equal if
// difference is less than precision e (e.g. e=0.001)
func PrecisionCompare(a, b, e float64) int {
	if math.Abs(a-b) < e {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// Round keeps 4 decimals so that path strings are stable across machines.
func Round(v float64) float64 {
	return math.Round(v*10000) / 10000
}
