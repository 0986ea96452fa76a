package util

import (
	"math"
	"strconv"
)

// FormatNumber formats v the way attribute values are written: the shortest
// decimal that round-trips, no exponent for ordinary magnitudes, and "0"
// for negative zero.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPair joins two numbers with a single space, as used by dash arrays.
func FormatPair(a, b float64) string {
	return FormatNumber(a) + " " + FormatNumber(b)
}
