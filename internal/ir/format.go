package ir

import (
	"math"
	"strconv"
)

// FormatCoord renders f with exactly prec digits after the decimal point.
// Negative zero is printed as zero so that "-0.0000" never appears.
func FormatCoord(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if math.Signbit(f) && isZeroDecimal(s) {
		return s[1:]
	}
	return s
}

func isZeroDecimal(s string) bool {
	for _, c := range s {
		switch c {
		case '-', '0', '.':
		default:
			return false
		}
	}
	return true
}
