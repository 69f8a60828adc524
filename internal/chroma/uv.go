package chroma

import "math"

// degenerateEpsilon bounds denominators and tangent lengths treated as zero.
const degenerateEpsilon = 1e-15

// XYToUV converts CIE 1931 (x, y) to CIE 1976 (u', v').
// A near-zero denominator yields (0, 0).
func XYToUV(p XY) UV {
	uv, _ := xyToUV(p)
	return uv
}

// UVToXY converts CIE 1976 (u', v') to CIE 1931 (x, y).
// A near-zero denominator yields (0, 0).
func UVToXY(p UV) XY {
	xy, _ := uvToXY(p)
	return xy
}

func xyToUV(p XY) (UV, bool) {
	denom := -2*p.X + 12*p.Y + 3
	if math.Abs(denom) < degenerateEpsilon {
		return UV{}, false
	}
	return UV{U: 4 * p.X / denom, V: 9 * p.Y / denom}, true
}

func uvToXY(p UV) (XY, bool) {
	denom := 6*p.U - 16*p.V + 12
	if math.Abs(denom) < degenerateEpsilon {
		return XY{}, false
	}
	return XY{X: 9 * p.U / denom, Y: 4 * p.V / denom}, true
}

// ConvertXY is XYToUV that reports a degenerate denominator as
// ErrDegenerateDenominator instead of returning the (0, 0) fallback silently.
func ConvertXY(p XY) (UV, error) {
	uv, ok := xyToUV(p)
	if !ok {
		return uv, ErrDegenerateDenominator
	}
	return uv, nil
}

// ConvertUV is UVToXY that reports a degenerate denominator as
// ErrDegenerateDenominator.
func ConvertUV(p UV) (XY, error) {
	xy, ok := uvToXY(p)
	if !ok {
		return xy, ErrDegenerateDenominator
	}
	return xy, nil
}
