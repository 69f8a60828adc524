package chroma

import "math"

// XY is a CIE 1931 chromaticity coordinate.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UV is a CIE 1976 uniform chromaticity coordinate (u', v').
type UV struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// Valid reports whether both coordinates are finite.
func (p XY) Valid() bool {
	return finite(p.X) && finite(p.Y)
}

// IsZero reports whether p is the (0, 0) degenerate fallback.
func (p XY) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Valid reports whether both coordinates are finite.
func (p UV) Valid() bool {
	return finite(p.U) && finite(p.V)
}

// IsZero reports whether p is the (0, 0) degenerate fallback.
func (p UV) IsZero() bool {
	return p.U == 0 && p.V == 0
}

// Distance returns the Euclidean distance between two points in uv space.
func Distance(a, b UV) float64 {
	return math.Hypot(a.U-b.U, a.V-b.V)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
