package chroma

import "errors"

var (
	// ErrDegenerateDenominator indicates a uv/xy conversion hit a near-zero
	// denominator and fell back to (0, 0).
	ErrDegenerateDenominator = errors.New("degenerate chromaticity denominator")

	// ErrDegenerateTangent indicates the locus tangent collapsed, so the Duv
	// offset could not be applied and the locus point was returned.
	ErrDegenerateTangent = errors.New("degenerate locus tangent")
)
