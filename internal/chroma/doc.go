// Package chroma converts a correlated color temperature and a Duv offset
// into CIE 1931 chromaticity coordinates.
//
// The pipeline is four pure functions composed linearly:
//
//	PlanckianApprox: Kelvin -> (x0, y0) on the approximate Planckian locus
//	XYToUV:          CIE 1931 (x, y) -> CIE 1976 (u', v')
//	UVToXY:          CIE 1976 (u', v') -> CIE 1931 (x, y)
//	DuvOffset:       offsets the locus point along the uv-space normal by Duv
//
// # Sign Convention
//
// The locus tangent points toward increasing temperature. The normal is the
// unit tangent rotated 90 degrees counter-clockwise in uv space, and a
// positive Duv moves along that normal.
//
// # Degenerate Inputs
//
// Near-singular denominators in the uv/xy conversions resolve to (0, 0), and
// a collapsed tangent makes DuvOffset return the unperturbed locus point.
// Offset is the checked variant that reports these cases as errors.
//
// # Accuracy
//
// The locus polynomial is accurate between ApproxMinKelvin and
// ApproxMaxKelvin. Outside that range the result is a numerically valid
// extrapolation. Temperature must be nonzero; callers validate it.
//
// All functions are stateless and safe for concurrent use.
package chroma
