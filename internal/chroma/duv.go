package chroma

import (
	"errors"
	"math"
)

// Option configures Offset.
type Option func(*offsetOptions)

type offsetOptions struct {
	tangent Tangent
}

// WithTangent selects the tangent estimate used to build the locus normal.
func WithTangent(m Tangent) Option {
	return func(o *offsetOptions) {
		o.tangent = m
	}
}

// DuvOffset returns the CIE 1931 chromaticity at temperature t (Kelvin)
// displaced by duv along the locus normal in CIE 1976 uv space.
//
// It never fails: a collapsed tangent returns the locus point unchanged and
// degenerate conversions resolve to (0, 0).
func DuvOffset(t, duv float64) XY {
	p, _ := offset(t, duv, FiniteDifference)
	return p
}

// Offset computes the same point as DuvOffset but reports degeneracy.
// The returned point always equals the fallback value DuvOffset would give
// with the same tangent method; the error is ErrDegenerateTangent or
// ErrDegenerateDenominator when a guard fired.
func Offset(t, duv float64, opts ...Option) (XY, error) {
	o := offsetOptions{tangent: FiniteDifference}
	for _, opt := range opts {
		opt(&o)
	}
	return offset(t, duv, o.tangent)
}

func offset(t, duv float64, method Tangent) (XY, error) {
	var errs []error

	p0 := PlanckianApprox(t)
	uv0, ok := xyToUV(p0)
	if !ok {
		errs = append(errs, ErrDegenerateDenominator)
	}

	d := tangent(t, method)
	length := math.Sqrt(d.U*d.U + d.V*d.V)
	if length < degenerateEpsilon {
		errs = append(errs, ErrDegenerateTangent)
		return p0, errors.Join(errs...)
	}

	nx := -d.V / length
	ny := d.U / length

	uv := UV{U: uv0.U + duv*nx, V: uv0.V + duv*ny}
	p, ok := uvToXY(uv)
	if !ok {
		errs = append(errs, ErrDegenerateDenominator)
	}
	return p, errors.Join(errs...)
}
