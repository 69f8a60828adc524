package chroma

import (
	"fmt"
	"math"
)

// tangentStep is the temperature increment, in Kelvin, of the finite
// difference tangent estimate.
const tangentStep = 0.01

// Tangent selects how the locus direction at a temperature is estimated.
type Tangent int

const (
	// FiniteDifference compares the locus at T and T+0.01 K.
	FiniteDifference Tangent = iota
	// Analytic differentiates the locus polynomial in closed form and
	// carries the derivative through the xy to uv projection.
	Analytic
)

// String returns the name used on the command line and in scenario files.
func (m Tangent) String() string {
	switch m {
	case FiniteDifference:
		return "finite_difference"
	case Analytic:
		return "analytic"
	default:
		return fmt.Sprintf("tangent(%d)", int(m))
	}
}

// ParseTangent parses a tangent method name. The empty string selects
// FiniteDifference.
func ParseTangent(s string) (Tangent, error) {
	switch s {
	case "", "finite_difference":
		return FiniteDifference, nil
	case "analytic":
		return Analytic, nil
	default:
		return 0, fmt.Errorf("unknown tangent method %q: must be finite_difference or analytic", s)
	}
}

// Normal returns the unit normal to the locus at t in uv space: the unit
// tangent rotated 90 degrees counter-clockwise. ok is false when the tangent
// is degenerate.
func Normal(t float64, method Tangent) (n UV, ok bool) {
	d := tangent(t, method)
	length := math.Hypot(d.U, d.V)
	if length < degenerateEpsilon {
		return UV{}, false
	}
	return UV{U: -d.V / length, V: d.U / length}, true
}

// tangent returns an unnormalized locus direction at t in uv space,
// pointing toward increasing temperature.
func tangent(t float64, method Tangent) UV {
	if method == Analytic {
		return analyticTangent(t)
	}
	u0 := XYToUV(PlanckianApprox(t))
	u1 := XYToUV(PlanckianApprox(t + tangentStep))
	return UV{U: u1.U - u0.U, V: u1.V - u0.V}
}

// analyticTangent applies the quotient rule to u = 4x/D, v = 9y/D with
// D = -2x + 12y + 3.
func analyticTangent(t float64) UV {
	p := PlanckianApprox(t)
	dp := planckianDerivative(t)

	denom := -2*p.X + 12*p.Y + 3
	if math.Abs(denom) < degenerateEpsilon {
		return UV{}
	}
	dDenom := -2*dp.X + 12*dp.Y
	d2 := denom * denom

	return UV{
		U: 4 * (dp.X*denom - p.X*dDenom) / d2,
		V: 9 * (dp.Y*denom - p.Y*dDenom) / d2,
	}
}
