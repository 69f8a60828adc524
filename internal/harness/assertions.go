package harness

import (
	"fmt"
	"math"

	"github.com/roach88/cctxy/internal/chroma"
)

// Default tolerances per assertion type.
var defaultTolerances = map[string]float64{
	AssertFinite:             0,
	AssertRoundTrip:          1e-9,
	AssertZeroOffsetIdentity: 1e-6,
	AssertDuvDistance:        1e-9,
	AssertSignSymmetry:       0,
}

// AssertionError is returned when an assertion fails for a case.
type AssertionError struct {
	Type     string
	Case     int
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s failed for case %d: expected %s, got %s", e.Type, e.Case, e.Expected, e.Actual)
}

// evaluateAssertions checks each assertion against the outcomes and returns
// the failure messages. Degenerate outcomes are only checked for finiteness.
func evaluateAssertions(assertions []Assertion, outcomes []outcome, tangent chroma.Tangent) []string {
	var msgs []string
	for _, a := range assertions {
		tol := a.Tolerance
		if tol == 0 {
			tol = defaultTolerances[a.Type]
		}
		for _, o := range outcomes {
			if o.result.Degenerate && a.Type != AssertFinite {
				continue
			}
			if err := evaluateAssertion(a.Type, tol, o, tangent); err != nil {
				msgs = append(msgs, err.Error())
			}
		}
	}
	return msgs
}

func evaluateAssertion(typ string, tol float64, o outcome, tangent chroma.Tangent) error {
	r := o.result
	xy := chroma.XY{X: r.X, Y: r.Y}

	switch typ {
	case AssertFinite:
		if !xy.Valid() || !(chroma.UV{U: r.U, V: r.V}).Valid() {
			return &AssertionError{Type: typ, Case: o.index, Expected: "finite coordinates", Actual: fmt.Sprintf("(%v, %v)", r.X, r.Y)}
		}

	case AssertRoundTrip:
		back := chroma.UVToXY(chroma.XYToUV(xy))
		if d := math.Max(math.Abs(back.X-r.X), math.Abs(back.Y-r.Y)); d > tol {
			return &AssertionError{Type: typ, Case: o.index, Expected: fmt.Sprintf("deviation <= %v", tol), Actual: fmt.Sprintf("%v", d)}
		}

	case AssertZeroOffsetIdentity:
		p, err := chroma.Offset(r.CCT, 0, chroma.WithTangent(tangent))
		if err != nil {
			return nil
		}
		locus := chroma.PlanckianApprox(r.CCT)
		if d := math.Max(math.Abs(p.X-locus.X), math.Abs(p.Y-locus.Y)); d > tol {
			return &AssertionError{Type: typ, Case: o.index, Expected: fmt.Sprintf("deviation <= %v", tol), Actual: fmt.Sprintf("%v", d)}
		}

	case AssertDuvDistance:
		locus := chroma.XYToUV(chroma.XY{X: r.LocusX, Y: r.LocusY})
		d := chroma.Distance(locus, chroma.UV{U: r.U, V: r.V})
		if math.Abs(d-math.Abs(r.Duv)) > tol {
			return &AssertionError{Type: typ, Case: o.index, Expected: fmt.Sprintf("distance %v ± %v", math.Abs(r.Duv), tol), Actual: fmt.Sprintf("%v", d)}
		}

	case AssertSignSymmetry:
		if r.Duv == 0 {
			return nil
		}
		n, ok := chroma.Normal(r.CCT, tangent)
		if !ok {
			return nil
		}
		locus := chroma.XYToUV(chroma.XY{X: r.LocusX, Y: r.LocusY})
		side := func(p chroma.UV) float64 {
			return (p.U-locus.U)*n.U + (p.V-locus.V)*n.V
		}

		mirror, err := chroma.Offset(r.CCT, -r.Duv, chroma.WithTangent(tangent))
		if err != nil {
			return nil
		}
		s1 := side(chroma.UV{U: r.U, V: r.V})
		s2 := side(chroma.XYToUV(mirror))
		if math.Signbit(s1) != math.Signbit(r.Duv) || math.Signbit(s2) == math.Signbit(r.Duv) {
			return &AssertionError{Type: typ, Case: o.index, Expected: "opposite sides of the tangent", Actual: fmt.Sprintf("sides %v and %v", s1, s2)}
		}
	}
	return nil
}
