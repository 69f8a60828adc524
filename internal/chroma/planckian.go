package chroma

// Validity range of the locus polynomial, in Kelvin.
const (
	ApproxMinKelvin = 4000.0
	ApproxMaxKelvin = 25000.0
)

// Locus polynomial coefficients: x = c3/T^3 + c2/T^2 + c1/T + c0.
const (
	locusC3 = -3.0258469e9
	locusC2 = 2.1070379e6
	locusC1 = 0.2226347e3
	locusC0 = 0.240390
)

// y = yA*x^2 + yB*x + yC along the locus.
const (
	locusYA = -3.0
	locusYB = 2.87
	locusYC = -0.275
)

// PlanckianApprox returns the approximate Planckian locus chromaticity for
// temperature t in Kelvin. t must be nonzero.
func PlanckianApprox(t float64) XY {
	invT := 1.0 / t
	invT2 := invT * invT
	invT3 := invT2 * invT

	x := locusC3*invT3 + locusC2*invT2 + locusC1*invT + locusC0
	y := locusYA*(x*x) + locusYB*x + locusYC

	return XY{X: x, Y: y}
}

// planckianDerivative returns d(x, y)/dT of PlanckianApprox at t.
func planckianDerivative(t float64) XY {
	invT := 1.0 / t
	invT2 := invT * invT
	invT3 := invT2 * invT
	invT4 := invT3 * invT

	x := PlanckianApprox(t).X
	dx := -3*locusC3*invT4 - 2*locusC2*invT3 - locusC1*invT2
	dy := (2*locusYA*x + locusYB) * dx

	return XY{X: dx, Y: dy}
}

// InAccurateRange reports whether t lies within the range where the locus
// polynomial is accurate.
func InAccurateRange(t float64) bool {
	return t >= ApproxMinKelvin && t <= ApproxMaxKelvin
}
