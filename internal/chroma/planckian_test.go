package chroma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanckianApprox(t *testing.T) {
	tests := []struct {
		name   string
		kelvin float64
		want   XY
	}{
		{"4000K", 4000, XY{X: 0.3804596859375, Y: 0.38267058076964156}},
		{"5000K", 5000, XY{X: 0.3449916808, Y: 0.3580683444323728}},
		{"6500K", 6500, XY{X: 0.3134941075102412, Y: 0.32989242222346415}},
		{"25000K", 25000, XY{X: 0.2524729944384, Y: 0.25836965527613087}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanckianApprox(tt.kelvin)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestPlanckianApproxPlausibleInRange(t *testing.T) {
	for k := ApproxMinKelvin; k <= ApproxMaxKelvin; k += 250 {
		p := PlanckianApprox(k)
		assert.True(t, p.Valid(), "T=%v", k)
		assert.Greater(t, p.X, 0.0, "T=%v", k)
		assert.Less(t, p.X, 1.0, "T=%v", k)
		assert.Greater(t, p.Y, 0.0, "T=%v", k)
		assert.Less(t, p.Y, 1.0, "T=%v", k)
	}
}

func TestPlanckianApproxExtrapolates(t *testing.T) {
	// Below the accurate range the polynomial leaves the chromaticity
	// diagram but stays finite.
	p := PlanckianApprox(1000)
	assert.True(t, p.Valid())
	assert.InDelta(t, -0.4557843, p.X, 1e-9)
	assert.False(t, InAccurateRange(1000))
}

func TestPlanckianLocusMovesTowardBlueWithTemperature(t *testing.T) {
	prev := PlanckianApprox(ApproxMinKelvin)
	for k := ApproxMinKelvin + 500; k <= ApproxMaxKelvin; k += 500 {
		p := PlanckianApprox(k)
		assert.Less(t, p.X, prev.X, "T=%v", k)
		prev = p
	}
}

func TestInAccurateRange(t *testing.T) {
	assert.True(t, InAccurateRange(4000))
	assert.True(t, InAccurateRange(6500))
	assert.True(t, InAccurateRange(25000))
	assert.False(t, InAccurateRange(3999.99))
	assert.False(t, InAccurateRange(30000))
}

func TestPlanckianDerivativeMatchesFiniteDifference(t *testing.T) {
	for _, k := range []float64{2700, 4000, 6500, 12000, 25000} {
		h := 1e-3
		a := PlanckianApprox(k - h)
		b := PlanckianApprox(k + h)
		d := planckianDerivative(k)
		assert.InDelta(t, (b.X-a.X)/(2*h), d.X, 1e-10, "T=%v", k)
		assert.InDelta(t, (b.Y-a.Y)/(2*h), d.Y, 1e-10, "T=%v", k)
	}
}
