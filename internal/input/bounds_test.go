package input

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cctxy/internal/ir"
)

func mustDefault(t *testing.T) *Bounds {
	t.Helper()
	b, err := DefaultBounds()
	require.NoError(t, err)
	return b
}

func TestDefaultBoundsLimits(t *testing.T) {
	b := mustDefault(t)

	l := b.Limits()
	assert.Equal(t, Range{Min: 1000, Max: 30000, Initial: 6500}, l.CCT)
	assert.Equal(t, Range{Min: -0.1, Max: 0.1, Initial: 0}, l.Duv)
	assert.Equal(t, ir.Request{CCT: 6500, Duv: 0}, b.Initial())
	assert.Equal(t, "bounds.cue", b.Source())
}

func TestValidateAccepts(t *testing.T) {
	b := mustDefault(t)

	for _, req := range []ir.Request{
		{CCT: 6500, Duv: 0},
		{CCT: 1000, Duv: -0.1},
		{CCT: 30000, Duv: 0.1},
		{CCT: 2700, Duv: 0.003},
	} {
		assert.NoError(t, b.Validate(req), "%+v", req)
	}
}

func TestValidateRejects(t *testing.T) {
	b := mustDefault(t)

	tests := []struct {
		name  string
		req   ir.Request
		code  string
		field string
	}{
		{"cct too high", ir.Request{CCT: 40000, Duv: 0}, ErrCodeOutOfBounds, "cct"},
		{"cct too low", ir.Request{CCT: 999, Duv: 0}, ErrCodeOutOfBounds, "cct"},
		{"duv too high", ir.Request{CCT: 6500, Duv: 0.2}, ErrCodeOutOfBounds, "duv"},
		{"duv too low", ir.Request{CCT: 6500, Duv: -0.11}, ErrCodeOutOfBounds, "duv"},
		{"zero cct", ir.Request{CCT: 0, Duv: 0}, ErrCodeNonPositive, "cct"},
		{"negative cct", ir.Request{CCT: -6500, Duv: 0}, ErrCodeNonPositive, "cct"},
		{"nan cct", ir.Request{CCT: math.NaN(), Duv: 0}, ErrCodeNonFinite, "cct"},
		{"inf duv", ir.Request{CCT: 6500, Duv: math.Inf(1)}, ErrCodeNonFinite, "duv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Validate(tt.req)
			require.Error(t, err)

			ve, ok := IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, ve.Code)
			assert.Equal(t, tt.field, ve.Field)
			assert.Contains(t, err.Error(), tt.code)
		})
	}
}

func TestLoadBoundsCustom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "narrow.cue")
	schema := `limits: {
	cct: {min: 4000, max: 25000, initial: 5000}
	duv: {min: -0.02, max: 0.02, initial: 0}
}

#Request: {
	cct: number & >=limits.cct.min & <=limits.cct.max
	duv: number & >=limits.duv.min & <=limits.duv.max
}
`
	require.NoError(t, os.WriteFile(path, []byte(schema), 0644))

	b, err := LoadBounds(path)
	require.NoError(t, err)
	assert.Equal(t, path, b.Source())
	assert.Equal(t, 4000.0, b.Limits().CCT.Min)
	assert.Equal(t, ir.Request{CCT: 5000, Duv: 0}, b.Initial())

	assert.NoError(t, b.Validate(ir.Request{CCT: 6500, Duv: 0.01}))
	assert.Error(t, b.Validate(ir.Request{CCT: 2700, Duv: 0}))
	assert.Error(t, b.Validate(ir.Request{CCT: 6500, Duv: 0.05}))
}

func TestLoadBoundsErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		msg    string
	}{
		{
			name:   "syntax error",
			schema: "limits: {",
			msg:    "narrow.cue",
		},
		{
			name: "missing request",
			schema: `limits: {
	cct: {min: 1000, max: 30000, initial: 6500}
	duv: {min: -0.1, max: 0.1, initial: 0}
}`,
			msg: "#Request: definition is required",
		},
		{
			name:   "missing limits",
			schema: `#Request: {cct: number, duv: number}`,
			msg:    "limits.cct.min: is required",
		},
		{
			name: "initial outside range",
			schema: `limits: {
	cct: {min: 1000, max: 30000, initial: 500}
	duv: {min: -0.1, max: 0.1, initial: 0}
}
#Request: {cct: number, duv: number}`,
			msg: "limits.cct.initial",
		},
		{
			name: "non-positive minimum",
			schema: `limits: {
	cct: {min: 0, max: 30000, initial: 500}
	duv: {min: -0.1, max: 0.1, initial: 0}
}
#Request: {cct: number, duv: number}`,
			msg: "limits.cct.min: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "narrow.cue")
			require.NoError(t, os.WriteFile(path, []byte(tt.schema), 0644))

			_, err := LoadBounds(path)
			require.Error(t, err)
			ve, ok := IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, ErrCodeSchema, ve.Code)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadBoundsMissingFile(t *testing.T) {
	_, err := LoadBounds(filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read bounds file")
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: -0.1, Max: 0.1}
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(-0.1))
	assert.False(t, r.Contains(0.1000001))
}
