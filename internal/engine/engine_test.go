package engine

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cctxy/internal/chroma"
	"github.com/roach88/cctxy/internal/input"
	"github.com/roach88/cctxy/internal/ir"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{
		WithLogger(quietLogger()),
		WithFlowGenerator(FixedGenerator{Token: "test-flow"}),
	}, opts...)
	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

// wideBounds allows temperatures far outside the form range so degenerate
// and non-finite paths can be reached.
func wideBounds(t *testing.T) *input.Bounds {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wide.cue")
	schema := `limits: {
	cct: {min: 1e-300, max: 1e300, initial: 6500}
	duv: {min: -1, max: 1, initial: 0}
}
#Request: {
	cct: number & >=limits.cct.min & <=limits.cct.max
	duv: number & >=limits.duv.min & <=limits.duv.max
}
`
	require.NoError(t, os.WriteFile(path, []byte(schema), 0644))
	b, err := input.LoadBounds(path)
	require.NoError(t, err)
	return b
}

func TestEngine_Defaults(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, chroma.FiniteDifference, e.Tangent())
	assert.Equal(t, 30000.0, e.Bounds().Limits().CCT.Max)
}

func TestEngine_Compute(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Compute(ir.Request{CCT: 6500, Duv: 0})
	require.NoError(t, err)

	assert.InDelta(t, 0.3135, result.X, 5e-5)
	assert.InDelta(t, 0.3299, result.Y, 5e-5)
	assert.InDelta(t, result.LocusX, result.X, 1e-12)
	assert.InDelta(t, result.LocusY, result.Y, 1e-12)
	assert.Equal(t, "finite_difference", result.Tangent)
	assert.True(t, result.Accurate)
	assert.False(t, result.Degenerate)
	assert.Equal(t, int64(1), result.Seq)
	assert.Equal(t, "test-flow", result.FlowToken)

	uv := chroma.XYToUV(chroma.XY{X: result.X, Y: result.Y})
	assert.Equal(t, uv.U, result.U)
	assert.Equal(t, uv.V, result.V)
}

func TestEngine_ComputeStampsIncreasingSeq(t *testing.T) {
	e := newTestEngine(t, WithClock(NewClockAt(41)))

	r1, err := e.Compute(ir.Request{CCT: 2700, Duv: 0.003})
	require.NoError(t, err)
	r2, err := e.Compute(ir.Request{CCT: 2700, Duv: -0.003})
	require.NoError(t, err)

	assert.Equal(t, int64(42), r1.Seq)
	assert.Equal(t, int64(43), r2.Seq)
	assert.False(t, r1.Accurate, "2700 K lies below the accurate range")
}

func TestEngine_ComputeAnalytic(t *testing.T) {
	e := newTestEngine(t, WithTangent(chroma.Analytic))

	result, err := e.Compute(ir.Request{CCT: 5000, Duv: 0.01})
	require.NoError(t, err)
	assert.Equal(t, "analytic", result.Tangent)
	assert.InDelta(t, 0.34958172629194595, result.X, 1e-6)
	assert.InDelta(t, 0.34501345905234077, result.Y, 1e-6)
}

func TestEngine_ComputeRejectsOutOfBounds(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Compute(ir.Request{CCT: 500, Duv: 0})
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidRequest, CodeOf(err))

	ve, ok := input.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, input.ErrCodeOutOfBounds, ve.Code)

	_, err = e.Compute(ir.Request{CCT: 0, Duv: 0})
	ve, ok = input.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, input.ErrCodeNonPositive, ve.Code)
}

func TestEngine_ComputeDegenerateFallback(t *testing.T) {
	var logs bytes.Buffer
	e := newTestEngine(t,
		WithBounds(wideBounds(t)),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	result, err := e.Compute(ir.Request{CCT: 1e300, Duv: 0.01})
	require.NoError(t, err)
	assert.True(t, result.Degenerate)
	assert.Equal(t, chroma.PlanckianApprox(1e300).X, result.X)
	assert.Contains(t, logs.String(), "degenerate computation")
	assert.Contains(t, logs.String(), "flow_token=test-flow")
}

func TestEngine_ComputeStrictDegenerate(t *testing.T) {
	e := newTestEngine(t, WithBounds(wideBounds(t)), WithStrict(true))

	_, err := e.Compute(ir.Request{CCT: 1e300, Duv: 0.01})
	require.Error(t, err)
	assert.True(t, IsDegenerateError(err))
	assert.ErrorIs(t, err, chroma.ErrDegenerateTangent)
	assert.Contains(t, err.Error(), "flow=test-flow")

	// Strict mode does not affect well-conditioned requests.
	_, err = e.Compute(ir.Request{CCT: 6500, Duv: 0.01})
	require.NoError(t, err)
}

func TestEngine_ComputeNeverReturnsNonFinite(t *testing.T) {
	e := newTestEngine(t, WithBounds(wideBounds(t)))

	// 1/T^3 overflows and the locus polynomial evaluates to NaN.
	_, err := e.Compute(ir.Request{CCT: 1e-300, Duv: 0})
	require.Error(t, err)
	assert.True(t, IsNonFiniteError(err))
	assert.False(t, IsDegenerateError(err))
}

func TestRuntimeError_Error(t *testing.T) {
	err := &RuntimeError{Code: ErrCodeNonFinite, Message: "bad", FlowToken: "f1"}
	assert.Equal(t, "NON_FINITE_RESULT: bad (flow=f1)", err.Error())

	assert.Equal(t, RuntimeErrorCode(""), CodeOf(io.EOF))
}

func TestErrorCode(t *testing.T) {
	e := newTestEngine(t, WithBounds(wideBounds(t)), WithStrict(true))

	_, err := e.Compute(ir.Request{CCT: 1e300, Duv: 0})
	assert.Equal(t, CodeDegenerate, ErrorCode(err))

	_, err = e.Compute(ir.Request{CCT: 1e-300, Duv: 0})
	assert.Equal(t, CodeNonFinite, ErrorCode(err))

	_, err = e.Compute(ir.Request{CCT: -1, Duv: 0})
	assert.Equal(t, input.ErrCodeNonPositive, ErrorCode(err))

	assert.Equal(t, CodeGeneric, ErrorCode(io.EOF))
}
