package engine

import (
	"fmt"
	"log/slog"

	"github.com/roach88/cctxy/internal/chroma"
	"github.com/roach88/cctxy/internal/input"
	"github.com/roach88/cctxy/internal/ir"
)

// Engine validates requests and runs them through the chroma pipeline.
type Engine struct {
	bounds  *input.Bounds
	tangent chroma.Tangent
	strict  bool
	clock   *Clock
	flowGen FlowTokenGenerator
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithBounds sets the bounds schema. Default: input.DefaultBounds.
func WithBounds(b *input.Bounds) Option {
	return func(e *Engine) {
		e.bounds = b
	}
}

// WithTangent selects the locus tangent estimate. Default: finite difference.
func WithTangent(m chroma.Tangent) Option {
	return func(e *Engine) {
		e.tangent = m
	}
}

// WithStrict makes Compute fail with ErrCodeDegenerate instead of
// returning a fallback point.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithClock replaces the logical clock.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithFlowGenerator replaces the flow token generator.
func WithFlowGenerator(g FlowTokenGenerator) Option {
	return func(e *Engine) {
		e.flowGen = g
	}
}

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine. It fails only if the default bounds schema cannot
// be compiled.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		tangent: chroma.FiniteDifference,
		clock:   NewClock(),
		flowGen: UUIDv7Generator{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.bounds == nil {
		b, err := input.DefaultBounds()
		if err != nil {
			return nil, fmt.Errorf("compiling default bounds: %w", err)
		}
		e.bounds = b
	}
	return e, nil
}

// Bounds returns the schema requests are validated against.
func (e *Engine) Bounds() *input.Bounds {
	return e.bounds
}

// Tangent returns the configured tangent estimate.
func (e *Engine) Tangent() chroma.Tangent {
	return e.tangent
}

// Compute validates req and returns the offset chromaticity.
//
// Degenerate inputs produce the fallback point with Degenerate set, unless
// the engine is strict. A result with NaN or Inf coordinates is never
// returned.
func (e *Engine) Compute(req ir.Request) (ir.Result, error) {
	if err := e.bounds.Validate(req); err != nil {
		e.logger.Debug("request rejected",
			"cct", req.CCT,
			"duv", req.Duv,
			"error", err)
		return ir.Result{}, &RuntimeError{
			Code:    ErrCodeInvalidRequest,
			Message: "request out of bounds",
			Err:     err,
		}
	}

	seq := e.clock.Next()
	token := e.flowGen.Generate()

	p, err := chroma.Offset(req.CCT, req.Duv, chroma.WithTangent(e.tangent))
	degenerate := err != nil
	if degenerate {
		if e.strict {
			return ir.Result{}, &RuntimeError{
				Code:      ErrCodeDegenerate,
				Message:   "numeric guard fired",
				FlowToken: token,
				Err:       err,
			}
		}
		e.logger.Warn("degenerate computation, returning fallback",
			"flow_token", token,
			"cct", req.CCT,
			"duv", req.Duv,
			"error", err)
	}

	if !p.Valid() {
		e.logger.Error("non-finite chromaticity",
			"flow_token", token,
			"cct", req.CCT,
			"duv", req.Duv)
		return ir.Result{}, &RuntimeError{
			Code:      ErrCodeNonFinite,
			Message:   fmt.Sprintf("computation produced (%v, %v)", p.X, p.Y),
			FlowToken: token,
		}
	}

	uv := chroma.XYToUV(p)
	locus := chroma.PlanckianApprox(req.CCT)

	result := ir.Result{
		CCT:        req.CCT,
		Duv:        req.Duv,
		X:          p.X,
		Y:          p.Y,
		U:          uv.U,
		V:          uv.V,
		LocusX:     locus.X,
		LocusY:     locus.Y,
		Tangent:    e.tangent.String(),
		Accurate:   chroma.InAccurateRange(req.CCT),
		Degenerate: degenerate,
		Seq:        seq,
		FlowToken:  token,
	}

	e.logger.Debug("computed chromaticity",
		"flow_token", token,
		"seq", seq,
		"cct", req.CCT,
		"duv", req.Duv,
		"x", p.X,
		"y", p.Y,
		"accurate", result.Accurate)

	return result, nil
}
