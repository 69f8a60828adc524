package harness

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/cctxy/internal/chroma"
	"github.com/roach88/cctxy/internal/engine"
	"github.com/roach88/cctxy/internal/input"
	"github.com/roach88/cctxy/internal/ir"
)

// Harness executes scenarios. The zero value is not usable; use New.
type Harness struct {
	logger *slog.Logger
}

// New creates a harness that logs engine diagnostics to logger.
// A nil logger discards everything.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a discarding logger.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// outcome pairs a successful case with its engine result.
type outcome struct {
	index  int
	result ir.Result
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Build an engine with the scenario's bounds, tangent and fixed flow token
//  2. Compute every case in order, recording one trace event each
//  3. Check each case's expect clause
//  4. Evaluate assertions over the successful cases
//
// A returned error means the scenario could not be run at all; expectation
// and assertion failures are reported in Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	tangent, err := chroma.ParseTangent(scenario.Tangent)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithTangent(tangent),
		engine.WithStrict(scenario.Strict),
		engine.WithClock(engine.NewClock()),
		engine.WithFlowGenerator(engine.FixedGenerator{Token: scenario.flowToken()}),
		engine.WithLogger(h.logger),
	}
	if scenario.Bounds != "" {
		bounds, err := input.LoadBounds(scenario.Bounds)
		if err != nil {
			return nil, fmt.Errorf("failed to load bounds: %w", err)
		}
		opts = append(opts, engine.WithBounds(bounds))
	}

	eng, err := engine.New(opts...)
	if err != nil {
		return nil, err
	}

	clock := engine.NewClock()
	prec := scenario.precision()
	result := NewResult()
	var outcomes []outcome

	for i, c := range scenario.Cases {
		req := ir.Request{CCT: c.CCT, Duv: c.Duv}
		res, err := eng.Compute(req)
		if err != nil {
			code := engine.ErrorCode(err)
			result.AddErrorTrace(i, code, clock.Next())
			checkError(result, i, c, code, err)
			continue
		}

		result.AddResultTrace(i, res.Canonical(prec), clock.Next())
		checkExpect(result, i, c, res)
		outcomes = append(outcomes, outcome{index: i, result: res})
	}

	for _, msg := range evaluateAssertions(scenario.Assertions, outcomes, tangent) {
		result.AddError(msg)
	}

	h.logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"cases", len(scenario.Cases),
		"pass", result.Pass)

	return result, nil
}

func checkError(result *Result, i int, c Case, code string, err error) {
	if c.Expect != nil && c.Expect.Error != "" {
		if c.Expect.Error != code {
			result.AddError(fmt.Sprintf("case %d: expected error %s, got %s: %v", i, c.Expect.Error, code, err))
		}
		return
	}
	result.AddError(fmt.Sprintf("case %d (cct=%v, duv=%v): %v", i, c.CCT, c.Duv, err))
}

func checkExpect(result *Result, i int, c Case, res ir.Result) {
	if c.Expect == nil {
		return
	}
	e := c.Expect

	if e.Error != "" {
		result.AddError(fmt.Sprintf("case %d: expected error %s, got (%v, %v)", i, e.Error, res.X, res.Y))
		return
	}

	tol := e.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	if e.X != nil && math.Abs(res.X-*e.X) > tol {
		result.AddError(fmt.Sprintf("case %d: x = %v, expected %v ± %v", i, res.X, *e.X, tol))
	}
	if e.Y != nil && math.Abs(res.Y-*e.Y) > tol {
		result.AddError(fmt.Sprintf("case %d: y = %v, expected %v ± %v", i, res.Y, *e.Y, tol))
	}
	if e.Degenerate != nil && *e.Degenerate != res.Degenerate {
		result.AddError(fmt.Sprintf("case %d: degenerate = %v, expected %v", i, res.Degenerate, *e.Degenerate))
	}
}
