package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cctxy/internal/chroma"
	"github.com/roach88/cctxy/internal/engine"
	"github.com/roach88/cctxy/internal/input"
	"github.com/roach88/cctxy/internal/ir"
)

// DefaultPrecision is the number of decimals printed for coordinates.
const DefaultPrecision = 4

// maxPrecision bounds --precision; float64 carries ~15-17 significant digits.
const maxPrecision = 15

// ComputeOptions holds flags shared by the xy and locus commands.
type ComputeOptions struct {
	*RootOptions
	CCT       float64
	Duv       float64
	Precision int
	Tangent   string
	Bounds    string
	Strict    bool
}

// NewXYCommand creates the xy command.
func NewXYCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComputeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "xy",
		Short: "Convert CCT and Duv to CIE 1931 (x, y)",
		Long: `Compute the chromaticity offset Duv units from the Planckian locus
at the given correlated color temperature.

Positive Duv follows the locus tangent (toward higher temperature)
rotated 90 degrees counter-clockwise in (u, v); with the polynomial used
here that is below the locus, toward lower v. The locus
approximation is accurate between 4000 K and 25000 K; temperatures
outside that range are computed but flagged.

Exit codes:
  0 - Success
  1 - Computation failed (degenerate in --strict mode, non-finite result)
  2 - Invalid input (out of bounds, bad flags, unreadable bounds file)

Examples:
  cctxy xy --cct 6500
  cctxy xy --cct 2700 --duv 0.003 --precision 6
  cctxy xy --cct 5000 --duv -0.01 --format json
  cctxy xy --bounds ./bounds.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runXY(opts, cmd)
		},
	}

	addLocusFlags(cmd, opts)
	cmd.Flags().Float64Var(&opts.Duv, "duv", 0, "signed distance from the locus in uv space")
	cmd.Flags().StringVar(&opts.Tangent, "tangent", chroma.FiniteDifference.String(), "locus tangent estimate (finite_difference|analytic)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail instead of returning a fallback point on degenerate input")

	return cmd
}

// addLocusFlags registers the flags shared by xy and locus.
func addLocusFlags(cmd *cobra.Command, opts *ComputeOptions) {
	cmd.Flags().Float64Var(&opts.CCT, "cct", 6500, "correlated color temperature in Kelvin")
	cmd.Flags().IntVar(&opts.Precision, "precision", DefaultPrecision, "decimal places in output (0-15)")
	cmd.Flags().StringVar(&opts.Bounds, "bounds", "", "CUE bounds schema (default: built-in)")
}

func runXY(opts *ComputeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	result, err := compute(opts, cmd, formatter)
	if err != nil {
		return err
	}

	if formatter.JSON() {
		return formatter.SuccessWithTrace(result.Canonical(opts.Precision), result.FlowToken)
	}

	return formatter.Success(fmt.Sprintf("Result: (x, y) = (%s, %s)",
		ir.FormatCoord(result.X, opts.Precision),
		ir.FormatCoord(result.Y, opts.Precision)))
}

// compute validates flags, builds an engine and runs one request. Without a
// --duv flag on cmd the request stays on the locus (Duv 0). Errors are
// written through formatter and returned as ExitErrors.
func compute(opts *ComputeOptions, cmd *cobra.Command, formatter *OutputFormatter) (ir.Result, error) {
	if opts.Precision < 0 || opts.Precision > maxPrecision {
		return ir.Result{}, formatter.Fail(ExitCommandError, ErrCodeBadFlag,
			fmt.Sprintf("precision %d out of range [0, %d]", opts.Precision, maxPrecision), nil)
	}

	eng, err := newEngine(opts, cmd.ErrOrStderr())
	if err != nil {
		return ir.Result{}, failFromError(formatter, err)
	}

	req := eng.Bounds().Initial()
	if cmd.Flags().Changed("cct") {
		req.CCT = opts.CCT
	}
	switch f := cmd.Flags().Lookup("duv"); {
	case f == nil:
		req.Duv = 0
	case f.Changed:
		req.Duv = opts.Duv
	}

	formatter.VerboseLog("Computing cct=%v duv=%v (tangent=%s, bounds=%s)",
		req.CCT, req.Duv, eng.Tangent(), eng.Bounds().Source())

	result, err := eng.Compute(req)
	if err != nil {
		return ir.Result{}, failFromError(formatter, err)
	}

	reportDiagnostics(formatter, result)
	return result, nil
}

// newEngine builds the engine configured by opts. Logs go to w.
func newEngine(opts *ComputeOptions, w io.Writer) (*engine.Engine, error) {
	method, err := chroma.ParseTangent(opts.Tangent)
	if err != nil {
		return nil, &input.ValidationError{
			Field:   "tangent",
			Message: err.Error(),
			Code:    ErrCodeBadFlag,
		}
	}

	engOpts := []engine.Option{
		engine.WithTangent(method),
		engine.WithStrict(opts.Strict),
		engine.WithLogger(newLogger(opts.RootOptions, w)),
	}
	if opts.Bounds != "" {
		b, err := input.LoadBounds(opts.Bounds)
		if err != nil {
			return nil, err
		}
		engOpts = append(engOpts, engine.WithBounds(b))
	}
	return engine.New(engOpts...)
}

// failFromError writes err and maps it to an exit code: rejected input is a
// command error, a failed computation is a failure.
func failFromError(formatter *OutputFormatter, err error) error {
	code := engine.ErrorCode(err)
	var details any
	if ve, ok := input.IsValidationError(err); ok {
		details = map[string]string{"field": ve.Field}
	}

	exitCode := ExitCommandError
	var re *engine.RuntimeError
	if errors.As(err, &re) && re.Code != engine.ErrCodeInvalidRequest {
		exitCode = ExitFailure
	}
	return formatter.Fail(exitCode, code, err.Error(), details)
}

// reportDiagnostics writes accuracy and fallback notes to the diagnostic
// stream.
func reportDiagnostics(formatter *OutputFormatter, result ir.Result) {
	if !result.Accurate {
		formatter.Warn("%v K is outside the approximation range [%v, %v] K; result is extrapolated",
			result.CCT, chroma.ApproxMinKelvin, chroma.ApproxMaxKelvin)
	}
	if result.Degenerate {
		formatter.Warn("numeric guard fired; returned fallback point (use --strict to fail instead)")
	}
}
