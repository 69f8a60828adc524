package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cctxy/internal/chroma"
	"github.com/roach88/cctxy/internal/input"
	"github.com/roach88/cctxy/internal/ir"
)

// ConvertOptions holds flags for the uv and xy-from-uv commands.
type ConvertOptions struct {
	*RootOptions
	A, B      float64
	Precision int
}

// NewUVCommand creates the uv command (CIE 1931 xy to CIE 1976 uv).
func NewUVCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "uv",
		Short: "Convert CIE 1931 (x, y) to CIE 1976 (u, v)",
		Long: `Convert a CIE 1931 chromaticity to the CIE 1976 uniform chromaticity
scale used for Duv distances.

Examples:
  cctxy uv --x 0.3127 --y 0.3290`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, cmd, "x", "y", func(a, b float64) (float64, float64, error) {
				uv, err := chroma.ConvertXY(chroma.XY{X: a, Y: b})
				return uv.U, uv.V, err
			}, "u", "v")
		},
	}

	cmd.Flags().Float64Var(&opts.A, "x", 0, "CIE 1931 x")
	cmd.Flags().Float64Var(&opts.B, "y", 0, "CIE 1931 y")
	cmd.Flags().IntVar(&opts.Precision, "precision", DefaultPrecision, "decimal places in output (0-15)")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

// NewXYFromUVCommand creates the xy-from-uv command (CIE 1976 uv to CIE 1931 xy).
func NewXYFromUVCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "xy-from-uv",
		Short: "Convert CIE 1976 (u, v) to CIE 1931 (x, y)",
		Long: `Convert a CIE 1976 uniform chromaticity back to CIE 1931.

Examples:
  cctxy xy-from-uv --u 0.1978 --v 0.4683`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, cmd, "u", "v", func(a, b float64) (float64, float64, error) {
				xy, err := chroma.ConvertUV(chroma.UV{U: a, V: b})
				return xy.X, xy.Y, err
			}, "x", "y")
		},
	}

	cmd.Flags().Float64Var(&opts.A, "u", 0, "CIE 1976 u'")
	cmd.Flags().Float64Var(&opts.B, "v", 0, "CIE 1976 v'")
	cmd.Flags().IntVar(&opts.Precision, "precision", DefaultPrecision, "decimal places in output (0-15)")
	_ = cmd.MarkFlagRequired("u")
	_ = cmd.MarkFlagRequired("v")

	return cmd
}

type convertFunc func(a, b float64) (float64, float64, error)

func runConvert(opts *ConvertOptions, cmd *cobra.Command, inA, inB string, conv convertFunc, outA, outB string) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Precision < 0 || opts.Precision > maxPrecision {
		return formatter.Fail(ExitCommandError, ErrCodeBadFlag,
			fmt.Sprintf("precision %d out of range [0, %d]", opts.Precision, maxPrecision), nil)
	}
	if !(chroma.XY{X: opts.A, Y: opts.B}).Valid() {
		return formatter.Fail(ExitCommandError, input.ErrCodeNonFinite,
			fmt.Sprintf("non-finite input (%s, %s) = (%v, %v)", inA, inB, opts.A, opts.B), nil)
	}

	a, b, err := conv(opts.A, opts.B)
	if err != nil {
		return formatter.Fail(ExitCommandError, input.ErrCodeNonFinite,
			fmt.Sprintf("(%s, %s) = (%v, %v) has no conversion: %v", inA, inB, opts.A, opts.B, err), nil)
	}

	fa := ir.FormatCoord(a, opts.Precision)
	fb := ir.FormatCoord(b, opts.Precision)

	if formatter.JSON() {
		return formatter.Success(map[string]string{outA: fa, outB: fb})
	}
	return formatter.Success(fmt.Sprintf("Result: (%s, %s) = (%s, %s)", outA, outB, fa, fb))
}
