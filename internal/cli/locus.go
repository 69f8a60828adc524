package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cctxy/internal/chroma"
	"github.com/roach88/cctxy/internal/ir"
)

// LocusPoint is the JSON payload of the locus command.
type LocusPoint struct {
	CCT      string `json:"cct"`
	X        string `json:"x"`
	Y        string `json:"y"`
	U        string `json:"u"`
	V        string `json:"v"`
	Accurate bool   `json:"accurate"`
}

// NewLocusCommand creates the locus command.
func NewLocusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComputeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "locus",
		Short: "Print the Planckian locus point for a temperature",
		Long: `Print the approximate Planckian locus point (Duv = 0) in both
CIE 1931 (x, y) and CIE 1976 (u, v) coordinates.

Examples:
  cctxy locus --cct 6500
  cctxy locus --cct 3000 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocus(opts, cmd)
		},
	}

	addLocusFlags(cmd, opts)

	return cmd
}

func runLocus(opts *ComputeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	result, err := compute(opts, cmd, formatter)
	if err != nil {
		return err
	}

	p := opts.Precision
	locus := chroma.XY{X: result.LocusX, Y: result.LocusY}
	uv := chroma.XYToUV(locus)
	point := LocusPoint{
		CCT:      ir.FormatCoord(result.CCT, 0),
		X:        ir.FormatCoord(locus.X, p),
		Y:        ir.FormatCoord(locus.Y, p),
		U:        ir.FormatCoord(uv.U, p),
		V:        ir.FormatCoord(uv.V, p),
		Accurate: result.Accurate,
	}

	if formatter.JSON() {
		return formatter.SuccessWithTrace(point, result.FlowToken)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Locus at %s K\n", point.CCT)
	fmt.Fprintf(w, "  (x, y) = (%s, %s)\n", point.X, point.Y)
	fmt.Fprintf(w, "  (u, v) = (%s, %s)\n", point.U, point.V)
	return nil
}
