// Command cctxy converts correlated color temperature and Duv into CIE 1931
// chromaticity coordinates.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/cctxy/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "cctxy: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
