// Command ratlp solves a linear program described in a YAML model file,
// using the HiGHS engine behind the ratlp bridge.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fluxomics/ratlp/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ratlp",
	Short: "Exact-rational LP bridge",
	Long: `ratlp builds an LP from a sparse model with exact rational
coefficients, solves it with a warm-start/cold-fallback strategy, and
reports the primal/dual solution.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Logger("cli").Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
