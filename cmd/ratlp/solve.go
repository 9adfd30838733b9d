package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fluxomics/ratlp/engine/highs"
	"github.com/fluxomics/ratlp/lp"
)

var solveFlags struct {
	maximize       bool
	iterationLimit int
	timeLimit      float64
	verbosity      int
	exact          bool
	write          string
	writeState     bool
}

var solveCmd = &cobra.Command{
	Use:   "solve <model.yaml>",
	Short: "Solve an LP model file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args[0])
		if err != nil {
			return err
		}

		eng, err := highs.New()
		if err != nil {
			return err
		}
		p, err := lp.New(eng, m)
		if err != nil {
			return err
		}
		defer p.Close()

		if cmd.Flags().Changed("max") {
			if err := p.SetMaximize(solveFlags.maximize); err != nil {
				return err
			}
		}

		opts := []lp.SolveOption{lp.WithVerbosity(solveFlags.verbosity)}
		if solveFlags.iterationLimit > 0 {
			opts = append(opts, lp.WithIterationLimit(solveFlags.iterationLimit))
		}
		if solveFlags.timeLimit > 0 {
			opts = append(opts, lp.WithTimeLimit(solveFlags.timeLimit))
		}

		status, err := p.Solve(cmd.Context(), opts...)
		if err != nil {
			return err
		}
		fmt.Printf("status: %s\n", status)

		sol, err := p.Extract()
		if err != nil {
			return err
		}
		if sol.IsOptimal() {
			if solveFlags.exact && sol.ObjectiveExact != nil {
				fmt.Printf("objective: %s\n", sol.ObjectiveExact.RatString())
			} else {
				fmt.Printf("objective: %g\n", sol.Objective)
			}
			names := make([]string, 0, len(sol.VarValues))
			for name := range sol.VarValues {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %s = %g\n", name, sol.VarValues[name])
			}
		}

		if solveFlags.write != "" {
			if err := p.Write(solveFlags.write, solveFlags.writeState, solveFlags.exact); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().BoolVar(&solveFlags.maximize, "max", false, "override the model's objective sense (true = maximize)")
	solveCmd.Flags().IntVar(&solveFlags.iterationLimit, "iteration-limit", 0, "simplex iteration limit (0 = engine default)")
	solveCmd.Flags().Float64Var(&solveFlags.timeLimit, "time-limit", 0, "solve time limit in seconds (0 = none)")
	solveCmd.Flags().IntVarP(&solveFlags.verbosity, "verbose", "v", 0, "diagnostic level")
	solveCmd.Flags().BoolVar(&solveFlags.exact, "exact", false, "report the objective as an exact rational")
	solveCmd.Flags().StringVar(&solveFlags.write, "write", "", "write the model to this path after solving")
	solveCmd.Flags().BoolVar(&solveFlags.writeState, "state", false, "with --write, persist the full solver state")
	rootCmd.AddCommand(solveCmd)
}
