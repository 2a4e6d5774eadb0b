package main

import (
	"github.com/spf13/cobra"

	"itinerary-remediation-service/internal/constraints"
)

func newValidateCmd(appFn func() *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report constraint violations without changing anything",
		Long: `validate runs every constraint layer over the itinerary and prints the
analysis. The exit code is 2 when the itinerary is infeasible: any error, or
any warning with --strict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			it, err := a.loadItinerary(cmd.Context())
			if err != nil {
				return err
			}

			cfg := a.engine.ConstraintsConfig()
			if cmd.Flags().Changed("strict") {
				cfg.StrictMode = strict
			}
			analysis := constraints.NewEngine(cfg).Validate(it)
			a.log.Info("itinerary validated", "id", it.ID, "feasible", analysis.Feasible, "violations", len(analysis.Violations))

			if err := writeJSON(cmd.OutOrStdout(), newReport(analysis)); err != nil {
				return err
			}
			if !analysis.Feasible {
				return errInfeasible
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	return cmd
}
