package main

import (
	"github.com/spf13/cobra"

	"itinerary-remediation-service/internal/constraints"
	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/remediation"
)

type remediateOutput struct {
	Itinerary domain.Itinerary      `json:"itinerary"`
	Changes   []domain.ChangeRecord `json:"changes"`
	After     report                `json:"after"`
	RunID     string                `json:"runId,omitempty"`
}

func newRemediateCmd(appFn func() *app) *cobra.Command {
	flags := &repairFlags{}

	cmd := &cobra.Command{
		Use:   "remediate",
		Short: "Apply the deterministic repair passes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			ctx := cmd.Context()

			flights, err := flags.flights()
			if err != nil {
				return err
			}
			it, err := flags.prepare(ctx, a)
			if err != nil {
				return err
			}

			fixed, changes := remediation.Remediate(it, flights, a.engine.RemediationOptions(a.log))
			a.log.Info("itinerary remediated", "id", it.ID, "changes", len(changes))

			runID, err := flags.store(ctx, a, fixed, changes)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), remediateOutput{
				Itinerary: fixed,
				Changes:   changes,
				After:     newReport(constraints.NewEngine(a.engine.ConstraintsConfig()).Validate(fixed)),
				RunID:     runID,
			})
		},
	}
	flags.register(cmd)
	return cmd
}
