package main

import (
	"github.com/spf13/cobra"

	"itinerary-remediation-service/internal/constraints"
	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/services"
)

type fullOutput struct {
	Itinerary          domain.Itinerary      `json:"itinerary"`
	Changes            []domain.ChangeRecord `json:"changes"`
	AlgorithmicChanges int                   `json:"algorithmicChanges"`
	JudgmentChanges    int                   `json:"judgmentChanges"`
	JudgmentCalls      int                   `json:"judgmentCalls"`
	After              report                `json:"after"`
	RunID              string                `json:"runId,omitempty"`
}

func newFullCmd(appFn func() *app) *cobra.Command {
	flags := &repairFlags{}
	var noJudgment bool

	cmd := &cobra.Command{
		Use:   "full",
		Short: "Apply the repair passes, then the judgment-based checks",
		Long: `full runs the deterministic passes followed by the judgment jobs. The
judgment provider is hosted OpenAI (OPENAI_API_KEY) or, failing that, a local
OpenAI-compatible server (LOCAL_JUDGMENT_BASE_URL, LOCAL_JUDGMENT_MODEL). With
neither available the judgment stage is skipped.`,
		Args: cobra.NoArgs,
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

			opts := services.FullRemediationOptions{
				Flights:     flights,
				Remediation: a.engine.RemediationOptions(a.log),
				Judgment:    a.engine.JudgmentConfig(),
				Logger:      a.log,
			}
			if !noJudgment {
				opts.Provider = a.judgmentProvider()
			}
			res, err := services.FullRemediation(ctx, it, opts)
			if err != nil {
				return err
			}

			runID, err := flags.store(ctx, a, res.Itinerary, res.Changes)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), fullOutput{
				Itinerary:          res.Itinerary,
				Changes:            res.Changes,
				AlgorithmicChanges: res.AlgorithmicChanges,
				JudgmentChanges:    res.JudgmentChanges,
				JudgmentCalls:      res.JudgmentCalls,
				After:              newReport(constraints.NewEngine(a.engine.ConstraintsConfig()).Validate(res.Itinerary)),
				RunID:              runID,
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&noJudgment, "no-judgment", false, "Skip the judgment stage even when a provider is configured")
	return cmd
}
