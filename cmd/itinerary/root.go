package main

import (
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"itinerary-remediation-service/internal/config"
	"itinerary-remediation-service/internal/platform/obs"
)

var errInfeasible = errors.New("itinerary is infeasible")

type globalFlags struct {
	configPath  string
	logMode     string
	file        string
	itineraryID string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var a *app

	root := &cobra.Command{
		Use:   "itinerary",
		Short: "Validate and repair generated travel itineraries",
		Long: `itinerary checks a multi-day itinerary against layered scheduling
constraints and repairs what it can: impossible slots, duplicates, bad
commutes, mislabeled behaviors and, with a judgment provider configured,
semantic duplicates, unsuitable meals, missing durations and categories.

Input comes from --file (a JSON itinerary) or --itinerary-id (the Postgres
store, DATABASE_URL). Results are printed as JSON on stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := obs.WithRunID(cmd.Context(), uuid.NewString())
			cmd.SetContext(ctx)

			var err error
			a, err = newApp(ctx, flags)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.Get("ENGINE_CONFIG", ""), "Engine YAML config file")
	pf.StringVar(&flags.logMode, "log-mode", config.Get("LOG_MODE", "dev"), "Log format: dev or prod")
	pf.StringVarP(&flags.file, "file", "f", "", "Itinerary JSON file")
	pf.StringVar(&flags.itineraryID, "itinerary-id", "", "Itinerary id in the Postgres store")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newValidateCmd(func() *app { return a }),
		newRemediateCmd(func() *app { return a }),
		newFullCmd(func() *app { return a }),
		newInspectCmd(func() *app { return a }),
	)
	return root
}
