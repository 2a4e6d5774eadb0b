package services

import (
	"context"
	"fmt"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/judgment"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/platform/obs"
	"itinerary-remediation-service/internal/ports"
	"itinerary-remediation-service/internal/remediation"
)

type FullRemediationOptions struct {
	Flights     *domain.FlightConstraints
	Remediation remediation.Options
	Judgment    judgment.Config
	// Provider may be nil; the judgment stage is then skipped.
	Provider ports.JudgmentProvider
	Logger   *logger.Logger
}

type FullRemediationResult struct {
	Itinerary          domain.Itinerary      `json:"itinerary"`
	Changes            []domain.ChangeRecord `json:"changes"`
	AlgorithmicChanges int                   `json:"algorithmicChanges"`
	JudgmentChanges    int                   `json:"judgmentChanges"`
	JudgmentCalls      int                   `json:"judgmentCalls"`
}

// FullRemediation runs the deterministic passes, then the judgment jobs, then
// renumbers slot ids so removals made by the judgment stage leave canonical ids.
// Judgment failures never fail the run; only a cancelled ctx does.
func FullRemediation(ctx context.Context, it domain.Itinerary, opts FullRemediationOptions) (res FullRemediationResult, err error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	defer obs.Time(ctx, log, "full_remediation")(&err)

	if opts.Remediation.Logger == nil {
		opts.Remediation.Logger = log
	}
	fixed, changes := remediation.Remediate(it, opts.Flights, opts.Remediation)
	res.AlgorithmicChanges = len(changes)

	judged, err := judgment.Remediate(ctx, fixed, opts.Provider, opts.Judgment, log)
	if err != nil {
		return FullRemediationResult{}, fmt.Errorf("full remediation: judgment: %w", err)
	}
	res.JudgmentChanges = len(judged.Changes)
	res.JudgmentCalls = judged.Calls
	changes = append(changes, judged.Changes...)

	renumbered, idChanges := remediation.RecalculateSlotIDs(judged.Itinerary)
	changes = append(changes, idChanges...)

	res.Itinerary = renumbered
	res.Changes = changes
	log.Info("full remediation finished",
		"algorithmic", res.AlgorithmicChanges, "judgment", res.JudgmentChanges, "calls", res.JudgmentCalls)
	return res, nil
}
