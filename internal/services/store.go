package services

import (
	"context"
	"fmt"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/ports"
)

// StoreRemediation persists the remediated itinerary and appends its change log.
// It returns the run id under which the changes were recorded.
func StoreRemediation(ctx context.Context, repo ports.ItineraryRepository, it domain.Itinerary, changes []domain.ChangeRecord) (string, error) {
	if it.ID == "" {
		return "", fmt.Errorf("store remediation: itinerary has no id")
	}
	if err := repo.SaveItinerary(ctx, it); err != nil {
		return "", fmt.Errorf("store remediation: save %s: %w", it.ID, err)
	}
	runID, err := repo.RecordRemediation(ctx, it.ID, changes)
	if err != nil {
		return "", fmt.Errorf("store remediation: record %s: %w", it.ID, err)
	}
	return runID, nil
}
