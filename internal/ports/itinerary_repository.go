package ports

import (
	"context"

	"itinerary-remediation-service/internal/domain"
)

// Port: a boundary for loading and storing itineraries and their remediation history.
type ItineraryRepository interface {
	GetItinerary(ctx context.Context, id string) (domain.Itinerary, error)
	SaveItinerary(ctx context.Context, it domain.Itinerary) error
	// RecordRemediation appends one audit row per change and returns the run id.
	RecordRemediation(ctx context.Context, itineraryID string, changes []domain.ChangeRecord) (string, error)
}
