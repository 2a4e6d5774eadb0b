package ports

import (
	"context"

	"itinerary-remediation-service/internal/domain"
)

// Distance and travel duration between two locations.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving travel distance and duration between coordinates.
type DistanceProvider interface {
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}
