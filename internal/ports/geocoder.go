package ports

import (
	"context"

	"itinerary-remediation-service/internal/domain"
)

// Geocoder resolves free-text addresses to coordinates. Addresses without a
// result are absent from the returned map.
type Geocoder interface {
	Geocode(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}
