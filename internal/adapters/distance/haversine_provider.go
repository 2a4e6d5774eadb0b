package distance

import (
	"context"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/geo"
	"itinerary-remediation-service/internal/ports"
)

// HaversineProvider estimates commutes offline from great-circle distance and
// the same speed profiles the remediation pipeline uses.
type HaversineProvider struct{}

var _ ports.DistanceMatrixProvider = HaversineProvider{}

func NewHaversineProvider() HaversineProvider { return HaversineProvider{} }

func (HaversineProvider) GetDistance(_ context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	c := geo.EstimateCommute(origin, destination)
	return ports.DistanceResult{DistanceMeters: c.Distance, DurationSeconds: c.Duration * 60}, nil
}

func (p HaversineProvider) GetDistances(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, _ := p.GetDistance(ctx, origin, d)
		out[d.Key()] = r
	}
	return out, nil
}
