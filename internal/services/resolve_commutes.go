package services

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/geo"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/ports"
)

const routingConcurrency = 5

type originResult struct {
	origin string
	res    map[string]ports.DistanceResult
}

// leg is one missing commute: where to write it and its endpoints.
type leg struct {
	write    func(*domain.Itinerary, domain.CommuteInfo)
	from, to domain.Coordinates
}

// ResolveCommutes fills missing commutes from a routing provider before the
// itinerary is validated or remediated. Existing commutes are never replaced.
// Legs whose endpoints lack coordinates, or that the provider cannot route, stay
// empty. Lookups are grouped per origin and fanned out with bounded concurrency;
// the first provider error cancels the rest and is returned.
func ResolveCommutes(
	ctx context.Context,
	it domain.Itinerary,
	provider ports.DistanceProvider,
	log *logger.Logger,
) (domain.Itinerary, int, error) {
	out := it.Clone()
	if log == nil {
		log = logger.Nop()
	}

	legs := missingLegs(&out)
	if len(legs) == 0 {
		return out, 0, nil
	}

	byOrigin := make(map[string][]domain.Coordinates)
	origins := make(map[string]domain.Coordinates)
	for _, l := range legs {
		k := l.from.Key()
		origins[k] = l.from
		byOrigin[k] = append(byOrigin[k], l.to)
	}

	results := make(map[string]map[string]ports.DistanceResult, len(byOrigin))
	resultsCh := make(chan originResult, len(byOrigin))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(routingConcurrency)
	for k, dests := range byOrigin {
		origin := origins[k]
		g.Go(func() error {
			res, err := routeFrom(gctx, provider, origin, dests)
			if err != nil {
				return fmt.Errorf("resolve commutes: route from %s: %w", origin.Key(), err)
			}
			resultsCh <- originResult{origin: k, res: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return it.Clone(), 0, err
	}
	close(resultsCh)
	for r := range resultsCh {
		results[r.origin] = r.res
	}

	resolved := 0
	for _, l := range legs {
		r, ok := results[l.from.Key()][l.to.Key()]
		if !ok {
			log.Debug("leg not routable", "from", l.from.Key(), "to", l.to.Key())
			continue
		}
		l.write(&out, commuteFromRoute(r))
		resolved++
	}
	log.Info("commutes resolved", "legs", len(legs), "resolved", resolved)
	return out, resolved, nil
}

// routeFrom prefers one batched matrix call per origin when the provider supports it.
func routeFrom(ctx context.Context, provider ports.DistanceProvider, origin domain.Coordinates, dests []domain.Coordinates) (map[string]ports.DistanceResult, error) {
	if mp, ok := provider.(ports.DistanceMatrixProvider); ok {
		return mp.GetDistances(ctx, origin, dests)
	}

	out := make(map[string]ports.DistanceResult, len(dests))
	for _, d := range dests {
		if _, done := out[d.Key()]; done {
			continue
		}
		r, err := provider.GetDistance(ctx, origin, d)
		if err != nil {
			return nil, fmt.Errorf("to %s: %w", d.Key(), err)
		}
		out[d.Key()] = r
	}
	return out, nil
}

func commuteFromRoute(r ports.DistanceResult) domain.CommuteInfo {
	minutes := int(math.Ceil(float64(r.DurationSeconds) / 60))
	if minutes < 1 && r.DistanceMeters > 0 {
		minutes = 1
	}
	return domain.CommuteInfo{
		Duration:     minutes,
		Distance:     r.DistanceMeters,
		Method:       geo.MethodForDistance(float64(r.DistanceMeters)),
		Instructions: fmt.Sprintf("Routed %.1f km", float64(r.DistanceMeters)/1000),
	}
}

// missingLegs lists every absent commute whose endpoints are both known:
// hotel to first slot, slot to slot, and last slot back to the hotel.
func missingLegs(it *domain.Itinerary) []leg {
	var legs []leg
	for di := range it.Days {
		day := &it.Days[di]
		var hotel *domain.Coordinates
		if day.Accommodation != nil && day.Accommodation.Coordinates.Valid() {
			hotel = day.Accommodation.Coordinates
		}

		for si := range day.Slots {
			s := &day.Slots[si]
			to := domain.PlaceCoordinates(domain.EffectiveActivity(s))
			if si == 0 {
				if hotel != nil && to != nil && day.CommuteFromHotel == nil {
					legs = append(legs, leg{from: *hotel, to: *to, write: func(it *domain.Itinerary, c domain.CommuteInfo) {
						it.Days[di].CommuteFromHotel = &c
					}})
				}
				continue
			}
			if s.CommuteFromPrevious != nil || to == nil {
				continue
			}
			from := domain.DepartureCoordinates(domain.EffectiveActivity(&day.Slots[si-1]))
			if from == nil {
				continue
			}
			legs = append(legs, leg{from: *from, to: *to, write: func(it *domain.Itinerary, c domain.CommuteInfo) {
				it.Days[di].Slots[si].CommuteFromPrevious = &c
			}})
		}

		if n := len(day.Slots); n > 0 && hotel != nil && day.CommuteToHotel == nil {
			if from := domain.DepartureCoordinates(domain.EffectiveActivity(&day.Slots[n-1])); from != nil {
				legs = append(legs, leg{from: *from, to: *hotel, write: func(it *domain.Itinerary, c domain.CommuteInfo) {
					it.Days[di].CommuteToHotel = &c
				}})
			}
		}
	}
	return legs
}
