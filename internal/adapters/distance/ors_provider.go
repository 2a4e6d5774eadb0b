package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"itinerary-remediation-service/internal/adapters/cache"
	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/platform/httpx"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/platform/obs"
	"itinerary-remediation-service/internal/ports"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

type ORSOptions struct {
	BaseURL string
	// Profile is the ORS routing profile, e.g. "foot-walking" or "driving-car".
	Profile string
	// Country optionally restricts geocoding, ISO 3166-1 alpha-2 (e.g. "JP").
	Country string
	Timeout time.Duration
}

// ORSProvider implements DistanceMatrixProvider and Geocoder using OpenRouteService.
//
// It coordinates:
//   - Persistent geocode caching
//   - Persistent distance matrix caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSProvider struct {
	upstream      httpx.Retrier
	apiKey        string
	baseURL       string
	profile       string
	country       string
	distanceCache *cache.SQLDistanceCache
	geocodeCache  *cache.SQLGeocodeCache
	log           *logger.Logger
}

var (
	_ ports.DistanceMatrixProvider = (*ORSProvider)(nil)
	_ ports.Geocoder               = (*ORSProvider)(nil)
)

func NewORSProvider(
	apiKey string,
	opts ORSOptions,
	distanceCache *cache.SQLDistanceCache,
	geocodeCache *cache.SQLGeocodeCache,
	log *logger.Logger,
) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultORSBaseURL
	}
	if opts.Profile == "" {
		opts.Profile = "foot-walking"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	return &ORSProvider{
		upstream: httpx.Retrier{
			Client:      &http.Client{Timeout: opts.Timeout},
			Service:     "ors",
			MaxAttempts: 4,
			Backoff:     200 * time.Millisecond,
			Log:         log,
		},
		apiKey:        apiKey,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		profile:       opts.Profile,
		country:       opts.Country,
		distanceCache: distanceCache,
		geocodeCache:  geocodeCache,
		log:           log.With("component", "ors"),
	}, nil
}

// Delegate to batched path to reuse caching and matrix logic.
func (o *ORSProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	results, err := o.GetDistances(ctx, origin, []domain.Coordinates{destination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get distances %s -> %s: %w", origin.Key(), destination.Key(), err)
	}

	result, ok := results[destination.Key()]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %s -> %s", origin.Key(), destination.Key())
	}
	return result, nil
}

// Compute distances from a single origin to many destinations.
func (o *ORSProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, o.log, "ors.GetDistances")(&err)

	if !origin.Valid() {
		return nil, fmt.Errorf("invalid origin %s", origin.Key())
	}

	originKey := origin.Key()
	seen := make(map[string]struct{}, len(destinations))
	destKeys := make([]string, 0, len(destinations))
	byKey := make(map[string]domain.Coordinates, len(destinations))
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		if !d.Valid() {
			continue
		}
		k := d.Key()
		if k == originKey {
			out[k] = ports.DistanceResult{}
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		destKeys = append(destKeys, k)
		byKey[k] = d
	}

	if len(destKeys) == 0 {
		return out, nil
	}

	// Check persistent distance cache before issuing external API calls.
	if o.distanceCache != nil {
		hits, err := o.distanceCache.GetMany(ctx, o.profile+"|"+originKey, destKeys)
		if err != nil {
			return nil, fmt.Errorf("ORS get distance cache: %w", err)
		}
		for k, v := range hits {
			out[k] = v
		}
	}

	misses := make([]string, 0, len(destKeys))
	missCoords := make([]domain.Coordinates, 0, len(destKeys))
	for _, k := range destKeys {
		if _, ok := out[k]; !ok {
			misses = append(misses, k)
			missCoords = append(missCoords, byKey[k])
		}
	}

	if len(misses) == 0 {
		return out, nil
	}

	// Fetch a single origin->many matrix row for all cache misses.
	fetched, err := o.fetchMatrixRow(ctx, origin, misses, missCoords)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	if o.distanceCache != nil {
		if err := o.distanceCache.PutMany(ctx, o.profile+"|"+originKey, fetched); err != nil {
			o.log.Warn("distance cache write failed", "err", err)
		}
	}

	for k, v := range fetched {
		out[k] = v
	}
	return out, nil
}

// newRequest builds an authenticated ORS request.
func (o *ORSProvider) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	req, err := httpx.NewJSONRequest(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", o.apiKey)
	return req, nil
}
