package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves addresses through the geocode cache, then /geocode/search.
// Keys of the result are the caller's addresses.
func (o *ORSProvider) Geocode(ctx context.Context, addresses []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, o.log, "ors.Geocode")(&err)

	normToInput := make(map[string][]string, len(addresses))
	needed := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n := normalize(a)
		if n == "" {
			continue
		}
		if _, ok := normToInput[n]; !ok {
			needed = append(needed, n)
		}
		normToInput[n] = append(normToInput[n], a)
	}

	coords := make(map[string]domain.Coordinates, len(needed))
	if o.geocodeCache != nil && len(needed) > 0 {
		hits, err := o.geocodeCache.GetMany(ctx, needed)
		if err != nil {
			return nil, fmt.Errorf("ORS get geocode cache: %w", err)
		}
		for k, v := range hits {
			coords[k] = v
		}
	}

	misses := make([]string, 0, len(needed))
	for _, n := range needed {
		if _, ok := coords[n]; !ok {
			misses = append(misses, n)
		}
	}

	if len(misses) > 0 {
		fresh, err := o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("retrieving coordinates: %w", err)
		}
		if o.geocodeCache != nil && len(fresh) > 0 {
			if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
				o.log.Warn("geocode cache write failed", "err", err)
			}
		}
		for k, v := range fresh {
			coords[k] = v
		}
	}

	out := make(map[string]domain.Coordinates, len(addresses))
	for n, c := range coords {
		for _, a := range normToInput[n] {
			out[a] = c
		}
	}
	return out, nil
}

// geocodeMany resolves normalized addresses one request at a time. Addresses
// with no feature are left out of the result rather than failing the batch.
func (o *ORSProvider) geocodeMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	endpoint := o.baseURL + "/geocode/search"

	out := make(map[string]domain.Coordinates, len(addresses))
	for _, a := range addresses {
		c, ok, err := o.geocodeOne(ctx, endpoint, a)
		if err != nil {
			return nil, err
		}
		if !ok {
			o.log.Debug("no geocode result", "address", a)
			continue
		}
		out[a] = c
	}
	return out, nil
}

func (o *ORSProvider) geocodeOne(ctx context.Context, endpoint, address string) (domain.Coordinates, bool, error) {
	body, err := o.upstream.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		if o.country != "" {
			q.Set("boundary.country", o.country)
		}
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: %w", address, err)
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, false, nil
	}

	lonLat := decoded.Features[0].Geometry.Coordinates
	if len(lonLat) != 2 {
		return domain.Coordinates{}, false, fmt.Errorf("invalid coordinate format for %q", address)
	}
	return domain.Coordinates{Lng: lonLat[0], Lat: lonLat[1]}, true, nil
}
