package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/platform/obs"
)

const (
	selectGeocodesQuery = `
	SELECT address, lat, lng
	FROM geocode_cache
	WHERE address = ANY($1::text[])
		AND fetched_at > now() - make_interval(secs => $2);
	`

	upsertGeocodesQuery = `
	INSERT INTO geocode_cache (address, lat, lng, fetched_at)
	SELECT g.address, g.lat, g.lng, now()
	FROM unnest($1::text[], $2::float8[], $3::float8[]) AS g(address, lat, lng)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		fetched_at = EXCLUDED.fetched_at;
	`
)

// SQLGeocodeCache maps normalized addresses to coordinates.
type SQLGeocodeCache struct {
	DB  *sql.DB
	TTL time.Duration
	Log *logger.Logger
}

func NewSQLGeocodeCache(db *sql.DB, log *logger.Logger) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, TTL: DefaultTTL, Log: log}
}

func (s *SQLGeocodeCache) GetMany(ctx context.Context, addresses []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, s.Log, "cache.geocode.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	keys := uniqueKeys(addresses)
	out := make(map[string]domain.Coordinates, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	rows, err := s.DB.QueryContext(ctx, selectGeocodesQuery, keys, ttlSeconds(s.TTL))
	if err != nil {
		return nil, fmt.Errorf("geocode cache: select: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var addr string
		var c domain.Coordinates
		if err := rows.Scan(&addr, &c.Lat, &c.Lng); err != nil {
			return nil, fmt.Errorf("geocode cache: scan: %w", err)
		}
		out[addr] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geocode cache: rows: %w", err)
	}
	return out, nil
}

// PutMany upserts the valid coordinates in results; invalid ones are skipped.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, s.Log, "cache.geocode.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	var addrs []string
	var lats, lngs []float64
	for addr, c := range results {
		if addr == "" {
			return errors.New("geocode cache: empty address key")
		}
		if !c.Valid() {
			continue
		}
		addrs = append(addrs, addr)
		lats = append(lats, c.Lat)
		lngs = append(lngs, c.Lng)
	}
	if len(addrs) == 0 {
		return nil
	}

	if _, err := s.DB.ExecContext(ctx, upsertGeocodesQuery, addrs, lats, lngs); err != nil {
		return fmt.Errorf("geocode cache: upsert %d rows: %w", len(addrs), err)
	}
	return nil
}
