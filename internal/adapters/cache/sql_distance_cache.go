package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/platform/obs"
	"itinerary-remediation-service/internal/ports"
)

const (
	selectDistancesQuery = `
	SELECT destination, distance_meters, duration_seconds
	FROM distance_cache
	WHERE origin = $1
		AND destination = ANY($2::text[])
		AND fetched_at > now() - make_interval(secs => $3);
	`

	// One round trip per origin: the rows arrive as parallel arrays.
	upsertDistancesQuery = `
	INSERT INTO distance_cache (origin, destination, distance_meters, duration_seconds, fetched_at)
	SELECT $1, d.destination, d.meters, d.seconds, now()
	FROM unnest($2::text[], $3::bigint[], $4::bigint[]) AS d(destination, meters, seconds)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		fetched_at = EXCLUDED.fetched_at;
	`
)

// SQLDistanceCache stores routing results per origin. Origins are
// "<profile>|<lat>,<lng>" so walking and driving rows never mix; destinations
// are coordinate keys.
type SQLDistanceCache struct {
	DB  *sql.DB
	TTL time.Duration
	Log *logger.Logger
}

func NewSQLDistanceCache(db *sql.DB, log *logger.Logger) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db, TTL: DefaultTTL, Log: log}
}

// GetMany returns the fresh cached results for origin; misses are absent.
func (s *SQLDistanceCache) GetMany(ctx context.Context, origin string, destinations []string) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, s.Log, "cache.distance.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("distance cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" {
		return nil, errors.New("distance cache: empty origin")
	}

	keys := uniqueKeys(destinations)
	out := make(map[string]ports.DistanceResult, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	rows, err := s.DB.QueryContext(ctx, selectDistancesQuery, origin, keys, ttlSeconds(s.TTL))
	if err != nil {
		return nil, fmt.Errorf("distance cache: select: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dest string
		var r ports.DistanceResult
		if err := rows.Scan(&dest, &r.DistanceMeters, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("distance cache: scan: %w", err)
		}
		out[dest] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("distance cache: rows: %w", err)
	}
	return out, nil
}

// PutMany upserts every result for origin in a single statement.
func (s *SQLDistanceCache) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) (err error) {
	defer obs.Time(ctx, s.Log, "cache.distance.PutMany")(&err)

	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" {
		return errors.New("distance cache: empty origin")
	}
	if len(results) == 0 {
		return nil
	}

	dests := make([]string, 0, len(results))
	meters := make([]int64, 0, len(results))
	seconds := make([]int64, 0, len(results))
	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return errors.New("distance cache: empty destination key")
		}
		dests = append(dests, dest)
		meters = append(meters, int64(r.DistanceMeters))
		seconds = append(seconds, int64(r.DurationSeconds))
	}

	if _, err := s.DB.ExecContext(ctx, upsertDistancesQuery, origin, dests, meters, seconds); err != nil {
		return fmt.Errorf("distance cache: upsert %d rows: %w", len(dests), err)
	}
	return nil
}
