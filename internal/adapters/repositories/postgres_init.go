package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"itinerary-remediation-service/internal/domain"
)

// Initialize the Postgres schema: itineraries, the remediation audit log and
// the routing caches used by the ORS adapter.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createItinerariesQuery := `
	CREATE TABLE IF NOT EXISTS itineraries (
		itinerary_id TEXT PRIMARY KEY,
		destination TEXT NOT NULL DEFAULT '',
		document JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createRemediationChangesQuery := `
	CREATE TABLE IF NOT EXISTS remediation_changes (
		run_id UUID NOT NULL,
		seq INTEGER NOT NULL,
		itinerary_id TEXT NOT NULL REFERENCES itineraries(itinerary_id) ON DELETE CASCADE,
		change_type TEXT NOT NULL,
		day_number INTEGER NOT NULL,
		slot_id TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (run_id, seq)
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (origin, destination)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	// Tables created before geocode freshness was tracked lack the column.
	alterGeocodeCacheQuery := `
	ALTER TABLE geocode_cache
	ADD COLUMN IF NOT EXISTS fetched_at TIMESTAMPTZ NOT NULL DEFAULT now();
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_remediation_changes_itinerary
	ON remediation_changes(itinerary_id, recorded_at);
	`

	statements := []string{
		createItinerariesQuery,
		createRemediationChangesQuery,
		createDistanceCacheQuery,
		createGeocodeCacheQuery,
		alterGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// LoadItinerariesJSON reads either a single itinerary object or an array of them.
func LoadItinerariesJSON(jsonPath string) ([]domain.Itinerary, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", jsonPath, err)
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var many []domain.Itinerary
		if err := json.Unmarshal(raw, &many); err != nil {
			return nil, fmt.Errorf("parse itinerary list: %w", err)
		}
		return many, nil
	}

	var one domain.Itinerary
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, fmt.Errorf("parse itinerary: %w", err)
	}
	return []domain.Itinerary{one}, nil
}

// Populate the database with itineraries from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	data, err := LoadItinerariesJSON(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed itineraries: %w", err)
	}

	for i, it := range data {
		if strings.TrimSpace(it.ID) == "" {
			return 0, fmt.Errorf("seed itineraries: item at index %d: id cannot be empty", i+1)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed itineraries: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertItineraryQuery)
	if err != nil {
		return 0, fmt.Errorf("seed itineraries: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range data {
		doc, err := json.Marshal(it)
		if err != nil {
			return 0, fmt.Errorf("seed itineraries: encode %q: %w", it.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, it.ID, it.Destination, doc); err != nil {
			return 0, fmt.Errorf("seed itineraries: insert itinerary_id=%q: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed itineraries: commit tx: %w", err)
	}

	return len(data), nil
}
