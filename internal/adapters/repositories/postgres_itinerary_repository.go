package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/platform/obs"
	"itinerary-remediation-service/internal/ports"
)

var ErrItineraryNotFound = errors.New("itinerary not found")

const upsertItineraryQuery = `
	INSERT INTO itineraries (itinerary_id, destination, document, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (itinerary_id) DO UPDATE
	SET destination = EXCLUDED.destination,
		document = EXCLUDED.document,
		updated_at = EXCLUDED.updated_at;
	`

// Postgres-backed implementation of the ItineraryRepository port. Itineraries
// are stored whole as JSONB documents.
type PostgresItineraryRepository struct {
	DB  *sql.DB
	Log *logger.Logger
}

var _ ports.ItineraryRepository = (*PostgresItineraryRepository)(nil)

func NewPostgresItineraryRepository(db *sql.DB, log *logger.Logger) *PostgresItineraryRepository {
	return &PostgresItineraryRepository{DB: db, Log: log}
}

func (r *PostgresItineraryRepository) GetItinerary(ctx context.Context, id string) (_ domain.Itinerary, err error) {
	defer obs.Time(ctx, r.Log, "itinerary.repo.Get")(&err)

	if r.DB == nil {
		return domain.Itinerary{}, errors.New("itinerary repository: DB is nil")
	}

	var doc []byte
	err = r.DB.QueryRowContext(ctx, `SELECT document FROM itineraries WHERE itinerary_id = $1;`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Itinerary{}, fmt.Errorf("get itinerary %q: %w", id, ErrItineraryNotFound)
	}
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("get itinerary %q: query: %w", id, err)
	}

	var it domain.Itinerary
	if err := json.Unmarshal(doc, &it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("get itinerary %q: decode document: %w", id, err)
	}
	if it.ID == "" {
		it.ID = id
	}
	return it, nil
}

func (r *PostgresItineraryRepository) SaveItinerary(ctx context.Context, it domain.Itinerary) (err error) {
	defer obs.Time(ctx, r.Log, "itinerary.repo.Save")(&err)

	if r.DB == nil {
		return errors.New("itinerary repository: DB is nil")
	}
	if it.ID == "" {
		return errors.New("save itinerary: id must not be empty")
	}

	doc, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("save itinerary %q: encode: %w", it.ID, err)
	}
	if _, err := r.DB.ExecContext(ctx, upsertItineraryQuery, it.ID, it.Destination, doc); err != nil {
		return fmt.Errorf("save itinerary %q: upsert: %w", it.ID, err)
	}
	return nil
}

// RecordRemediation writes every change of one run under a fresh run id.
// An empty change list still returns a run id but writes nothing.
func (r *PostgresItineraryRepository) RecordRemediation(
	ctx context.Context,
	itineraryID string,
	changes []domain.ChangeRecord,
) (_ string, err error) {
	defer obs.Time(ctx, r.Log, "itinerary.repo.RecordRemediation")(&err)

	runID := obs.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	if len(changes) == 0 {
		return runID, nil
	}
	if r.DB == nil {
		return "", errors.New("itinerary repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("record remediation: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO remediation_changes (run_id, seq, itinerary_id, change_type, day_number, slot_id, reason)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return "", fmt.Errorf("record remediation: prepare: %w", err)
	}
	defer stmt.Close()

	for i, c := range changes {
		if _, err := stmt.ExecContext(ctx, runID, i+1, itineraryID, string(c.Type), c.Day, c.SlotID, c.Reason); err != nil {
			return "", fmt.Errorf("record remediation: insert change #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("record remediation: commit tx: %w", err)
	}
	return runID, nil
}

// ChangeHistory returns the recorded changes of one run in order.
func (r *PostgresItineraryRepository) ChangeHistory(ctx context.Context, runID string) (_ []domain.ChangeRecord, err error) {
	defer obs.Time(ctx, r.Log, "itinerary.repo.ChangeHistory")(&err)

	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("change history: invalid run id %q: %w", runID, err)
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT change_type, day_number, slot_id, reason
	FROM remediation_changes
	WHERE run_id = $1
	ORDER BY seq;
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("change history: query: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ChangeRecord, 0)
	for rows.Next() {
		var c domain.ChangeRecord
		var changeType string
		if err := rows.Scan(&changeType, &c.Day, &c.SlotID, &c.Reason); err != nil {
			return nil, fmt.Errorf("change history: scan row: %w", err)
		}
		c.Type = domain.ChangeType(changeType)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("change history: row iteration: %w", err)
	}
	return out, nil
}
