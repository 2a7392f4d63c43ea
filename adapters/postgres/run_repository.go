package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"darksiren/domain/core"
	"darksiren/domain/inference"
	"darksiren/domain/run"
	apperrors "darksiren/internal/errors"
)

// Schema for the runs table; Connect applies it after opening.
const Schema = `
CREATE TABLE IF NOT EXISTS siren_runs (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	variant    TEXT NOT NULL,
	requested  INTEGER NOT NULL,
	simulated  INTEGER NOT NULL,
	detected   INTEGER NOT NULL,
	h0_grid    JSONB NOT NULL,
	combined   JSONB NOT NULL,
	summary    JSONB NOT NULL
)`

// RunRepository persists inference runs in Postgres.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a run repository over an open connection.
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Connect opens a Postgres connection, verifies it and ensures the runs
// table exists.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to connect to postgres", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, apperrors.DatabaseError("failed to ensure runs schema", err)
	}
	return db, nil
}

// SaveRun inserts a completed run.
func (r *RunRepository) SaveRun(ctx context.Context, rec *run.Record) error {
	query := `
		INSERT INTO siren_runs (
			id, created_at, variant, requested, simulated, detected,
			h0_grid, combined, summary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	gridJSON, err := json.Marshal(rec.H0Grid)
	if err != nil {
		return fmt.Errorf("failed to marshal H0 grid: %w", err)
	}
	combinedJSON, err := json.Marshal(rec.Combined)
	if err != nil {
		return fmt.Errorf("failed to marshal combined posterior: %w", err)
	}
	summaryJSON, err := json.Marshal(rec.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		rec.ID.String(),
		rec.CreatedAt,
		string(rec.Variant),
		rec.Requested,
		rec.Simulated,
		rec.Detected,
		gridJSON,
		combinedJSON,
		summaryJSON,
	)
	if err != nil {
		return apperrors.DatabaseError("failed to insert run", err)
	}
	return nil
}

// GetRun fetches a run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.RunID) (*run.Record, error) {
	query := `
		SELECT id, created_at, variant, requested, simulated, detected,
		       h0_grid, combined, summary
		FROM siren_runs
		WHERE id = $1`

	var rec run.Record
	var variant string
	var gridJSON, combinedJSON, summaryJSON []byte
	var idStr string

	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&idStr,
		&rec.CreatedAt,
		&variant,
		&rec.Requested,
		&rec.Simulated,
		&rec.Detected,
		&gridJSON,
		&combinedJSON,
		&summaryJSON,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, apperrors.DatabaseError("failed to fetch run", err)
	}

	rec.ID = core.RunID(idStr)
	rec.Variant = inference.Variant(variant)
	if err := json.Unmarshal(gridJSON, &rec.H0Grid); err != nil {
		return nil, fmt.Errorf("failed to unmarshal H0 grid: %w", err)
	}
	if err := json.Unmarshal(combinedJSON, &rec.Combined); err != nil {
		return nil, fmt.Errorf("failed to unmarshal combined posterior: %w", err)
	}
	if err := json.Unmarshal(summaryJSON, &rec.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &rec, nil
}
