package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/relata/relata/internal/domain"
	"github.com/relata/relata/internal/funnel"
)

// FunnelStateStore defines persistence for the one-per-contact funnel
// assignment. External callers never write it directly for tracked
// contacts; every mutation is routed through the conversion engine first.
type FunnelStateStore interface {
	Get(ctx context.Context, contactID string) (*domain.FunnelState, error)
	Set(ctx context.Context, contactID, pipelineType, stage string) (*domain.FunnelState, error)
}

// SQLiteFunnelStateStore implements FunnelStateStore backed by SQLite.
type SQLiteFunnelStateStore struct {
	db      *sql.DB
	catalog *funnel.Catalog
}

// NewSQLiteFunnelStateStore creates a new SQLiteFunnelStateStore. The
// catalog validates stage membership at the point of mutation.
func NewSQLiteFunnelStateStore(db *sql.DB, catalog *funnel.Catalog) *SQLiteFunnelStateStore {
	return &SQLiteFunnelStateStore{db: db, catalog: catalog}
}

// Get returns the contact's funnel state, or nil when the contact has no
// funnel assignment yet. That is a valid state, not an error.
func (s *SQLiteFunnelStateStore) Get(ctx context.Context, contactID string) (*domain.FunnelState, error) {
	var st domain.FunnelState
	err := s.db.QueryRowContext(ctx,
		`SELECT contact_id, pipeline_type, stage, updated_at FROM funnel_states WHERE contact_id = ?`,
		contactID,
	).Scan(&st.ContactID, &st.PipelineType, &st.Stage, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get funnel state: %w", err)
	}
	return &st, nil
}

// Set upserts the funnel state for a contact: create if absent, update in
// place if present. The primary key on contact_id makes the upsert atomic
// and guarantees exactly one row per contact. The stage must belong to the
// catalog's stage list for the pipeline type.
func (s *SQLiteFunnelStateStore) Set(ctx context.Context, contactID, pipelineType, stage string) (*domain.FunnelState, error) {
	if !s.catalog.ValidStage(pipelineType, stage) {
		return nil, fmt.Errorf("stage %q in pipeline %q: %w", stage, pipelineType, ErrInvalidStage)
	}

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM contacts WHERE id = ?`, contactID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %s: %w", contactID, ErrContactNotFound)
		}
		return nil, fmt.Errorf("check contact: %w", err)
	}

	ts := now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO funnel_states (contact_id, pipeline_type, stage, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(contact_id) DO UPDATE SET pipeline_type = excluded.pipeline_type, stage = excluded.stage, updated_at = excluded.updated_at`,
		contactID, pipelineType, stage, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("set funnel state: %w", err)
	}

	return &domain.FunnelState{
		ContactID:    contactID,
		PipelineType: pipelineType,
		Stage:        stage,
		UpdatedAt:    ts,
	}, nil
}
