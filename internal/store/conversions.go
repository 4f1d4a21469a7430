package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/relata/relata/internal/domain"
)

// ConversionStore persists the audit trail of triggered transitions.
type ConversionStore interface {
	Add(ctx context.Context, conv *domain.Conversion) error
	List(ctx context.Context, tenantID string) ([]*domain.Conversion, error)
}

// SQLiteConversionStore implements ConversionStore backed by SQLite.
type SQLiteConversionStore struct {
	db *sql.DB
}

// NewSQLiteConversionStore creates a new SQLiteConversionStore.
func NewSQLiteConversionStore(db *sql.DB) *SQLiteConversionStore {
	return &SQLiteConversionStore{db: db}
}

// Add appends a conversion record. A missing id or timestamp is filled in.
func (s *SQLiteConversionStore) Add(ctx context.Context, conv *domain.Conversion) error {
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}
	if conv.OccurredAt == "" {
		conv.OccurredAt = now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, tenant_id, contact_id, from_pipeline, from_stage, to_pipeline, to_stage, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		conv.ID, conv.TenantID, conv.ContactID,
		conv.FromPipeline, conv.FromStage, conv.ToPipeline, conv.ToStage,
		conv.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}
	return nil
}

// List returns all conversions for a tenant, newest first.
func (s *SQLiteConversionStore) List(ctx context.Context, tenantID string) ([]*domain.Conversion, error) {
	if err := tenantExists(ctx, s.db, tenantID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, contact_id, from_pipeline, from_stage, to_pipeline, to_stage, occurred_at
		 FROM conversions WHERE tenant_id = ? ORDER BY occurred_at DESC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var conversions []*domain.Conversion
	for rows.Next() {
		var c domain.Conversion
		if err := rows.Scan(&c.ID, &c.TenantID, &c.ContactID, &c.FromPipeline, &c.FromStage, &c.ToPipeline, &c.ToStage, &c.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		conversions = append(conversions, &c)
	}
	return conversions, rows.Err()
}
