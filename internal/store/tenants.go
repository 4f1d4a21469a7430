package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/relata/relata/internal/domain"
)

// TenantStore defines operations for the tenant registry. The engine only
// reads it to validate scoping; tenants are created by the admin API.
type TenantStore interface {
	Create(ctx context.Context, name, slug string) (*domain.Tenant, error)
	Get(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	List(ctx context.Context) ([]*domain.Tenant, error)
	Exists(ctx context.Context, id string) error
}

// SQLiteTenantStore implements TenantStore backed by SQLite.
type SQLiteTenantStore struct {
	db *sql.DB
}

// NewSQLiteTenantStore creates a new SQLiteTenantStore.
func NewSQLiteTenantStore(db *sql.DB) *SQLiteTenantStore {
	return &SQLiteTenantStore{db: db}
}

// Create inserts a new tenant with a generated id.
func (s *SQLiteTenantStore) Create(ctx context.Context, name, slug string) (*domain.Tenant, error) {
	ts := now()
	t := &domain.Tenant{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tenants (id, name, slug, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Slug, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Slug taken — return the existing tenant.
			return s.GetBySlug(ctx, slug)
		}
		return nil, fmt.Errorf("insert tenant: %w", err)
	}

	return t, nil
}

// Get returns a tenant by id.
func (s *SQLiteTenantStore) Get(ctx context.Context, id string) (*domain.Tenant, error) {
	return s.get(ctx, `SELECT id, name, slug, created_at, updated_at FROM tenants WHERE id = ?`, id)
}

// GetBySlug returns a tenant by slug.
func (s *SQLiteTenantStore) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return s.get(ctx, `SELECT id, name, slug, created_at, updated_at FROM tenants WHERE slug = ?`, slug)
}

func (s *SQLiteTenantStore) get(ctx context.Context, query, arg string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tenant %s: %w", arg, ErrTenantNotFound)
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// List returns all tenants.
func (s *SQLiteTenantStore) List(ctx context.Context) ([]*domain.Tenant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM tenants ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tenants []*domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, &t)
	}
	return tenants, rows.Err()
}

// Exists validates that the tenant id resolves to a known tenant.
func (s *SQLiteTenantStore) Exists(ctx context.Context, id string) error {
	return tenantExists(ctx, s.db, id)
}
