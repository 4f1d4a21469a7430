package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/relata/relata/internal/domain"
)

// CompanyStore defines find-or-create persistence for companies.
type CompanyStore interface {
	Resolve(ctx context.Context, tenantID string, in domain.CompanyInput) (*domain.Company, error)
	Get(ctx context.Context, tenantID, id string) (*domain.Company, error)
	List(ctx context.Context, tenantID string) ([]*domain.Company, error)
}

// SQLiteCompanyStore implements CompanyStore backed by SQLite.
type SQLiteCompanyStore struct {
	db *sql.DB
}

// NewSQLiteCompanyStore creates a new SQLiteCompanyStore.
func NewSQLiteCompanyStore(db *sql.DB) *SQLiteCompanyStore {
	return &SQLiteCompanyStore{db: db}
}

// Resolve finds or creates the company for a free-text organization name.
// The name is trimmed and compared case-insensitively. When the company
// already exists, any enrichment fields present in the input backfill
// columns that are still empty; stored values are never overwritten. When
// a concurrent insert wins the race for the same name, the lookup is
// retried once and the enrichment merged into the winner's row.
func (s *SQLiteCompanyStore) Resolve(ctx context.Context, tenantID string, in domain.CompanyInput) (*domain.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("resolve company: name is empty")
	}
	if err := tenantExists(ctx, s.db, tenantID); err != nil {
		return nil, err
	}

	key := NormalizeName(name)

	existing, err := s.getByNameKey(ctx, tenantID, key)
	if err == nil {
		return s.enrich(ctx, existing, in)
	}
	if !errors.Is(err, ErrCompanyNotFound) {
		return nil, err
	}

	ts := now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (tenant_id, name, name_key, address, industry, website, revenue, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tenantID, name, key, in.Address, in.Industry, in.Website, in.Revenue, ts, ts,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a concurrent create for the same name; merge into the
			// winner's row instead of surfacing the conflict.
			winner, lookupErr := s.getByNameKey(ctx, tenantID, key)
			if lookupErr != nil {
				return nil, fmt.Errorf("insert company: %w", err)
			}
			return s.enrich(ctx, winner, in)
		}
		return nil, fmt.Errorf("insert company: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &domain.Company{
		ID:        fmt.Sprint(id),
		TenantID:  tenantID,
		Name:      name,
		Address:   in.Address,
		Industry:  in.Industry,
		Website:   in.Website,
		Revenue:   in.Revenue,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// Get returns a company by id within the tenant scope.
func (s *SQLiteCompanyStore) Get(ctx context.Context, tenantID, id string) (*domain.Company, error) {
	if err := tenantExists(ctx, s.db, tenantID); err != nil {
		return nil, err
	}

	var c domain.Company
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, address, industry, website, revenue, created_at, updated_at
		 FROM companies WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	).Scan(&c.ID, &c.TenantID, &c.Name, &c.Address, &c.Industry, &c.Website, &c.Revenue, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company %s: %w", id, ErrCompanyNotFound)
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// List returns all companies for a tenant.
func (s *SQLiteCompanyStore) List(ctx context.Context, tenantID string) ([]*domain.Company, error) {
	if err := tenantExists(ctx, s.db, tenantID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, address, industry, website, revenue, created_at, updated_at
		 FROM companies WHERE tenant_id = ? ORDER BY name_key`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var companies []*domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Address, &c.Industry, &c.Website, &c.Revenue, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

func (s *SQLiteCompanyStore) getByNameKey(ctx context.Context, tenantID, key string) (*domain.Company, error) {
	var c domain.Company
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, address, industry, website, revenue, created_at, updated_at
		 FROM companies WHERE tenant_id = ? AND name_key = ?`,
		tenantID, key,
	).Scan(&c.ID, &c.TenantID, &c.Name, &c.Address, &c.Industry, &c.Website, &c.Revenue, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company %q: %w", key, ErrCompanyNotFound)
		}
		return nil, fmt.Errorf("get company by name: %w", err)
	}
	return &c, nil
}

// enrich backfills empty columns from the input without touching stored
// values.
func (s *SQLiteCompanyStore) enrich(ctx context.Context, c *domain.Company, in domain.CompanyInput) (*domain.Company, error) {
	sets := []string{}
	args := []any{}

	backfill := func(column, stored, incoming string, target *string) {
		if stored == "" && incoming != "" {
			sets = append(sets, column+" = ?")
			args = append(args, incoming)
			*target = incoming
		}
	}
	backfill("address", c.Address, in.Address, &c.Address)
	backfill("industry", c.Industry, in.Industry, &c.Industry)
	backfill("website", c.Website, in.Website, &c.Website)
	backfill("revenue", c.Revenue, in.Revenue, &c.Revenue)

	if len(sets) == 0 {
		return c, nil
	}

	ts := now()
	sets = append(sets, "updated_at = ?")
	args = append(args, ts, c.ID)

	query := "UPDATE companies SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("enrich company: %w", err)
	}
	c.UpdatedAt = ts
	return c, nil
}
