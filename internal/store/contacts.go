package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/relata/relata/internal/domain"
)

// ContactStore defines persistence for contacts. Upsert is the single
// write path: create-if-absent, merge-if-present, keyed on the tenant plus
// the normalized email.
type ContactStore interface {
	Upsert(ctx context.Context, tenantID string, patch domain.ContactPatch) (*domain.Contact, bool, error)
	Get(ctx context.Context, tenantID, id string) (*domain.Contact, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*domain.Contact, error)
	List(ctx context.Context, tenantID string, opts domain.ListOpts) (*domain.ContactPage, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// SQLiteContactStore implements ContactStore backed by SQLite.
type SQLiteContactStore struct {
	db *sql.DB
}

// NewSQLiteContactStore creates a new SQLiteContactStore.
func NewSQLiteContactStore(db *sql.DB) *SQLiteContactStore {
	return &SQLiteContactStore{db: db}
}

const contactColumns = `c.id, c.tenant_id, c.first_name, c.last_name, c.email, c.phone,
	c.company_id, c.role_category, c.channel, c.notes, c.created_at, c.updated_at,
	fs.pipeline_type, fs.stage, fs.updated_at`

// Upsert creates or updates a contact. When the patch carries an email,
// the tenant is searched for an existing contact under the normalized
// email and the patch is merged into it: supplied fields overwrite,
// omitted fields keep their stored values. Without an email every write
// creates a new row — there is no reliable identity key to deduplicate on.
// The returned bool is true when a new row was created.
func (s *SQLiteContactStore) Upsert(ctx context.Context, tenantID string, patch domain.ContactPatch) (*domain.Contact, bool, error) {
	if err := tenantExists(ctx, s.db, tenantID); err != nil {
		return nil, false, err
	}

	emailKey := ""
	if patch.Email.Set && !patch.Email.Null {
		emailKey = NormalizeEmail(patch.Email.Value)
	}

	if emailKey != "" {
		existing, err := s.getByEmailKey(ctx, tenantID, emailKey)
		if err == nil {
			updated, mergeErr := s.merge(ctx, existing, patch)
			return updated, false, mergeErr
		}
		if !errors.Is(err, ErrContactNotFound) {
			return nil, false, err
		}
	}

	created, err := s.insert(ctx, tenantID, patch, emailKey)
	if err != nil {
		if isUniqueViolation(err) && emailKey != "" {
			// Lost a concurrent insert for the same email; the winner's
			// row exists now, so merge into it instead of failing.
			winner, lookupErr := s.getByEmailKey(ctx, tenantID, emailKey)
			if lookupErr != nil {
				return nil, false, fmt.Errorf("insert contact: %w", err)
			}
			updated, mergeErr := s.merge(ctx, winner, patch)
			return updated, false, mergeErr
		}
		return nil, false, err
	}
	return created, true, nil
}

func (s *SQLiteContactStore) insert(ctx context.Context, tenantID string, patch domain.ContactPatch, emailKey string) (*domain.Contact, error) {
	ts := now()

	var keyArg any
	if emailKey != "" {
		keyArg = emailKey
	}
	var companyArg any
	if v := patch.CompanyID.Or(""); v != "" {
		companyArg = v
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (tenant_id, first_name, last_name, email, email_key, phone, company_id, role_category, channel, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tenantID,
		patch.FirstName.Or(""),
		patch.LastName.Or(""),
		emailKey,
		keyArg,
		patch.Phone.Or(""),
		companyArg,
		patch.RoleCategory.Or(""),
		patch.Channel.Or(""),
		patch.Notes.Or(""),
		ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.Get(ctx, tenantID, fmt.Sprint(id))
}

// merge applies a partial update to an existing contact row. Only fields
// the patch actually supplies are touched.
func (s *SQLiteContactStore) merge(ctx context.Context, existing *domain.Contact, patch domain.ContactPatch) (*domain.Contact, error) {
	ts := now()

	email := existing.Email
	if patch.Email.Set {
		email = NormalizeEmail(patch.Email.Or(""))
	}
	var keyArg any
	if email != "" {
		keyArg = email
	}

	companyID := patch.CompanyID.Or(existing.CompanyID)
	var companyArg any
	if companyID != "" {
		companyArg = companyID
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET first_name = ?, last_name = ?, email = ?, email_key = ?, phone = ?,
		 company_id = ?, role_category = ?, channel = ?, notes = ?, updated_at = ?
		 WHERE id = ? AND tenant_id = ?`,
		patch.FirstName.Or(existing.FirstName),
		patch.LastName.Or(existing.LastName),
		email,
		keyArg,
		patch.Phone.Or(existing.Phone),
		companyArg,
		patch.RoleCategory.Or(existing.RoleCategory),
		patch.Channel.Or(existing.Channel),
		patch.Notes.Or(existing.Notes),
		ts,
		existing.ID, existing.TenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}

	return s.Get(ctx, existing.TenantID, existing.ID)
}

// Get returns a single contact with its funnel state, scoped to the tenant.
func (s *SQLiteContactStore) Get(ctx context.Context, tenantID, id string) (*domain.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+`
		 FROM contacts c LEFT JOIN funnel_states fs ON fs.contact_id = c.id
		 WHERE c.id = ? AND c.tenant_id = ?`,
		id, tenantID,
	)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %s: %w", id, ErrContactNotFound)
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// GetByEmail returns the contact holding the given email within the
// tenant, comparing under normalization.
func (s *SQLiteContactStore) GetByEmail(ctx context.Context, tenantID, email string) (*domain.Contact, error) {
	if err := tenantExists(ctx, s.db, tenantID); err != nil {
		return nil, err
	}
	return s.getByEmailKey(ctx, tenantID, NormalizeEmail(email))
}

func (s *SQLiteContactStore) getByEmailKey(ctx context.Context, tenantID, key string) (*domain.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+`
		 FROM contacts c LEFT JOIN funnel_states fs ON fs.contact_id = c.id
		 WHERE c.tenant_id = ? AND c.email_key = ?`,
		tenantID, key,
	)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %q: %w", key, ErrContactNotFound)
		}
		return nil, fmt.Errorf("get contact by email: %w", err)
	}
	return c, nil
}

// List returns a cursor-paginated page of contacts for a tenant,
// optionally filtered by funnel pipeline type and/or stage.
func (s *SQLiteContactStore) List(ctx context.Context, tenantID string, opts domain.ListOpts) (*domain.ContactPage, error) {
	if err := tenantExists(ctx, s.db, tenantID); err != nil {
		return nil, err
	}

	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}

	query := `SELECT ` + contactColumns + `
		 FROM contacts c LEFT JOIN funnel_states fs ON fs.contact_id = c.id
		 WHERE c.tenant_id = ?`
	args := []any{tenantID}

	if opts.PipelineType != "" {
		query += ` AND fs.pipeline_type = ?`
		args = append(args, opts.PipelineType)
	}
	if opts.Stage != "" {
		query += ` AND fs.stage = ?`
		args = append(args, opts.Stage)
	}
	if opts.After != "" {
		query += ` AND c.id > ?`
		args = append(args, opts.After)
	}

	// Fetch one extra to determine if there is a next page.
	query += ` ORDER BY c.id ASC LIMIT ?`
	args = append(args, opts.Limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	page := &domain.ContactPage{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		page.Results = append(page.Results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	if len(page.Results) > opts.Limit {
		page.HasMore = true
		page.After = page.Results[opts.Limit-1].ID
		page.Results = page.Results[:opts.Limit]
	}

	return page, nil
}

// Delete removes a contact and its funnel state. The conversion audit
// trail is retained.
func (s *SQLiteContactStore) Delete(ctx context.Context, tenantID, id string) error {
	if err := tenantExists(ctx, s.db, tenantID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = ? AND tenant_id = ?`, id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contact %s: %w", id, ErrContactNotFound)
	}

	// The foreign key cascade covers this; keep it explicit so the
	// invariant holds even against a database opened without foreign keys.
	_, _ = s.db.ExecContext(ctx, `DELETE FROM funnel_states WHERE contact_id = ?`, id)

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var c domain.Contact
	var companyID sql.NullString
	var pipelineType, stage, stateUpdated sql.NullString

	err := row.Scan(
		&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&companyID, &c.RoleCategory, &c.Channel, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		&pipelineType, &stage, &stateUpdated,
	)
	if err != nil {
		return nil, err
	}

	if companyID.Valid {
		c.CompanyID = companyID.String
	}
	if pipelineType.Valid {
		c.Funnel = &domain.FunnelState{
			ContactID:    c.ID,
			PipelineType: pipelineType.String,
			Stage:        stage.String,
			UpdatedAt:    stateUpdated.String,
		}
	}
	return &c, nil
}
