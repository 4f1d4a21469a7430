package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// now returns the current UTC time formatted as an ISO-8601 timestamp.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// NormalizeEmail trims and lower-cases an email address. All email
// comparison and storage goes through this; nothing compares raw input.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName produces the case-insensitive comparison key for a company
// name. Organization names arrive as free text from multiple entry points;
// without this, casing and whitespace variants fragment one real company
// into many rows.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. Two concurrent find-or-create calls for the same key can both
// miss the lookup; the loser's insert fails with this and retries the
// lookup to merge into the winner's row.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// tenantExists validates the tenant scope for an operation.
func tenantExists(ctx context.Context, db *sql.DB, tenantID string) error {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM tenants WHERE id = ?`, tenantID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("tenant %s: %w", tenantID, ErrTenantNotFound)
		}
		return fmt.Errorf("check tenant: %w", err)
	}
	return nil
}
