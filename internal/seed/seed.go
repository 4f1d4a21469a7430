// Package seed inserts the demo tenant used for local development and
// conformance runs.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/relata/relata/internal/funnel"
	"github.com/relata/relata/internal/store"
)

// DemoSlug identifies the tenant created by Seed.
const DemoSlug = "demo"

// Seed creates the demo tenant. It is idempotent; an existing tenant with
// the demo slug is left untouched.
func Seed(ctx context.Context, db *sql.DB, catalog *funnel.Catalog) error {
	s := store.New(db, catalog)
	if _, err := s.Tenants.Create(ctx, "Demo Workspace", DemoSlug); err != nil {
		return fmt.Errorf("seed demo tenant: %w", err)
	}
	return nil
}
