package store_test

import (
	"context"
	"testing"

	"github.com/relata/relata/internal/database"
	"github.com/relata/relata/internal/domain"
	"github.com/relata/relata/internal/funnel"
	"github.com/relata/relata/internal/store"
	"github.com/relata/relata/internal/testhelpers"
)

// Verify interface compliance at compile time.
var (
	_ store.TenantStore      = (*store.SQLiteTenantStore)(nil)
	_ store.CompanyStore     = (*store.SQLiteCompanyStore)(nil)
	_ store.ContactStore     = (*store.SQLiteContactStore)(nil)
	_ store.FunnelStateStore = (*store.SQLiteFunnelStateStore)(nil)
	_ store.ConversionStore  = (*store.SQLiteConversionStore)(nil)
)

// setupStore returns a migrated store with one tenant created.
func setupStore(t *testing.T) (*store.Store, *domain.Tenant) {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s := store.New(db, funnel.Default())

	tenant, err := s.Tenants.Create(ctx, "Acme Workspace", "acme")
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	return s, tenant
}

// mustUpsert creates or updates a contact and fails the test on error.
func mustUpsert(t *testing.T, s *store.Store, tenantID string, patch domain.ContactPatch) *domain.Contact {
	t.Helper()
	c, _, err := s.Contacts.Upsert(context.Background(), tenantID, patch)
	if err != nil {
		t.Fatalf("upsert contact: %v", err)
	}
	return c
}
