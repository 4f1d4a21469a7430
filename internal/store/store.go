package store

import (
	"database/sql"

	"github.com/relata/relata/internal/funnel"
)

// Store holds all sub-stores used by the application.
type Store struct {
	DB          *sql.DB
	Tenants     TenantStore
	Companies   CompanyStore
	Contacts    ContactStore
	States      FunnelStateStore
	Conversions ConversionStore
}

// New creates a Store with all sub-stores initialized. The funnel catalog
// is injected so stage membership is validated at the point of mutation.
func New(db *sql.DB, catalog *funnel.Catalog) *Store {
	return &Store{
		DB:          db,
		Tenants:     NewSQLiteTenantStore(db),
		Companies:   NewSQLiteCompanyStore(db),
		Contacts:    NewSQLiteContactStore(db),
		States:      NewSQLiteFunnelStateStore(db, catalog),
		Conversions: NewSQLiteConversionStore(db),
	}
}
