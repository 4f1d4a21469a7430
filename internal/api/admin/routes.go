package admin

import (
	"database/sql"
	"net/http"

	"github.com/relata/relata/internal/funnel"
	"github.com/relata/relata/internal/store"
)

// RegisterRoutes registers all admin API endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, db *sql.DB, s *store.Store, catalog *funnel.Catalog) {
	h := &Handler{db: db, tenants: s.Tenants, catalog: catalog}

	mux.HandleFunc("POST /_relata/tenants", h.CreateTenant)
	mux.HandleFunc("GET /_relata/tenants", h.ListTenants)
	mux.HandleFunc("POST /_relata/reset", h.Reset)
}
