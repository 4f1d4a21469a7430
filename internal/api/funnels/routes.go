package funnels

import (
	"net/http"

	"github.com/relata/relata/internal/funnel"
	"github.com/relata/relata/internal/store"
)

// RegisterRoutes registers the funnel catalog and conversion routes.
func RegisterRoutes(mux *http.ServeMux, s *store.Store, catalog *funnel.Catalog) {
	h := &Handler{catalog: catalog, conversions: s.Conversions, tenants: s.Tenants}

	mux.HandleFunc("GET /crm/v1/funnels", h.Catalog)
	mux.HandleFunc("GET /crm/v1/tenants/{tenantId}/conversions", h.Conversions)
}
