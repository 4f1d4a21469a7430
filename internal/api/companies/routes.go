package companies

import (
	"net/http"

	"github.com/relata/relata/internal/store"
)

// RegisterRoutes registers the company routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{companies: s.Companies}

	mux.HandleFunc("GET /crm/v1/tenants/{tenantId}/companies", h.List)
	mux.HandleFunc("GET /crm/v1/tenants/{tenantId}/companies/{companyId}", h.Get)
}
