package contacts

import (
	"net/http"

	"github.com/relata/relata/internal/engine"
	"github.com/relata/relata/internal/store"
)

// RegisterRoutes registers the contact routes on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store, o *engine.Orchestrator) {
	h := &Handler{contacts: s.Contacts, orchestrator: o}

	mux.HandleFunc("POST /crm/v1/tenants/{tenantId}/contacts", h.Write)
	mux.HandleFunc("GET /crm/v1/tenants/{tenantId}/contacts", h.List)
	mux.HandleFunc("GET /crm/v1/tenants/{tenantId}/contacts/{contactId}", h.Get)
	mux.HandleFunc("DELETE /crm/v1/tenants/{tenantId}/contacts/{contactId}", h.Delete)
}
