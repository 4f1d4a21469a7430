package funnels

import (
	"errors"
	"net/http"

	"github.com/relata/relata/internal/api"
	"github.com/relata/relata/internal/funnel"
	"github.com/relata/relata/internal/store"
)

// Handler serves the funnel catalog and the conversion audit trail.
type Handler struct {
	catalog     *funnel.Catalog
	conversions store.ConversionStore
	tenants     store.TenantStore
}

// Catalog returns the configured pipelines and trigger rules.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.catalog)
}

// Conversions returns the tenant's conversion history, newest first.
// Entries outlive their contacts, so deleted contacts still appear here.
func (h *Handler) Conversions(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenantId")
	corrID := api.CorrelationID(r.Context())

	if err := h.tenants.Exists(r.Context(), tenantID); err != nil {
		if errors.Is(err, store.ErrTenantNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(err.Error(), corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, &api.Error{
			Status: "error", Message: err.Error(), CorrelationID: corrID, Category: api.CategoryInternalError,
		})
		return
	}

	convs, err := h.conversions.List(r.Context(), tenantID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, &api.Error{
			Status: "error", Message: err.Error(), CorrelationID: corrID, Category: api.CategoryInternalError,
		})
		return
	}

	results := make([]any, len(convs))
	for i := range convs {
		results[i] = convs[i]
	}
	api.WriteJSON(w, http.StatusOK, api.CollectionResponse{Results: results})
}
