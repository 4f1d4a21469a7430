package companies

import (
	"errors"
	"net/http"

	"github.com/relata/relata/internal/api"
	"github.com/relata/relata/internal/store"
)

// Handler handles company HTTP requests. Companies are created as a side
// effect of contact writes; the API only reads them.
type Handler struct {
	companies store.CompanyStore
}

// List returns all companies in the tenant.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenantId")
	corrID := api.CorrelationID(r.Context())

	companies, err := h.companies.List(r.Context(), tenantID)
	if err != nil {
		writeStoreError(w, err, corrID)
		return
	}

	results := make([]any, len(companies))
	for i := range companies {
		results[i] = companies[i]
	}
	api.WriteJSON(w, http.StatusOK, api.CollectionResponse{Results: results})
}

// Get returns a single company.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenantId")
	companyID := r.PathValue("companyId")
	corrID := api.CorrelationID(r.Context())

	c, err := h.companies.Get(r.Context(), tenantID, companyID)
	if err != nil {
		writeStoreError(w, err, corrID)
		return
	}
	api.WriteJSON(w, http.StatusOK, c)
}

func writeStoreError(w http.ResponseWriter, err error, corrID string) {
	switch {
	case errors.Is(err, store.ErrTenantNotFound), errors.Is(err, store.ErrCompanyNotFound):
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(err.Error(), corrID))
	default:
		api.WriteError(w, http.StatusInternalServerError, &api.Error{
			Status: "error", Message: err.Error(), CorrelationID: corrID, Category: api.CategoryInternalError,
		})
	}
}
