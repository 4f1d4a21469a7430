package contacts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/relata/relata/internal/api"
	"github.com/relata/relata/internal/domain"
	"github.com/relata/relata/internal/engine"
	"github.com/relata/relata/internal/store"
)

const defaultLimit = 20

// Handler handles contact HTTP requests. Writes go through the
// orchestrator so company resolution and funnel evaluation happen in
// order; reads go straight to the store.
type Handler struct {
	contacts     store.ContactStore
	orchestrator *engine.Orchestrator
}

// writeResponse is the create-or-update response body.
type writeResponse struct {
	Contact    *domain.Contact          `json:"contact"`
	Created    bool                     `json:"created"`
	Transition *domain.TransitionResult `json:"transition,omitempty"`
}

// Write handles POST, routing contact fields, optional company and
// optional funnel input through the orchestrator.
func (h *Handler) Write(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenantId")
	corrID := api.CorrelationID(r.Context())

	var in engine.WriteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID, nil))
		return
	}

	res, err := h.orchestrator.CreateOrUpdateContact(r.Context(), tenantID, in)
	if err != nil {
		writeStoreError(w, err, corrID)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	api.WriteJSON(w, status, writeResponse{
		Contact:    res.Contact,
		Created:    res.Created,
		Transition: res.Transition,
	})
}

// List returns a page of the tenant's contacts, optionally filtered by
// funnel position.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenantId")
	corrID := api.CorrelationID(r.Context())

	opts := domain.ListOpts{
		Limit:        defaultLimit,
		After:        r.URL.Query().Get("after"),
		PipelineType: r.URL.Query().Get("pipelineType"),
		Stage:        r.URL.Query().Get("stage"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
				"limit must be an integer between 1 and 100", corrID, nil))
			return
		}
		opts.Limit = n
	}

	page, err := h.contacts.List(r.Context(), tenantID, opts)
	if err != nil {
		writeStoreError(w, err, corrID)
		return
	}

	results := make([]any, len(page.Results))
	for i := range page.Results {
		results[i] = page.Results[i]
	}
	resp := api.CollectionResponse{Results: results}
	if page.HasMore {
		resp.Paging = &api.Paging{Next: &api.PagingNext{After: page.After}}
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

// Get returns a single contact with its funnel state.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenantId")
	contactID := r.PathValue("contactId")
	corrID := api.CorrelationID(r.Context())

	c, err := h.contacts.Get(r.Context(), tenantID, contactID)
	if err != nil {
		writeStoreError(w, err, corrID)
		return
	}
	api.WriteJSON(w, http.StatusOK, c)
}

// Delete removes a contact and its funnel state. Conversion history is
// retained.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenantId")
	contactID := r.PathValue("contactId")
	corrID := api.CorrelationID(r.Context())

	if err := h.contacts.Delete(r.Context(), tenantID, contactID); err != nil {
		writeStoreError(w, err, corrID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeStoreError maps store and engine errors onto the envelope.
func writeStoreError(w http.ResponseWriter, err error, corrID string) {
	switch {
	case errors.Is(err, store.ErrTenantNotFound),
		errors.Is(err, store.ErrContactNotFound),
		errors.Is(err, store.ErrCompanyNotFound):
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(err.Error(), corrID))
	case errors.Is(err, store.ErrInvalidStage):
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(err.Error(), corrID, nil))
	default:
		api.WriteError(w, http.StatusInternalServerError, &api.Error{
			Status: "error", Message: err.Error(), CorrelationID: corrID, Category: api.CategoryInternalError,
		})
	}
}
