package admin

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/relata/relata/internal/api"
	"github.com/relata/relata/internal/funnel"
	"github.com/relata/relata/internal/seed"
	"github.com/relata/relata/internal/store"
)

// Handler serves the admin API at /_relata/. Tenants are provisioned here,
// out of band of the contact pipeline.
type Handler struct {
	db      *sql.DB
	tenants store.TenantStore
	catalog *funnel.Catalog
}

// dataTableNames lists all data tables in foreign-key-safe deletion order.
var dataTableNames = []string{
	"conversions",
	"funnel_states",
	"contacts",
	"companies",
	"tenants",
}

type createTenantRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateTenant provisions a workspace. A duplicate slug returns the
// existing tenant rather than an error.
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input", corrID, nil))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Name == "" || req.Slug == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"name and slug are required", corrID, nil))
		return
	}

	tenant, err := h.tenants.Create(r.Context(), req.Name, req.Slug)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, &api.Error{
			Status: "error", Message: err.Error(), CorrelationID: corrID, Category: api.CategoryInternalError,
		})
		return
	}
	api.WriteJSON(w, http.StatusCreated, tenant)
}

// ListTenants returns all workspaces.
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	tenants, err := h.tenants.List(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, &api.Error{
			Status: "error", Message: err.Error(), CorrelationID: corrID, Category: api.CategoryInternalError,
		})
		return
	}

	results := make([]any, len(tenants))
	for i := range tenants {
		results[i] = tenants[i]
	}
	api.WriteJSON(w, http.StatusOK, api.CollectionResponse{Results: results})
}

// Reset drops all data from all tables and re-runs the seed.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	corrID := api.CorrelationID(ctx)

	for _, table := range dataTableNames {
		if _, err := h.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			api.WriteError(w, http.StatusInternalServerError, &api.Error{
				Status:        "error",
				Message:       fmt.Sprintf("failed to clear table %s: %s", table, err),
				CorrelationID: corrID,
				Category:      api.CategoryInternalError,
			})
			return
		}
	}

	if err := seed.Seed(ctx, h.db, h.catalog); err != nil {
		api.WriteError(w, http.StatusInternalServerError, &api.Error{
			Status:        "error",
			Message:       fmt.Sprintf("failed to re-seed: %s", err),
			CorrelationID: corrID,
			Category:      api.CategoryInternalError,
		})
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
