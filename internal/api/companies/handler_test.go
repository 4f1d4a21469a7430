package companies_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/relata/relata/internal/api"
	"github.com/relata/relata/internal/api/companies"
	"github.com/relata/relata/internal/database"
	"github.com/relata/relata/internal/domain"
	"github.com/relata/relata/internal/funnel"
	"github.com/relata/relata/internal/store"
	"github.com/relata/relata/internal/testhelpers"
)

func setupTestServer(t *testing.T) (*http.ServeMux, *store.Store, *domain.Tenant) {
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

	mux := http.NewServeMux()
	companies.RegisterRoutes(mux, s)
	return mux, s, tenant
}

func TestListCompanies(t *testing.T) {
	mux, s, tenant := setupTestServer(t)
	ctx := context.Background()

	for _, name := range []string{"Acme Corp", "Globex"} {
		if _, err := s.Companies.Resolve(ctx, tenant.ID, domain.CompanyInput{Name: name}); err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
	}

	req := httptest.NewRequest("GET", "/crm/v1/tenants/"+tenant.ID+"/companies", http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp api.CollectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("results = %d, want 2", len(resp.Results))
	}
}

func TestGetCompany(t *testing.T) {
	mux, s, tenant := setupTestServer(t)

	created, err := s.Companies.Resolve(context.Background(), tenant.ID,
		domain.CompanyInput{Name: "Acme Corp", Industry: "Manufacturing"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	req := httptest.NewRequest("GET",
		"/crm/v1/tenants/"+tenant.ID+"/companies/"+created.ID, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got domain.Company
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Acme Corp" || got.Industry != "Manufacturing" {
		t.Errorf("company = %+v, want Acme Corp / Manufacturing", got)
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	mux, _, tenant := setupTestServer(t)

	req := httptest.NewRequest("GET",
		"/crm/v1/tenants/"+tenant.ID+"/companies/99999", http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
