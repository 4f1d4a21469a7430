package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/relata/relata/internal/store"
)

func TestTenantCreateAndGet(t *testing.T) {
	s, tenant := setupStore(t)
	ctx := context.Background()

	if tenant.ID == "" {
		t.Fatal("expected non-empty tenant ID")
	}

	got, err := s.Tenants.Get(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Slug != "acme" {
		t.Errorf("slug = %q, want acme", got.Slug)
	}

	bySlug, err := s.Tenants.GetBySlug(ctx, "acme")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != tenant.ID {
		t.Errorf("GetBySlug returned %s, want %s", bySlug.ID, tenant.ID)
	}
}

func TestTenantGetUnknown(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Tenants.Get(context.Background(), "nope")
	if !errors.Is(err, store.ErrTenantNotFound) {
		t.Errorf("err = %v, want ErrTenantNotFound", err)
	}

	if err := s.Tenants.Exists(context.Background(), "nope"); !errors.Is(err, store.ErrTenantNotFound) {
		t.Errorf("Exists err = %v, want ErrTenantNotFound", err)
	}
}

func TestTenantCreateDuplicateSlug(t *testing.T) {
	s, tenant := setupStore(t)

	// Creating the same slug again returns the existing tenant rather
	// than erroring.
	again, err := s.Tenants.Create(context.Background(), "Other Name", "acme")
	if err != nil {
		t.Fatalf("create duplicate slug: %v", err)
	}
	if again.ID != tenant.ID {
		t.Errorf("duplicate slug returned %s, want existing %s", again.ID, tenant.ID)
	}
}

func TestTenantList(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	if _, err := s.Tenants.Create(ctx, "Second", "second"); err != nil {
		t.Fatalf("create: %v", err)
	}

	tenants, err := s.Tenants.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tenants) != 2 {
		t.Errorf("len = %d, want 2", len(tenants))
	}
}
