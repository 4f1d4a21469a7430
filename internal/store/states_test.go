package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/relata/relata/internal/domain"
	"github.com/relata/relata/internal/store"
)

func TestSetFunnelStateCreatesAndUpdates(t *testing.T) {
	s, tenant := setupStore(t)
	ctx := context.Background()

	c := mustUpsert(t, s, tenant.ID, domain.ContactPatch{Email: domain.String("jo@example.com")})

	st, err := s.States.Set(ctx, c.ID, "prospect", "interest")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if st.PipelineType != "prospect" || st.Stage != "interest" {
		t.Errorf("state = %s/%s, want prospect/interest", st.PipelineType, st.Stage)
	}

	// Update in place.
	st, err = s.States.Set(ctx, c.ID, "prospect", "meeting")
	if err != nil {
		t.Fatalf("set again: %v", err)
	}
	if st.Stage != "meeting" {
		t.Errorf("stage = %q, want meeting", st.Stage)
	}

	// Exactly one row per contact regardless of how many writes happened.
	var count int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM funnel_states WHERE contact_id = ?`, c.ID).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("funnel state rows = %d, want 1", count)
	}
}

func TestSetFunnelStateUnknownContact(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.States.Set(context.Background(), "12345", "prospect", "interest")
	if !errors.Is(err, store.ErrContactNotFound) {
		t.Errorf("err = %v, want ErrContactNotFound", err)
	}
}

func TestSetFunnelStateInvalidStage(t *testing.T) {
	s, tenant := setupStore(t)
	ctx := context.Background()

	c := mustUpsert(t, s, tenant.ID, domain.ContactPatch{Email: domain.String("jo@example.com")})

	// kickoff belongs to the client pipeline, not prospect.
	_, err := s.States.Set(ctx, c.ID, "prospect", "kickoff")
	if !errors.Is(err, store.ErrInvalidStage) {
		t.Errorf("err = %v, want ErrInvalidStage", err)
	}

	_, err = s.States.Set(ctx, c.ID, "unknown-pipeline", "interest")
	if !errors.Is(err, store.ErrInvalidStage) {
		t.Errorf("err = %v, want ErrInvalidStage", err)
	}

	// Rejected writes leave no state behind.
	st, err := s.States.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if st != nil {
		t.Error("expected no funnel state after rejected writes")
	}
}

func TestGetFunnelStateAbsent(t *testing.T) {
	s, tenant := setupStore(t)

	c := mustUpsert(t, s, tenant.ID, domain.ContactPatch{Email: domain.String("jo@example.com")})

	// A contact without a funnel assignment is valid, not an error.
	st, err := s.States.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if st != nil {
		t.Errorf("state = %+v, want nil", st)
	}
}
