package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/relata/relata/internal/domain"
	"github.com/relata/relata/internal/store"
)

// WriteInput is the payload of one logical create-or-update contact call.
type WriteInput struct {
	Contact domain.ContactPatch  `json:"contact"`
	Company *domain.CompanyInput `json:"company,omitempty"`
	Funnel  *domain.FunnelInput  `json:"funnel,omitempty"`
}

// WriteResult is the outcome of a successful write.
type WriteResult struct {
	Contact    *domain.Contact          `json:"contact"`
	Created    bool                     `json:"created"`
	Transition *domain.TransitionResult `json:"transition,omitempty"`
}

// Orchestrator sequences the compound contact write: validate tenant,
// resolve company, upsert contact, evaluate the funnel transition. Each
// stage is terminal-on-failure and runs under its own timeout against the
// store. Calling it twice with identical input leaves the system in the
// same state as calling it once.
type Orchestrator struct {
	store        *store.Store
	engine       *Engine
	stageTimeout time.Duration
}

// NewOrchestrator creates an Orchestrator. stageTimeout bounds each stage;
// zero or negative means no bound.
func NewOrchestrator(s *store.Store, e *Engine, stageTimeout time.Duration) *Orchestrator {
	return &Orchestrator{store: s, engine: e, stageTimeout: stageTimeout}
}

// CreateOrUpdateContact runs the full write sequence. A failure in an
// earlier stage stops later stages from running; a crash between stages
// can at worst leave a contact without a funnel assignment, which is a
// valid state, never the reverse.
func (o *Orchestrator) CreateOrUpdateContact(ctx context.Context, tenantID string, in WriteInput) (*WriteResult, error) {
	if err := o.stage(ctx, func(ctx context.Context) error {
		return o.store.Tenants.Exists(ctx, tenantID)
	}); err != nil {
		return nil, err
	}

	patch := in.Contact

	if in.Company != nil && strings.TrimSpace(in.Company.Name) != "" {
		var company *domain.Company
		if err := o.stage(ctx, func(ctx context.Context) error {
			var err error
			company, err = o.store.Companies.Resolve(ctx, tenantID, *in.Company)
			return err
		}); err != nil {
			return nil, fmt.Errorf("resolve company: %w", err)
		}
		patch.CompanyID = domain.String(company.ID)
	}

	result := &WriteResult{}
	if err := o.stage(ctx, func(ctx context.Context) error {
		var err error
		result.Contact, result.Created, err = o.store.Contacts.Upsert(ctx, tenantID, patch)
		return err
	}); err != nil {
		return nil, fmt.Errorf("upsert contact: %w", err)
	}

	if in.Funnel != nil && (in.Funnel.PipelineType != "" || in.Funnel.Stage != "") {
		if err := o.stage(ctx, func(ctx context.Context) error {
			var err error
			result.Transition, err = o.engine.EvaluateTransition(ctx, tenantID, result.Contact.ID, *in.Funnel)
			return err
		}); err != nil {
			return nil, fmt.Errorf("evaluate transition: %w", err)
		}

		// Re-read so the returned contact carries the committed state.
		if err := o.stage(ctx, func(ctx context.Context) error {
			var err error
			result.Contact, err = o.store.Contacts.Get(ctx, tenantID, result.Contact.ID)
			return err
		}); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// stage runs one step of the sequence under the configured timeout. The
// timeout fails the whole call; a stage is never silently skipped.
func (o *Orchestrator) stage(ctx context.Context, fn func(context.Context) error) error {
	if o.stageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.stageTimeout)
		defer cancel()
	}
	return fn(ctx)
}
