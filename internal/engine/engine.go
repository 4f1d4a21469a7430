// Package engine implements the conversion trigger engine and the contact
// write orchestrator. Every funnel-state mutation for a tracked contact
// flows through the engine so funnel promotion stays deterministic and
// centrally defined: a contact proposed as prospect/contract-signed never
// stays a prospect, because that pairing unconditionally means the person
// is now a client.
package engine

import (
	"context"
	"log/slog"

	"github.com/relata/relata/internal/audit"
	"github.com/relata/relata/internal/domain"
	"github.com/relata/relata/internal/funnel"
	"github.com/relata/relata/internal/store"
)

// Engine evaluates proposed funnel transitions against the trigger rule
// table before committing them.
type Engine struct {
	states      store.FunnelStateStore
	conversions store.ConversionStore
	catalog     *funnel.Catalog
	notifier    audit.Notifier
}

// New creates an Engine. notifier may be nil when no downstream listeners
// are configured.
func New(s *store.Store, catalog *funnel.Catalog, notifier audit.Notifier) *Engine {
	return &Engine{
		states:      s.States,
		conversions: s.Conversions,
		catalog:     catalog,
		notifier:    notifier,
	}
}

// EvaluateTransition applies a proposed (pipeline-type, stage) pair to a
// contact. A missing half of the pair defaults from the contact's current
// state, so a stage-only write still carries its pipeline context into
// rule lookup. When the merged pair matches a trigger rule the rule's
// target pair is written instead of the proposal and the conversion is
// recorded; otherwise the proposal is written unchanged.
func (e *Engine) EvaluateTransition(ctx context.Context, tenantID, contactID string, proposed domain.FunnelInput) (*domain.TransitionResult, error) {
	current, err := e.states.Get(ctx, contactID)
	if err != nil {
		return nil, err
	}

	pipelineType := proposed.PipelineType
	stage := proposed.Stage
	if current != nil {
		if pipelineType == "" {
			pipelineType = current.PipelineType
		}
		if stage == "" {
			stage = current.Stage
		}
	}

	triggered := false
	if to, ok := e.catalog.Trigger(pipelineType, stage); ok {
		pipelineType = to.Pipeline
		stage = to.Stage
		triggered = true
	}

	st, err := e.states.Set(ctx, contactID, pipelineType, stage)
	if err != nil {
		return nil, err
	}

	if triggered {
		conv := &domain.Conversion{
			TenantID:   tenantID,
			ContactID:  contactID,
			ToPipeline: st.PipelineType,
			ToStage:    st.Stage,
		}
		if current != nil {
			conv.FromPipeline = current.PipelineType
			conv.FromStage = current.Stage
		}
		if err := e.conversions.Add(ctx, conv); err != nil {
			return nil, err
		}
		if e.notifier != nil {
			// The transition is already committed and audited; listener
			// failures must not undo it.
			if err := e.notifier.Notify(ctx, conv); err != nil {
				slog.Warn("conversion notify failed", "contact", contactID, "error", err)
			}
		}
	}

	return &domain.TransitionResult{
		Applied:      true,
		PipelineType: st.PipelineType,
		Stage:        st.Stage,
		Triggered:    triggered,
	}, nil
}
