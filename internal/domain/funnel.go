package domain

// FunnelState is the one-per-contact record of funnel assignment. The
// store enforces the one-to-one with a primary key on the contact
// reference; deleting the contact deletes its state.
type FunnelState struct {
	ContactID    string `json:"contactId"`
	PipelineType string `json:"pipelineType"`
	Stage        string `json:"stage"`
	UpdatedAt    string `json:"updatedAt"`
}

// FunnelInput is a proposed (pipeline-type, stage) pair. Either half may
// be empty; the engine fills the missing half from the contact's current
// state before evaluating trigger rules.
type FunnelInput struct {
	PipelineType string `json:"pipelineType"`
	Stage        string `json:"stage"`
}

// TransitionResult reports what a funnel write actually did. When a
// trigger rule matched the proposed pair, PipelineType and Stage hold the
// rule's target rather than the caller's input and Triggered is true.
type TransitionResult struct {
	Applied      bool   `json:"applied"`
	PipelineType string `json:"pipelineType"`
	Stage        string `json:"stage"`
	Triggered    bool   `json:"triggered"`
}

// Conversion is one audit-trail entry for a triggered transition.
type Conversion struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenantId"`
	ContactID    string `json:"contactId"`
	FromPipeline string `json:"fromPipeline,omitempty"`
	FromStage    string `json:"fromStage,omitempty"`
	ToPipeline   string `json:"toPipeline"`
	ToStage      string `json:"toStage"`
	OccurredAt   string `json:"occurredAt"`
}
