package domain

// Contact is a person record scoped to a tenant. Email is the only
// deduplication key: within one tenant at most one contact exists per
// case-insensitive trimmed email. Contacts without an email are never
// deduplicated; each write without one creates a new row.
type Contact struct {
	ID           string       `json:"id"`
	TenantID     string       `json:"tenantId"`
	FirstName    string       `json:"firstName,omitempty"`
	LastName     string       `json:"lastName,omitempty"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	CompanyID    string       `json:"companyId,omitempty"`
	RoleCategory string       `json:"roleCategory,omitempty"`
	Channel      string       `json:"channel,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Funnel       *FunnelState `json:"funnel,omitempty"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
}

// ContactPatch is a partial update for a contact. Every field is
// independently absent, null or valued; only supplied fields touch the
// stored row. Email participates in identity and is normalized (trimmed,
// lower-cased) before any comparison or storage.
type ContactPatch struct {
	FirstName    OptString `json:"firstName"`
	LastName     OptString `json:"lastName"`
	Email        OptString `json:"email"`
	Phone        OptString `json:"phone"`
	CompanyID    OptString `json:"companyId"`
	RoleCategory OptString `json:"roleCategory"`
	Channel      OptString `json:"channel"`
	Notes        OptString `json:"notes"`
}

// ListOpts holds the parameters for listing contacts within a tenant.
type ListOpts struct {
	Limit        int
	After        string
	PipelineType string
	Stage        string
}

// ContactPage is a cursor-paginated list of contacts.
type ContactPage struct {
	Results []*Contact
	After   string
	HasMore bool
}
