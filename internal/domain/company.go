package domain

// Company is an organization a contact works for, scoped to a tenant.
// Within one tenant at most one row exists per case-insensitive trimmed
// name; the store compares on the normalized key, never the display name.
type Company struct {
	ID        string `json:"id"`
	TenantID  string `json:"tenantId"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Website   string `json:"website,omitempty"`
	Revenue   string `json:"revenue,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CompanyInput carries the free-text organization name plus optional
// enrichment fields. Enrichment only backfills columns that are still
// empty on the stored row; existing values are never overwritten.
type CompanyInput struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Industry string `json:"industry,omitempty"`
	Website  string `json:"website,omitempty"`
	Revenue  string `json:"revenue,omitempty"`
}
