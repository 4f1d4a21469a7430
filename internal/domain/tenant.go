package domain

// Tenant is the isolation boundary. Every other entity carries a tenant
// reference and no row is ever read or written without a tenant filter.
// Tenants are created out-of-band via the admin API, never by the engine.
type Tenant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
