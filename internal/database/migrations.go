package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: all core tables
	{
		`CREATE TABLE tenants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT UNIQUE NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE companies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tenant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			name_key TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			industry TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			revenue TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (tenant_id, name_key),
			FOREIGN KEY (tenant_id) REFERENCES tenants(id)
		)`,
		`CREATE INDEX idx_companies_tenant ON companies(tenant_id)`,

		// email_key is NULL when the contact has no email. SQLite treats
		// NULLs as distinct in unique indexes, so email-less contacts
		// never collide.
		`CREATE TABLE contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tenant_id TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			email_key TEXT,
			phone TEXT NOT NULL DEFAULT '',
			company_id INTEGER,
			role_category TEXT NOT NULL DEFAULT '',
			channel TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (tenant_id, email_key),
			FOREIGN KEY (tenant_id) REFERENCES tenants(id),
			FOREIGN KEY (company_id) REFERENCES companies(id)
		)`,
		`CREATE INDEX idx_contacts_tenant ON contacts(tenant_id)`,
		`CREATE INDEX idx_contacts_company ON contacts(company_id)`,

		`CREATE TABLE funnel_states (
			contact_id INTEGER PRIMARY KEY,
			pipeline_type TEXT NOT NULL,
			stage TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX idx_funnel_states_pipeline ON funnel_states(pipeline_type, stage)`,

		// Audit trail of triggered conversions. Rows outlive the contact
		// they describe, so no foreign key on contact_id.
		`CREATE TABLE conversions (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			contact_id TEXT NOT NULL,
			from_pipeline TEXT NOT NULL DEFAULT '',
			from_stage TEXT NOT NULL DEFAULT '',
			to_pipeline TEXT NOT NULL,
			to_stage TEXT NOT NULL,
			occurred_at TEXT NOT NULL,
			FOREIGN KEY (tenant_id) REFERENCES tenants(id)
		)`,
		`CREATE INDEX idx_conversions_tenant ON conversions(tenant_id, occurred_at)`,
	},
}
