package store

import "errors"

// Sentinel errors returned by the sub-stores. Handlers map these to
// discrete client errors; everything else is a server error.
var (
	// ErrTenantNotFound is returned when the supplied tenant id does not
	// resolve to a known tenant.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrContactNotFound is returned when a referenced contact does not
	// exist within the tenant scope.
	ErrContactNotFound = errors.New("contact not found")

	// ErrCompanyNotFound is returned when a referenced company does not
	// exist within the tenant scope.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrInvalidStage is returned when a proposed stage is not in the
	// allowed stage list for the proposed pipeline type.
	ErrInvalidStage = errors.New("stage not valid for pipeline")
)
