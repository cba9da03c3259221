package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain error codes at their
// boundary instead of inspecting driver-specific errors.
var (
	// ErrNotFound: the record or key does not exist in the store.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a unique field (email, phone) is already claimed.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable: the backing store is temporarily unreachable.
	ErrUnavailable = errors.New("unavailable")
)
