package risk

import "errors"

var (
	// ErrInvalidDescriptor indicates the submitted system descriptor failed
	// validation. Surfaced before any scoring runs, never partially scored.
	ErrInvalidDescriptor = errors.New("invalid system descriptor")

	// ErrNotFound indicates a requested risk type has no entry in the
	// mapping table. Recoverable: the caller decides whether to skip it or
	// surface a partial-result warning.
	ErrNotFound = errors.New("risk type not found")

	// ErrProviderUnavailable indicates the economic stress provider failed
	// or timed out. Non-fatal: scoring degrades to the default multiplier.
	ErrProviderUnavailable = errors.New("stress provider unavailable")

	// ErrInvariantViolation indicates an internally computed value violated
	// a structural guarantee, which points at corrupt static table data
	// rather than bad user input. Fatal: never silently corrected.
	ErrInvariantViolation = errors.New("invariant violation")
)
