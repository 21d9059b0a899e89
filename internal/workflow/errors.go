package workflow

import "errors"

// The error kinds surfaced to callers. Every failure of a workflow
// operation maps to exactly one of these; anything else that leaks out
// is a storage failure and belongs to the caller's retry policy.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState means the operation is not allowed in the
	// entity's current lifecycle state.
	ErrInvalidState = errors.New("invalid state")

	// ErrSoldOut means the event has no seats left.
	ErrSoldOut = errors.New("event is sold out")

	// ErrDuplicateRegistration means the user already holds an active
	// registration for the event.
	ErrDuplicateRegistration = errors.New("already registered for this event")

	// ErrUnauthorized means the actor's role does not permit the
	// operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConcurrencyConflict means the operation repeatedly lost
	// compare-and-swap races. The whole operation can be retried.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)
