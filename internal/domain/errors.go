package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a mutation targets an id that is absent from
// the owner's collection. Both backends share this contract.
var ErrNotFound = errors.New("record not found")

// ErrBackendUnavailable is returned when no backend is configured or
// reachable. Reads degrade to an empty result set; writes are declined.
var ErrBackendUnavailable = errors.New("backend unavailable")

// ValidationError reports a field that failed the save pipeline. It is
// always surfaced to the user at the field level; invalid saves are never
// silently dropped.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ReorderError wraps a batch-reorder persistence failure. By the time the
// caller sees it the in-memory order has been rolled back to the pre-move
// snapshot.
type ReorderError struct {
	Err error
}

func (e *ReorderError) Error() string {
	return fmt.Sprintf("reorder not persisted, order restored: %v", e.Err)
}

func (e *ReorderError) Unwrap() error { return e.Err }
