package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateBooking and ErrCapacityExceeded are returned by the storage
	// layer when the atomic booking commit re-validates the per-event email
	// uniqueness and the capacity limit under lock and one of them no longer
	// holds.
	ErrDuplicateBooking = errors.New("duplicate booking")
	ErrCapacityExceeded = errors.New("event capacity exceeded")
	ErrDuplicateEmail   = errors.New("email already in use")
)

// InfrastructureError wraps an unexpected failure from the persistence layer
// or another downstream system. It is distinct from a business-rule rejection:
// callers map it to a generic server error and must not surface the cause.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError wraps err with the failing operation name.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}
