package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all store implementations. Entity-specific
// variants wrap the generic ones so callers can match at either level.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a second copy
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. The wrapped error carries the validation detail.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCardNotFound indicates the requested card does not exist.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// ErrSchedulingStateNotFound indicates no scheduling state exists for
	// the user/card pairing.
	ErrSchedulingStateNotFound = fmt.Errorf("%w: scheduling state", ErrNotFound)

	// ErrStudySessionNotFound indicates the requested study session summary
	// does not exist.
	ErrStudySessionNotFound = fmt.Errorf("%w: study session", ErrNotFound)

	// ErrSchedulingStateExists indicates a scheduling state already exists
	// for the user/card pairing. There is exactly one state per pairing.
	ErrSchedulingStateExists = fmt.Errorf("%w: scheduling state", ErrDuplicate)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
