package state

import (
	"errors"
	"fmt"
)

// Set of error variables for rejected ledger operations. A rejected
// operation leaves the ledger untouched.
var (
	ErrAlreadyRegistered = errors.New("user already registered")
	ErrNotRegistered     = errors.New("user not registered")
	ErrAlreadyCompleted  = errors.New("already completed")
	ErrNotOwner          = errors.New("only owner can call this function")
	ErrPointsOverflow    = errors.New("points overflow")
	ErrInvalidCaller     = errors.New("invalid caller address")
)

// Wrapped forms of ErrAlreadyCompleted naming what was already completed.
var (
	errLessonCompleted = fmt.Errorf("lesson %w", ErrAlreadyCompleted)
	errStepCompleted   = fmt.Errorf("step %w", ErrAlreadyCompleted)
)

// IsRejected reports whether the error is one of the ledger's precondition
// failures rather than an infrastructure problem.
func IsRejected(err error) bool {
	switch {
	case errors.Is(err, ErrAlreadyRegistered),
		errors.Is(err, ErrNotRegistered),
		errors.Is(err, ErrAlreadyCompleted),
		errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrPointsOverflow),
		errors.Is(err, ErrInvalidCaller):
		return true
	}

	return false
}
