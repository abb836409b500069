package grid

import (
	"errors"
	"fmt"
)

// PreconditionError reports a composition bug: a caller handed the builder
// dimensions or a window that argument validation should have rejected.
//
// Builders panic with a *PreconditionError instead of returning it. The
// condition is never recovered from.
type PreconditionError struct {
	// Op is the builder function that detected the violation.
	Op string

	// Message describes the violated condition.
	Message string
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("grid.%s: %s", e.Op, e.Message)
}

// IsPreconditionError returns true if err is a *PreconditionError.
// Uses errors.As to handle wrapped errors.
func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

func preconditionf(op, format string, args ...any) *PreconditionError {
	return &PreconditionError{Op: op, Message: fmt.Sprintf(format, args...)}
}
