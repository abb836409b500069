package bench

import (
	"errors"
	"fmt"
)

// ArgumentError reports a configuration value that is missing or out of
// range. No matrix is built when Validate returns one.
type ArgumentError struct {
	// Field names the offending configuration value ("size", "iterations", ...).
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsArgumentError returns true if err is an *ArgumentError.
// Uses errors.As to handle wrapped errors.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
