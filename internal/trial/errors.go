package trial

import (
	"errors"
	"fmt"
)

// RuntimeErrorCode categorizes errors detected while a trial runs.
type RuntimeErrorCode string

const (
	// ErrCodeChecksumMismatch indicates the row-major and column-major passes
	// of one iteration summed to different values, so at least one order
	// skipped or repeated an element.
	ErrCodeChecksumMismatch RuntimeErrorCode = "CHECKSUM_MISMATCH"
)

// RuntimeError represents a sanity failure detected during a trial.
type RuntimeError struct {
	Code      RuntimeErrorCode
	Message   string
	Iteration int
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s (iteration=%d)", e.Code, e.Message, e.Iteration)
}

// IsChecksumMismatch returns true if err is a checksum mismatch.
// Uses errors.As to handle wrapped errors.
func IsChecksumMismatch(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeChecksumMismatch
	}
	return false
}

// NewChecksumMismatchError creates a RuntimeError for disagreeing passes.
func NewChecksumMismatchError(iteration int, row, col int64) *RuntimeError {
	return &RuntimeError{
		Code:      ErrCodeChecksumMismatch,
		Message:   fmt.Sprintf("row-major checksum %d != column-major checksum %d", row, col),
		Iteration: iteration,
	}
}
