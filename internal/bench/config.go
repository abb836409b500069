package bench

import (
	"fmt"

	"github.com/roach88/cachewalk/internal/align"
)

// MaxSize is the largest matrix dimension whose size×size sequential fill
// still fits int32 values.
const MaxSize = 46340

// DefaultAlignRepeats is the number of alignment passes per case when the
// configuration leaves it unset.
const DefaultAlignRepeats = 1

// Config describes one benchmark run.
type Config struct {
	// Size is the dimension of the square matrix.
	Size int

	// Iterations is the number of timed (row, column) pairs.
	Iterations int

	// AlignRepeats is the number of (row, column) pairs per alignment case.
	// Zero selects DefaultAlignRepeats.
	AlignRepeats int

	// LineBytes is the cache-line size used to place the alignment buffers.
	// Zero selects align.DefaultLineBytes().
	LineBytes int

	// PinCPU locks the measuring goroutine to one CPU for the run.
	PinCPU bool
}

// Validate reports the first invalid field as an *ArgumentError.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return &ArgumentError{Field: "size", Message: fmt.Sprintf("must be a positive integer, got %d", c.Size)}
	}
	if c.Size > MaxSize {
		return &ArgumentError{Field: "size", Message: fmt.Sprintf("must be at most %d, got %d", MaxSize, c.Size)}
	}
	if c.Iterations <= 0 {
		return &ArgumentError{Field: "iterations", Message: fmt.Sprintf("must be a positive integer, got %d", c.Iterations)}
	}
	if c.AlignRepeats < 0 {
		return &ArgumentError{Field: "align-repeats", Message: fmt.Sprintf("must not be negative, got %d", c.AlignRepeats)}
	}
	if c.LineBytes != 0 {
		if err := align.ValidateLineBytes(c.LineBytes); err != nil {
			return &ArgumentError{Field: "line-bytes", Message: err.Error()}
		}
	}
	return nil
}

// WithDefaults fills zero-valued optional fields.
func (c Config) WithDefaults() Config {
	if c.AlignRepeats == 0 {
		c.AlignRepeats = DefaultAlignRepeats
	}
	if c.LineBytes == 0 {
		c.LineBytes = align.DefaultLineBytes()
	}
	return c
}
