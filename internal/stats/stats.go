// Package stats reduces timing samples to summary statistics.
package stats

import (
	"errors"
	"fmt"
	"math"
)

// PreconditionError reports a call with no samples. Summarize panics with
// it; callers guarantee at least one iteration upstream.
type PreconditionError struct {
	Message string
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("stats: %s", e.Message)
}

// IsPreconditionError returns true if err is a *PreconditionError.
func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// Summary describes a non-empty sample set. Values are in the samples' unit
// (seconds for traversal timings).
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize returns the arithmetic mean and the population standard
// deviation sqrt(Σ(x-mean)²/N) of samples, along with N, Min and Max.
//
// Panics with *PreconditionError if samples is empty.
func Summarize(samples []float64) Summary {
	if len(samples) == 0 {
		panic(&PreconditionError{Message: "cannot summarize an empty sample set"})
	}

	n := float64(len(samples))
	lo, hi := samples[0], samples[0]
	var sum float64
	for _, x := range samples {
		sum += x
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	mean := sum / n

	var sq float64
	for _, x := range samples {
		d := x - mean
		sq += d * d
	}

	return Summary{
		N:      len(samples),
		Mean:   mean,
		StdDev: math.Sqrt(sq / n),
		Min:    lo,
		Max:    hi,
	}
}

// Ratio returns a/b, or 0 when b is 0.
func Ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
