// Package trial repeats paired row-major and column-major traversals of one
// matrix and collects their durations.
//
// Measurement is strictly sequential: iteration k's row pass and column pass
// are both recorded before iteration k+1 starts, and nothing else runs a
// timed window in between.
package trial

import (
	"fmt"
	"log/slog"

	"github.com/roach88/cachewalk/internal/grid"
	"github.com/roach88/cachewalk/internal/traverse"
)

// Walker is the traversal primitive a Runner drives. *traverse.Engine
// satisfies it.
type Walker interface {
	Walk(m *grid.Matrix, order traverse.Order) traverse.Pass
}

// Samples holds the durations of one trial, in seconds. Row[k] and Col[k]
// come from the same iteration.
type Samples struct {
	Row []float64
	Col []float64

	// Checksum is the sum every pass produced.
	Checksum int64

	// WarmupChecksum is the sum of the untimed warm-up pass.
	WarmupChecksum int64
}

// Len returns the number of recorded iterations.
func (s *Samples) Len() int {
	return len(s.Row)
}

// Runner executes trials.
type Runner struct {
	walker Walker
	logger *slog.Logger
}

// New creates a Runner. A nil logger selects slog.Default().
func New(w Walker, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{walker: w, logger: logger}
}

// Run performs one untimed warm-up pass, then iterations timed pairs of
// (row-major, column-major) passes over m.
//
// Each pair's checksums are compared before the next pair begins; a
// disagreement stops the trial with a CHECKSUM_MISMATCH RuntimeError.
//
// Panics if iterations is not positive.
func (r *Runner) Run(m *grid.Matrix, iterations int) (*Samples, error) {
	if iterations <= 0 {
		panic(fmt.Sprintf("trial: iterations must be > 0, got %d", iterations))
	}

	warm := r.walker.Walk(m, traverse.RowMajor)
	r.logger.Debug("warm-up pass complete", "rows", m.Rows(), "cols", m.Cols())

	s := &Samples{
		Row:            make([]float64, 0, iterations),
		Col:            make([]float64, 0, iterations),
		WarmupChecksum: warm.Checksum,
		Checksum:       warm.Checksum,
	}

	for k := 0; k < iterations; k++ {
		row := r.walker.Walk(m, traverse.RowMajor)
		col := r.walker.Walk(m, traverse.ColumnMajor)

		if row.Checksum != col.Checksum || row.Checksum != s.WarmupChecksum {
			return s, NewChecksumMismatchError(k, row.Checksum, col.Checksum)
		}

		s.Row = append(s.Row, row.Seconds())
		s.Col = append(s.Col, col.Seconds())

		r.logger.Debug("iteration complete",
			"iteration", k,
			"row_seconds", row.Seconds(),
			"col_seconds", col.Seconds())
	}

	return s, nil
}
