package align

import (
	"fmt"
	"log/slog"

	"github.com/roach88/cachewalk/internal/stats"
	"github.com/roach88/cachewalk/internal/traverse"
	"github.com/roach88/cachewalk/internal/trial"
)

// Result summarizes the passes over one case.
type Result struct {
	Case        string        `json:"case"`
	Offset      int           `json:"offset"`
	LineOffset  int           `json:"line_offset_bytes"`
	CrossesLine bool          `json:"crosses_line"`
	Checksum    int64         `json:"checksum"`
	Row         stats.Summary `json:"row_major"`
	Col         stats.Summary `json:"column_major"`
}

// Experiment runs the alignment passes.
type Experiment struct {
	walker trial.Walker
	logger *slog.Logger
}

// NewExperiment creates an Experiment. A nil logger selects slog.Default().
func NewExperiment(w trial.Walker, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Experiment{walker: w, logger: logger}
}

// Run performs repeats (row-major, column-major) pairs per case, in case
// order, and summarizes each case's durations. With repeats == 1 each
// summary holds the single measurement and a zero stddev.
//
// Panics if repeats is not positive.
func (e *Experiment) Run(cases []*Case, repeats int) ([]Result, error) {
	if repeats <= 0 {
		panic(fmt.Sprintf("align: repeats must be > 0, got %d", repeats))
	}

	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		row := make([]float64, 0, repeats)
		col := make([]float64, 0, repeats)
		var checksum int64

		for k := 0; k < repeats; k++ {
			rp := e.walker.Walk(c.Matrix, traverse.RowMajor)
			cp := e.walker.Walk(c.Matrix, traverse.ColumnMajor)
			if rp.Checksum != cp.Checksum {
				return results, fmt.Errorf("case %s: %w", c.Name, trial.NewChecksumMismatchError(k, rp.Checksum, cp.Checksum))
			}
			checksum = rp.Checksum
			row = append(row, rp.Seconds())
			col = append(col, cp.Seconds())
		}

		r := Result{
			Case:        c.Name,
			Offset:      c.Offset,
			LineOffset:  c.LineOffset(),
			CrossesLine: c.CrossesLine(),
			Checksum:    checksum,
			Row:         stats.Summarize(row),
			Col:         stats.Summarize(col),
		}
		e.logger.Debug("alignment case complete",
			"case", r.Case,
			"crosses_line", r.CrossesLine,
			"row_seconds", r.Row.Mean,
			"col_seconds", r.Col.Mean)
		results = append(results, r)
	}
	return results, nil
}
