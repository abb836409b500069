// Package bench composes matrix construction, the timed trial and the
// alignment experiment into a single report.
//
// A run is strictly sequential:
//
//  1. validate the configuration (no allocation happens on failure)
//  2. build the size×size matrix
//  3. optionally pin the goroutine to one CPU
//  4. force a GC so setup garbage is not collected mid-trial
//  5. run the trial (warm-up plus iterations timed pairs)
//  6. run the alignment experiment on freshly placed 2×3 buffers
//  7. summarize into a report.Report
package bench

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/roach88/cachewalk/internal/align"
	"github.com/roach88/cachewalk/internal/clock"
	"github.com/roach88/cachewalk/internal/grid"
	"github.com/roach88/cachewalk/internal/report"
	"github.com/roach88/cachewalk/internal/runid"
	"github.com/roach88/cachewalk/internal/stats"
	"github.com/roach88/cachewalk/internal/traverse"
	"github.com/roach88/cachewalk/internal/trial"
)

// Runner executes benchmark configurations.
//
// The zero value is ready to use: it reads the system monotonic clock,
// issues UUIDv7 run IDs and logs through slog.Default().
type Runner struct {
	// Clock overrides the time source (for testing).
	Clock clock.Clock

	// RunIDs overrides the run ID generator (for testing).
	RunIDs runid.Generator

	// Logger receives progress logs. Nil selects slog.Default().
	Logger *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Runner) runIDs() runid.Generator {
	if r.RunIDs == nil {
		return runid.UUIDv7Generator{}
	}
	return r.RunIDs
}

// Run executes one configuration and returns its report.
//
// Returns an *ArgumentError if cfg is invalid, a trial.RuntimeError if a
// checksum sanity check fails.
func (r *Runner) Run(cfg Config) (*report.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()
	log := r.logger()
	id := r.runIDs().Generate()
	log = log.With("run_id", id)

	log.Info("building matrix", "size", cfg.Size)
	m := grid.New(cfg.Size, cfg.Size)

	if cfg.PinCPU {
		release, cpu, err := pinThread()
		if err != nil {
			log.Warn("cpu pinning unavailable", "error", err)
		} else {
			defer release()
			log.Debug("pinned to cpu", "cpu", cpu)
		}
	}

	runtime.GC()

	eng := traverse.New(r.Clock)

	log.Info("running trial", "iterations", cfg.Iterations)
	samples, err := trial.New(eng, log).Run(m, cfg.Iterations)
	if err != nil {
		return nil, fmt.Errorf("trial failed: %w", err)
	}

	cases, err := align.NewCases(cfg.LineBytes)
	if err != nil {
		return nil, &ArgumentError{Field: "line-bytes", Message: err.Error()}
	}
	log.Info("running alignment experiment", "line_bytes", cfg.LineBytes, "repeats", cfg.AlignRepeats)
	results, err := align.NewExperiment(eng, log).Run(cases, cfg.AlignRepeats)
	if err != nil {
		return nil, fmt.Errorf("alignment experiment failed: %w", err)
	}

	rep := &report.Report{
		RunID:        id,
		Size:         cfg.Size,
		Iterations:   cfg.Iterations,
		Elements:     m.Len(),
		LineBytes:    cfg.LineBytes,
		Checksum:     samples.Checksum,
		Row:          stats.Summarize(samples.Row),
		Col:          stats.Summarize(samples.Col),
		RowSamples:   samples.Row,
		ColSamples:   samples.Col,
		AlignRepeats: cfg.AlignRepeats,
		Alignment:    results,
	}
	log.Info("run complete",
		"row_mean", rep.Row.Mean,
		"col_mean", rep.Col.Mean,
		"ratio", rep.Ratio())
	return rep, nil
}

// RunAll executes configurations in order and stops at the first error.
// Reports completed before the error are returned with it.
func (r *Runner) RunAll(cfgs []Config) ([]*report.Report, error) {
	reports := make([]*report.Report, 0, len(cfgs))
	for i, cfg := range cfgs {
		rep, err := r.Run(cfg)
		if err != nil {
			return reports, fmt.Errorf("run %d: %w", i+1, err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
