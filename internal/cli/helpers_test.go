package cli

import (
	"bytes"
	"testing"

	"github.com/roach88/cachewalk/internal/bench"
	"github.com/roach88/cachewalk/internal/report"
)

// recordingRunner captures the configurations a command asks for and
// delegates to a real runner when one is set.
type recordingRunner struct {
	configs []bench.Config
	inner   *bench.Runner
	err     error
}

func (r *recordingRunner) Run(cfg bench.Config) (*report.Report, error) {
	r.configs = append(r.configs, cfg)
	if r.err != nil {
		return nil, r.err
	}
	if r.inner == nil {
		return &report.Report{Size: cfg.Size, Iterations: cfg.Iterations}, nil
	}
	return r.inner.Run(cfg)
}

func (r *recordingRunner) RunAll(cfgs []bench.Config) ([]*report.Report, error) {
	reports := make([]*report.Report, 0, len(cfgs))
	for _, cfg := range cfgs {
		rep, err := r.Run(cfg)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// runCLI executes the root command with a recording runner and returns the
// exit code plus captured stdout and stderr.
func runCLI(t *testing.T, runner BenchRunner, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(newRootCommand(runner), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}
