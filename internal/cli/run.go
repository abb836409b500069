package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cachewalk/internal/bench"
	"github.com/roach88/cachewalk/internal/report"
	"github.com/roach88/cachewalk/internal/trial"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Size         int
	Iterations   int
	AlignRepeats int
	LineBytes    int
	PinCPU       bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run --size <matrix_dimension> --iterations <num_iterations>",
		Short: "Benchmark one matrix size",
		Long: `Build a size x size matrix filled with 1..size*size, time iterations
row-major and column-major scans of it after one untimed warm-up scan, and
report the mean and population standard deviation of each order. Then time
both orders over a 2x3 matrix placed inside one cache line and across a
cache-line boundary.

Exit codes:
  0 - Benchmark completed
  1 - Missing or invalid arguments, or a failed sanity check

Examples:
  cachewalk run --size 2048 --iterations 10
  cachewalk run --size 4096 --iterations 5 --align-repeats 100 --pin-cpu
  cachewalk run --size 512 --iterations 20 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Size, "size", 0, "matrix dimension (required)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "number of timed row/column pairs (required)")
	cmd.Flags().IntVar(&opts.AlignRepeats, "align-repeats", bench.DefaultAlignRepeats, "row/column pairs per 2x3 alignment case")
	cmd.Flags().IntVar(&opts.LineBytes, "line-bytes", 0, "cache-line size in bytes (default: detected)")
	cmd.Flags().BoolVar(&opts.PinCPU, "pin-cpu", false, "pin the benchmark to one CPU (linux)")

	return cmd
}

func runBenchmark(opts *RunOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if !cmd.Flags().Changed("size") || !cmd.Flags().Changed("iterations") {
		return argumentFailure(formatter, "--size and --iterations are required", nil)
	}
	if cmd.Flags().Changed("align-repeats") && opts.AlignRepeats <= 0 {
		return argumentFailure(formatter, "--align-repeats must be a positive integer",
			&bench.ArgumentError{Field: "align-repeats", Message: fmt.Sprintf("must be a positive integer, got %d", opts.AlignRepeats)})
	}
	if cmd.Flags().Changed("line-bytes") && opts.LineBytes == 0 {
		return argumentFailure(formatter, "--line-bytes must be a power of two",
			&bench.ArgumentError{Field: "line-bytes", Message: "must not be zero"})
	}

	cfg := bench.Config{
		Size:         opts.Size,
		Iterations:   opts.Iterations,
		AlignRepeats: opts.AlignRepeats,
		LineBytes:    opts.LineBytes,
		PinCPU:       opts.PinCPU,
	}
	if err := cfg.Validate(); err != nil {
		return argumentFailure(formatter, "matrix size and iterations must be positive integers", err)
	}

	rep, err := opts.Runner.Run(cfg)
	if err != nil {
		return runFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(rep)
	}
	return report.WriteText(cmd.OutOrStdout(), rep)
}

// argumentFailure reports invalid arguments. The usage text follows the
// error so the user sees the expected invocation.
func argumentFailure(f *OutputFormatter, message string, err error) error {
	if f.Format == "json" {
		details := map[string]string{}
		if err != nil {
			details["cause"] = err.Error()
		}
		_ = f.Error(ErrCodeInvalidArgs, message, details)
	}
	return &ExitError{Code: ExitFailure, Message: message, Err: err, ShowUsage: true}
}

// runFailure reports a benchmark that started but could not complete.
func runFailure(f *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	if trial.IsChecksumMismatch(err) {
		code = ErrCodeRunFailed
	}
	if f.Format == "json" {
		_ = f.Error(code, fmt.Sprintf("benchmark failed: %v", err), nil)
	}
	return WrapExitError(ExitFailure, "benchmark failed", err)
}
