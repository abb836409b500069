package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/cachewalk/internal/bench"
	"github.com/roach88/cachewalk/internal/report"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Runner executes benchmark configurations. Tests replace it to observe
	// what the commands ask for.
	Runner BenchRunner
}

// BenchRunner is the part of *bench.Runner the commands use.
type BenchRunner interface {
	Run(cfg bench.Config) (*report.Report, error)
	RunAll(cfgs []bench.Config) ([]*report.Report, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cachewalk CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(nil)
}

func newRootCommand(runner BenchRunner) *cobra.Command {
	opts := &RootOptions{Runner: runner}

	cmd := &cobra.Command{
		Use:   "cachewalk",
		Short: "cachewalk - row-major vs column-major traversal benchmark",
		Long: `Measure the wall-clock cost of scanning a dense integer matrix in
row-major and column-major order, and of scanning a 2x3 matrix that either
sits inside one cache line or straddles a cache-line boundary.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return &ExitError{
					Code:      ExitFailure,
					Message:   fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats),
					ShowUsage: true,
				}
			}
			configureLogging(opts, cmd.ErrOrStderr())
			if opts.Runner == nil {
				opts.Runner = &bench.Runner{Logger: slog.Default()}
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitFailure, Message: "invalid flags", Err: err, ShowUsage: true}
	})

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewPlanCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code. Errors
// go to stderr, followed by the usage text when the error calls for it.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	return execute(cmd, args, stdout, stderr)
}

func execute(cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	executed, err := cmd.ExecuteC()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.ShowUsage && executed != nil {
		fmt.Fprint(stderr, executed.UsageString())
	}
	return GetExitCode(err)
}

// configureLogging installs a text slog handler on w. Verbose lowers the
// level to Debug, which logs every timed iteration.
func configureLogging(opts *RootOptions, w io.Writer) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
