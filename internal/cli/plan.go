package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cachewalk/internal/plan"
	"github.com/roach88/cachewalk/internal/report"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	Filter string // plan filter (glob pattern) when the path is a directory
}

// PlanResult is the outcome of one plan file.
type PlanResult struct {
	Name    string           `json:"name"`
	File    string           `json:"file"`
	Reports []*report.Report `json:"reports"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan <plan-file-or-dir>",
		Short: "Run every configuration in a plan file",
		Long: `Run the benchmark configurations listed in YAML plan files.

A plan names a list of runs; each run inherits iterations, align_repeats,
line_bytes and pin_cpu from the plan's defaults. Plans are validated
against a schema before anything runs.

Exit codes:
  0 - All runs completed
  1 - A run failed a sanity check
  2 - Command error (path not found, invalid plan, etc.)

Examples:
  cachewalk plan ./plans/sweep.yaml
  cachewalk plan ./plans --filter "sweep-*"
  cachewalk plan ./plans/sweep.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlans(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter plan files by glob pattern")

	return cmd
}

func runPlans(opts *PlanOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	files, err := planFiles(path, opts.Filter)
	if err != nil {
		if opts.Format == "json" {
			_ = formatter.Error(ErrCodePlanNotFound, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "cannot read plans", err)
	}
	if len(files) == 0 {
		if opts.Format == "json" {
			return formatter.Success([]PlanResult{})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No plans found.")
		return nil
	}

	// Validate every plan before running any of them.
	plans := make([]*plan.Plan, len(files))
	for i, f := range files {
		p, err := plan.Load(f)
		if err != nil {
			if opts.Format == "json" {
				_ = formatter.Error(ErrCodeInvalidPlan, err.Error(), map[string]string{"file": f})
			}
			return WrapExitError(ExitCommandError, "invalid plan", err)
		}
		plans[i] = p
	}

	results := make([]PlanResult, 0, len(plans))
	for i, p := range plans {
		slog.Info("running plan", "name", p.Name, "file", files[i], "runs", len(p.Runs))
		reports, err := opts.Runner.RunAll(p.Configs())
		if err != nil {
			return runFailure(formatter, fmt.Errorf("plan %s: %w", p.Name, err))
		}
		results = append(results, PlanResult{Name: p.Name, File: files[i], Reports: reports})
	}

	if opts.Format == "json" {
		return formatter.Success(results)
	}

	w := cmd.OutOrStdout()
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "=== Plan: %s (%s) ===\n\n", r.Name, r.File)
		if err := report.WriteTextAll(w, r.Reports); err != nil {
			return err
		}
	}
	return nil
}

// planFiles resolves a plan path: a file is returned as-is, a directory is
// searched for YAML files.
func planFiles(path, filter string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return plan.FindFiles(path, filter)
}
