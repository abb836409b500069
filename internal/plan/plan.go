package plan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cachewalk/internal/bench"
)

// Plan is a named list of benchmark runs.
type Plan struct {
	// Name identifies the plan in logs and reports.
	Name string `yaml:"name" json:"name"`

	// Description explains what the plan measures.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Defaults supplies fields a run leaves unset.
	Defaults Entry `yaml:"defaults,omitempty" json:"defaults"`

	// Runs lists the configurations in execution order.
	Runs []Entry `yaml:"runs" json:"runs"`
}

// Entry is one run, or the plan-wide defaults. Zero means unset.
type Entry struct {
	Size         int  `yaml:"size,omitempty" json:"size,omitempty"`
	Iterations   int  `yaml:"iterations,omitempty" json:"iterations,omitempty"`
	AlignRepeats int  `yaml:"align_repeats,omitempty" json:"align_repeats,omitempty"`
	LineBytes    int  `yaml:"line_bytes,omitempty" json:"line_bytes,omitempty"`
	PinCPU       bool `yaml:"pin_cpu,omitempty" json:"pin_cpu,omitempty"`
}

// ValidationError reports a plan file that failed to decode or violated the
// schema.
type ValidationError struct {
	// Path is the plan file, empty for in-memory plans.
	Path string

	// Run is the 1-based run index, or 0 for plan-level errors.
	Run int

	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Run > 0 {
		fmt.Fprintf(&b, "run %d: ", e.Run)
	}
	b.WriteString(e.Message)
	return b.String()
}

// IsValidationError returns true if err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Load reads, decodes and validates a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Path = path
		}
		return nil, err
	}
	return p, nil
}

// Parse decodes and validates plan YAML.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the plan and every resolved run against the schema.
func (p *Plan) Validate() error {
	if err := planSchema.check("#Plan", p); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	for i, e := range p.resolved() {
		if err := planSchema.check("#Run", e); err != nil {
			return &ValidationError{Run: i + 1, Message: err.Error()}
		}
	}
	return nil
}

// resolved returns the runs with defaults applied.
func (p *Plan) resolved() []Entry {
	out := make([]Entry, len(p.Runs))
	for i, e := range p.Runs {
		out[i] = e.merge(p.Defaults)
	}
	return out
}

func (e Entry) merge(d Entry) Entry {
	if e.Size == 0 {
		e.Size = d.Size
	}
	if e.Iterations == 0 {
		e.Iterations = d.Iterations
	}
	if e.AlignRepeats == 0 {
		e.AlignRepeats = d.AlignRepeats
	}
	if e.LineBytes == 0 {
		e.LineBytes = d.LineBytes
	}
	e.PinCPU = e.PinCPU || d.PinCPU
	return e
}

// Configs returns one bench.Config per run, defaults applied.
func (p *Plan) Configs() []bench.Config {
	entries := p.resolved()
	cfgs := make([]bench.Config, len(entries))
	for i, e := range entries {
		cfgs[i] = bench.Config{
			Size:         e.Size,
			Iterations:   e.Iterations,
			AlignRepeats: e.AlignRepeats,
			LineBytes:    e.LineBytes,
			PinCPU:       e.PinCPU,
		}
	}
	return cfgs
}

// FindFiles returns the YAML plan files under dir, optionally restricted to
// base names (without extension) matching the glob filter.
func FindFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}
