package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cachewalk/internal/align"
	"github.com/roach88/cachewalk/internal/bench"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Sweep(t *testing.T) {
	p, err := Load("testdata/sweep.yaml")
	require.NoError(t, err)

	assert.Equal(t, "locality-sweep", p.Name)
	assert.NotEmpty(t, p.Description)
	require.Len(t, p.Runs, 3)

	cfgs := p.Configs()
	assert.Equal(t, []bench.Config{
		{Size: 64, Iterations: 10, AlignRepeats: 5},
		{Size: 1024, Iterations: 10, AlignRepeats: 5},
		{Size: 4096, Iterations: 3, AlignRepeats: 5, LineBytes: 128},
	}, cfgs)

	for _, cfg := range cfgs {
		assert.NoError(t, cfg.Validate())
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`
name: typo
runs:
  - size: 4
    iteration: 3
`))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{
			name:     "missing name",
			yaml:     "runs:\n  - size: 4\n    iterations: 1\n",
			contains: "name",
		},
		{
			name:     "negative size",
			yaml:     "name: bad\nruns:\n  - size: -3\n    iterations: 1\n",
			contains: "size",
		},
		{
			name:     "size too large",
			yaml:     "name: bad\nruns:\n  - size: 50000\n    iterations: 1\n",
			contains: "size",
		},
		{
			name:     "negative iterations",
			yaml:     "name: bad\nruns:\n  - size: 4\n    iterations: -1\n",
			contains: "iterations",
		},
		{
			name:     "line size not a power of two",
			yaml:     "name: bad\nruns:\n  - size: 4\n    iterations: 1\n    line_bytes: 48\n",
			contains: "line_bytes",
		},
		{
			name:     "no runs",
			yaml:     "name: bad\nruns: []\n",
			contains: "runs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_LineBytesMatchesAlign(t *testing.T) {
	for n := align.MinLineBytes / 2; n <= align.MaxLineBytes*2; n *= 2 {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			doc := fmt.Sprintf("name: lines\nruns:\n  - size: 4\n    iterations: 1\n    line_bytes: %d\n", n)
			_, err := Parse([]byte(doc))
			if align.ValidateLineBytes(n) == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, IsValidationError(err), "line_bytes %d must be rejected", n)
			}
		})
	}
}

func TestParse_RunMissingIterations(t *testing.T) {
	_, err := Parse([]byte("name: partial\nruns:\n  - size: 4\n"))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, ve.Run)
	assert.Contains(t, err.Error(), "run 1")
}

func TestParse_DefaultsFillRuns(t *testing.T) {
	p, err := Parse([]byte(`
name: defaults
defaults:
  size: 16
  iterations: 2
  pin_cpu: true
runs:
  - {}
  - size: 32
`))
	require.NoError(t, err)

	cfgs := p.Configs()
	require.Len(t, cfgs, 2)
	assert.Equal(t, bench.Config{Size: 16, Iterations: 2, PinCPU: true}, cfgs[0])
	assert.Equal(t, bench.Config{Size: 32, Iterations: 2, PinCPU: true}, cfgs[1])
}

func TestLoad_PathInError(t *testing.T) {
	path := writePlan(t, "name: bad\nruns:\n  - size: 0\n    iterations: 1\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}

func TestFindFiles(t *testing.T) {
	files, err := FindFiles("testdata", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join("testdata", "smoke.yml"),
		filepath.Join("testdata", "sweep.yaml"),
	}, files)

	files, err = FindFiles("testdata", "sw*")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("testdata", "sweep.yaml")}, files)

	_, err = FindFiles("testdata", "[")
	assert.Error(t, err)
}
