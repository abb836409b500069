package bench

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cachewalk/internal/align"
	"github.com/roach88/cachewalk/internal/clock"
	"github.com/roach88/cachewalk/internal/runid"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRun_SizeFourThreeIterations(t *testing.T) {
	c := clock.NewStepClock(epoch, time.Microsecond, 0)
	r := &Runner{
		Clock:  c,
		RunIDs: runid.NewFixedGenerator("run-test-0001"),
		Logger: quietLogger(),
	}

	rep, err := r.Run(Config{Size: 4, Iterations: 3, LineBytes: 64})
	require.NoError(t, err)

	assert.Equal(t, "run-test-0001", rep.RunID)
	assert.Equal(t, 4, rep.Size)
	assert.Equal(t, 3, rep.Iterations)
	assert.Equal(t, 16, rep.Elements)
	assert.Equal(t, int64(136), rep.Checksum, "sum of 1..16")

	require.Len(t, rep.RowSamples, 3)
	require.Len(t, rep.ColSamples, 3)
	for k := 0; k < 3; k++ {
		assert.Equal(t, 0.000001, rep.RowSamples[k])
		assert.Equal(t, 0.000001, rep.ColSamples[k])
	}
	assert.InDelta(t, 0.000001, rep.Row.Mean, 1e-15)
	assert.InDelta(t, 0.0, rep.Row.StdDev, 1e-15)
	assert.GreaterOrEqual(t, rep.Col.Mean, 0.0)
	assert.GreaterOrEqual(t, rep.Col.StdDev, 0.0)

	assert.Equal(t, 1, rep.AlignRepeats)
	require.Len(t, rep.Alignment, 2)
	assert.Equal(t, align.NameAligned, rep.Alignment[0].Case)
	assert.Equal(t, align.NameUnaligned, rep.Alignment[1].Case)
	assert.False(t, rep.Alignment[0].CrossesLine)
	assert.True(t, rep.Alignment[1].CrossesLine)

	// warm-up + 3 pairs + 2 cases × 1 pair = 11 passes, two reads each
	assert.Equal(t, 22, c.Calls())
}

func TestRun_SystemClock(t *testing.T) {
	r := &Runner{Logger: quietLogger()}

	rep, err := r.Run(Config{Size: 64, Iterations: 5, AlignRepeats: 4})
	require.NoError(t, err)

	assert.Len(t, rep.RunID, 36, "default run IDs are UUIDs")
	assert.Equal(t, align.DefaultLineBytes(), rep.LineBytes)
	for _, s := range append(rep.RowSamples, rep.ColSamples...) {
		assert.GreaterOrEqual(t, s, 0.0)
	}
	for _, a := range rep.Alignment {
		assert.Equal(t, 4, a.Row.N)
	}
}

func TestRun_InvalidConfigBuildsNothing(t *testing.T) {
	cases := []Config{
		{Size: 0, Iterations: 3},
		{Size: 4, Iterations: 0},
		{Size: -1, Iterations: 3},
		{Size: MaxSize + 1, Iterations: 1},
		{Size: 4, Iterations: 1, AlignRepeats: -1},
		{Size: 4, Iterations: 1, LineBytes: 48},
	}

	for _, cfg := range cases {
		c := clock.NewStepClock(epoch)
		r := &Runner{Clock: c, RunIDs: runid.NewFixedGenerator(), Logger: quietLogger()}

		rep, err := r.Run(cfg)
		require.Error(t, err, "%+v", cfg)
		assert.Nil(t, rep)
		assert.True(t, IsArgumentError(err), "%+v", cfg)
		assert.Zero(t, c.Calls(), "no pass may run for %+v", cfg)
	}
}

func TestRun_PinCPU(t *testing.T) {
	r := &Runner{Logger: quietLogger()}

	// Pinning may be unsupported; the run must succeed either way.
	rep, err := r.Run(Config{Size: 8, Iterations: 2, PinCPU: true})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Row.N)
}

func TestRunAll_StopsAtFirstError(t *testing.T) {
	r := &Runner{Clock: clock.NewStepClock(epoch), Logger: quietLogger()}

	reports, err := r.RunAll([]Config{
		{Size: 2, Iterations: 1},
		{Size: 0, Iterations: 1},
		{Size: 3, Iterations: 1},
	})
	require.Error(t, err)
	assert.True(t, IsArgumentError(err))
	assert.Contains(t, err.Error(), "run 2")
	assert.Len(t, reports, 1)
}

func TestRunAll_InOrder(t *testing.T) {
	r := &Runner{
		Clock:  clock.NewStepClock(epoch),
		RunIDs: runid.NewFixedGenerator("a", "b"),
		Logger: quietLogger(),
	}

	reports, err := r.RunAll([]Config{{Size: 2, Iterations: 1}, {Size: 3, Iterations: 2}})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "a", reports[0].RunID)
	assert.Equal(t, 2, reports[0].Size)
	assert.Equal(t, "b", reports[1].RunID)
	assert.Equal(t, 3, reports[1].Size)
}
