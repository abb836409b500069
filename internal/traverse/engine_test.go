package traverse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/cachewalk/internal/clock"
	"github.com/roach88/cachewalk/internal/grid"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// gaussSum is 1 + 2 + ... + n.
func gaussSum(n int) int64 {
	return int64(n) * int64(n+1) / 2
}

func TestWalk_ChecksumMatchesAcrossOrders(t *testing.T) {
	eng := New(nil)
	shapes := []struct{ rows, cols int }{
		{1, 1}, {1, 9}, {9, 1}, {2, 3}, {4, 4}, {17, 31}, {64, 64},
	}

	for _, s := range shapes {
		m := grid.New(s.rows, s.cols)
		row := eng.Walk(m, RowMajor)
		col := eng.Walk(m, ColumnMajor)

		assert.Equal(t, gaussSum(s.rows*s.cols), row.Checksum, "%d×%d row-major", s.rows, s.cols)
		assert.Equal(t, row.Checksum, col.Checksum, "%d×%d orders disagree", s.rows, s.cols)
		assert.Equal(t, RowMajor, row.Order)
		assert.Equal(t, ColumnMajor, col.Order)
	}
}

func TestWalk_VisitCountEqualsElementCount(t *testing.T) {
	// A matrix of ones turns the checksum into a visit counter.
	eng := New(nil)
	for _, s := range []struct{ rows, cols int }{{3, 5}, {5, 3}, {8, 8}, {1, 40}} {
		buf := make([]int32, s.rows*s.cols)
		for k := range buf {
			buf[k] = 1
		}
		m := grid.View(buf, 0, s.rows, s.cols)

		for _, o := range Orders {
			p := eng.Walk(m, o)
			assert.Equal(t, int64(s.rows*s.cols), p.Checksum, "%v over %d×%d", o, s.rows, s.cols)
		}
	}
}

func TestWalk_EachElementVisitedExactlyOnce(t *testing.T) {
	// Distinct powers of two: any duplicate visit or omission changes the sum.
	const rows, cols = 5, 6
	buf := make([]int32, rows*cols)
	for k := range buf {
		buf[k] = int32(1) << k
	}
	m := grid.View(buf, 0, rows, cols)
	want := int64(1)<<(rows*cols) - 1

	eng := New(nil)
	for _, o := range Orders {
		assert.Equal(t, want, eng.Walk(m, o).Checksum, "%v", o)
	}
}

func TestWalk_StaysInsideWindow(t *testing.T) {
	// Sentinel values around the window must not leak into the checksum.
	buf := []int32{1000, 1000, 1, 2, 3, 4, 5, 6, 1000}
	m := grid.View(buf, 2, 2, 3)

	eng := New(nil)
	for _, o := range Orders {
		assert.Equal(t, int64(21), eng.Walk(m, o).Checksum, "%v", o)
	}
}

func TestWalk_DoesNotMutateMatrix(t *testing.T) {
	m := grid.New(6, 7)
	before := m.Values()

	eng := New(nil)
	for _, o := range Orders {
		eng.Walk(m, o)
	}
	assert.Equal(t, before, m.Values())
}

func TestWalk_ElapsedFromClock(t *testing.T) {
	c := clock.NewStepClock(epoch, 3*time.Millisecond, 0)
	eng := New(c)

	p := eng.Walk(grid.New(2, 2), ColumnMajor)
	assert.Equal(t, 3*time.Millisecond, p.Elapsed)
	assert.InDelta(t, 0.003, p.Seconds(), 1e-12)
	assert.Equal(t, 2, c.Calls(), "clock read once before and once after the loop")
}

func TestWalk_SystemClockNonNegative(t *testing.T) {
	eng := New(clock.System{})
	m := grid.New(32, 32)
	for i := 0; i < 10; i++ {
		for _, o := range Orders {
			assert.GreaterOrEqual(t, eng.Walk(m, o).Elapsed, time.Duration(0))
		}
	}
}

func TestWalk_PublishesChecksumToSink(t *testing.T) {
	eng := New(nil)
	p := eng.Walk(grid.New(3, 3), RowMajor)
	assert.Equal(t, p.Checksum, Sink())
}

func TestWalk_UnknownOrderPanics(t *testing.T) {
	eng := New(nil)
	assert.Panics(t, func() { eng.Walk(grid.New(1, 1), Order(7)) })
}

func TestOrder_String(t *testing.T) {
	assert.Equal(t, "row-major", RowMajor.String())
	assert.Equal(t, "column-major", ColumnMajor.String())
	assert.Equal(t, "Order(9)", Order(9).String())
}
