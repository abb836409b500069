// Package traverse times full scans of a grid.Matrix in row-major or
// column-major order.
//
// Each pass sums every logical element into an int64 checksum. The checksum
// is returned to the caller and stored into a package-level sink, so the
// compiler cannot prove the summation unused and elide the loop. Only the
// visiting loop sits inside the timed window; slicing the matrix apart and
// publishing the result happen outside it.
package traverse

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/roach88/cachewalk/internal/clock"
	"github.com/roach88/cachewalk/internal/grid"
)

// sink receives the checksum of every pass.
var sink atomic.Int64

// Sink returns the checksum of the most recent pass in this process.
func Sink() int64 {
	return sink.Load()
}

// Pass is the outcome of one full traversal.
type Pass struct {
	Order    Order
	Checksum int64
	Elapsed  time.Duration
}

// Seconds returns Elapsed as floating-point seconds.
func (p Pass) Seconds() float64 {
	return p.Elapsed.Seconds()
}

// Engine runs timed traversals against a clock.
//
// Engine holds no per-pass state. It is not meant to be shared across
// goroutines that time concurrently, since overlapping timed windows would
// measure each other.
type Engine struct {
	clock clock.Clock
}

// New creates an Engine. A nil clock selects clock.System.
func New(c clock.Clock) *Engine {
	if c == nil {
		c = clock.System{}
	}
	return &Engine{clock: c}
}

// Walk visits every element of m exactly once in the given order and
// returns the checksum and the elapsed time of the visiting loop.
//
// Panics on an Order other than RowMajor or ColumnMajor.
func (e *Engine) Walk(m *grid.Matrix, order Order) Pass {
	var scan func(data []int32, off, rows, cols int) int64
	switch order {
	case RowMajor:
		scan = sumRowMajor
	case ColumnMajor:
		scan = sumColumnMajor
	default:
		panic(fmt.Sprintf("traverse: unknown order %d", int(order)))
	}
	data, off, rows, cols := m.Data(), m.Offset(), m.Rows(), m.Cols()

	start := e.clock.Now()
	sum := scan(data, off, rows, cols)
	elapsed := clock.Since(e.clock, start)

	sink.Store(sum)
	if elapsed < 0 {
		elapsed = 0
	}
	return Pass{Order: order, Checksum: sum, Elapsed: elapsed}
}

// sumRowMajor: outer i over rows, inner j over columns.
func sumRowMajor(data []int32, off, rows, cols int) int64 {
	var sum int64
	for i := 0; i < rows; i++ {
		base := off + i*cols
		row := data[base : base+cols]
		for j := 0; j < cols; j++ {
			sum += int64(row[j])
		}
	}
	return sum
}

// sumColumnMajor: outer j over columns, inner i over rows.
func sumColumnMajor(data []int32, off, rows, cols int) int64 {
	var sum int64
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			sum += int64(data[off+i*cols+j])
		}
	}
	return sum
}
