// Package grid provides the dense integer matrices that traversal passes
// scan.
//
// A Matrix is a logical rows×cols window over a flat []int32 buffer stored in
// row-major order: element (i,j) lives at data[offset + i*cols + j]. Matrices
// built by New own their buffer and start at offset 0. View wraps a buffer the
// caller allocated and placed, which is how the alignment cases control where
// the window begins relative to a cache-line boundary.
//
// Matrices are read-only once built. Nothing in this package mutates a
// Matrix after construction.
package grid

import "math"

// MaxElements is the largest element count New accepts. Sequential fill
// starts at 1, so the last value written equals the element count and must
// fit int32.
const MaxElements = math.MaxInt32

// Matrix is a dense rows×cols grid of int32 values.
type Matrix struct {
	rows, cols int
	offset     int
	data       []int32
}

// New allocates a rows×cols matrix and fills it in row-major order with a
// running counter starting at 1, so At(i, j) == 1 + i*cols + j.
//
// Panics with *PreconditionError if rows or cols is not positive, or if
// rows*cols exceeds MaxElements.
func New(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(preconditionf("New", "dimensions must be > 0, got %d×%d", rows, cols))
	}
	if rows > MaxElements/cols {
		panic(preconditionf("New", "%d×%d exceeds %d elements", rows, cols, MaxElements))
	}

	data := make([]int32, rows*cols)
	Fill(data)
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Fill writes 1, 2, 3, ... into dst in index order.
func Fill(dst []int32) {
	for k := range dst {
		dst[k] = int32(k + 1)
	}
}

// View returns a rows×cols matrix over buf starting at offset. The buffer is
// shared, not copied.
//
// Panics with *PreconditionError if the dimensions are not positive, the
// offset is negative, or the window does not fit inside buf.
func View(buf []int32, offset, rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(preconditionf("View", "dimensions must be > 0, got %d×%d", rows, cols))
	}
	if offset < 0 {
		panic(preconditionf("View", "offset must be >= 0, got %d", offset))
	}
	if rows > (len(buf)-offset)/cols || offset > len(buf) {
		panic(preconditionf("View", "%d×%d window at offset %d exceeds buffer of %d", rows, cols, offset, len(buf)))
	}
	return &Matrix{rows: rows, cols: cols, offset: offset, data: buf}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Len returns rows*cols.
func (m *Matrix) Len() int { return m.rows * m.cols }

// Offset returns the buffer index of element (0,0).
func (m *Matrix) Offset() int { return m.offset }

// Data returns the backing buffer, including any elements outside the
// logical window. Callers must treat it as read-only.
func (m *Matrix) Data() []int32 { return m.data }

// At returns element (i,j). Indices are not range-checked beyond what the
// slice access itself enforces.
func (m *Matrix) At(i, j int) int32 {
	return m.data[m.offset+i*m.cols+j]
}

// Values returns a row-major copy of the logical window.
func (m *Matrix) Values() []int32 {
	out := make([]int32, m.Len())
	copy(out, m.data[m.offset:m.offset+m.Len()])
	return out
}
