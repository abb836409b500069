// Package align measures traversal cost of a tiny 2×3 matrix placed in two
// physical layouts: one that starts on a cache-line boundary and one that is
// offset so its six elements straddle a boundary.
//
// Buffers are freshly allocated per call and placed by inspecting real
// element addresses, so whether a case crosses a line is a structural
// property that tests can check without timing anything. Go's heap does not
// move objects, so a placement stays valid for the buffer's lifetime.
package align

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/roach88/cachewalk/internal/grid"
)

// Shape of the alignment matrix.
const (
	Rows  = 2
	Cols  = 3
	Cells = Rows * Cols
)

// UnalignedOffset is the element offset of the unaligned case's window
// inside its buffer.
const UnalignedOffset = 1

// Accepted cache-line sizes, in bytes. MaxLineBytes matches the plan schema.
const (
	MinLineBytes = 32
	MaxLineBytes = 4096
)

// Case names.
const (
	NameAligned   = "aligned"
	NameUnaligned = "unaligned"
)

const elemSize = int(unsafe.Sizeof(int32(0)))

// DefaultLineBytes returns the cache-line size of the running architecture
// as reported by golang.org/x/sys/cpu, or 64 if that is below MinLineBytes.
func DefaultLineBytes() int {
	n := int(unsafe.Sizeof(cpu.CacheLinePad{}))
	if n < MinLineBytes {
		return 64
	}
	return n
}

// ValidateLineBytes checks that n is a power of two within
// [MinLineBytes, MaxLineBytes].
func ValidateLineBytes(n int) error {
	if n < MinLineBytes {
		return fmt.Errorf("line size %d is below the minimum of %d bytes", n, MinLineBytes)
	}
	if n > MaxLineBytes {
		return fmt.Errorf("line size %d is above the maximum of %d bytes", n, MaxLineBytes)
	}
	if n&(n-1) != 0 {
		return fmt.Errorf("line size %d is not a power of two", n)
	}
	return nil
}

// Case is one physical placement of the 2×3 matrix {1..6}.
type Case struct {
	Name      string
	Buffer    []int32
	Offset    int
	LineBytes int
	Matrix    *grid.Matrix
}

// NewCases builds the aligned and unaligned cases for the given cache-line
// size, in that order.
func NewCases(lineBytes int) ([]*Case, error) {
	if err := ValidateLineBytes(lineBytes); err != nil {
		return nil, err
	}
	return []*Case{
		newCase(NameAligned, lineBytes, 0, 0),
		// Lead of offset+Cells/2 puts the line boundary between elements 3 and 4.
		newCase(NameUnaligned, lineBytes, UnalignedOffset, UnalignedOffset+Cells/2),
	}, nil
}

// newCase allocates a buffer whose element lead sits exactly on a cache-line
// boundary, writes 1..6 at offset and wraps the window as a matrix.
func newCase(name string, lineBytes, offset, lead int) *Case {
	buf := place(lineBytes, lead)
	grid.Fill(buf[offset : offset+Cells])
	return &Case{
		Name:      name,
		Buffer:    buf,
		Offset:    offset,
		LineBytes: lineBytes,
		Matrix:    grid.View(buf, offset, Rows, Cols),
	}
}

// place returns a slice of lead+lineElems elements whose index lead is the
// first element of a cache line.
func place(lineBytes, lead int) []int32 {
	lineElems := lineBytes / elemSize
	backing := make([]int32, 3*lineElems)

	past := int(uintptr(unsafe.Pointer(&backing[0])) % uintptr(lineBytes))
	first := 0
	if past != 0 {
		first = (lineBytes - past) / elemSize
	}
	boundary := first + lineElems
	start := boundary - lead
	return backing[start : boundary+lineElems]
}

// Range returns the buffer indexes of the first and last element of the
// window.
func (c *Case) Range() (lo, hi int) {
	return c.Offset, c.Offset + Cells - 1
}

// CrossesLine reports whether the window's first and last elements live on
// different cache lines.
func (c *Case) CrossesLine() bool {
	lo, hi := c.Range()
	line := uintptr(c.LineBytes)
	first := uintptr(unsafe.Pointer(&c.Buffer[lo]))
	last := uintptr(unsafe.Pointer(&c.Buffer[hi]))
	return first/line != last/line
}

// LineOffset returns the byte distance of the window's first element past
// the start of its cache line.
func (c *Case) LineOffset() int {
	return int(uintptr(unsafe.Pointer(&c.Buffer[c.Offset])) % uintptr(c.LineBytes))
}
