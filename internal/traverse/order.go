package traverse

import "fmt"

// Order selects the nesting of the traversal loops.
type Order int

const (
	// RowMajor fixes each row and sweeps all columns before advancing.
	RowMajor Order = iota

	// ColumnMajor fixes each column and sweeps all rows before advancing.
	ColumnMajor
)

// Orders lists every traversal order in the sequence a trial runs them.
var Orders = []Order{RowMajor, ColumnMajor}

// String returns "row-major" or "column-major".
func (o Order) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}
