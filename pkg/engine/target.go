package engine

import "slices"

// Placement says on which side of a sibling a node is inserted.
type Placement int

const (
	// Before inserts ahead of the target sibling.
	Before Placement = iota
	// After inserts behind the target sibling.
	After
)

func (p Placement) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// PlacementFor derives a placement from a pointer offset along the target's
// extent: the first half is Before, the midpoint and beyond are After. A
// non-positive extent yields After.
func PlacementFor(offset, extent float64) Placement {
	if extent > 0 && offset < extent/2 {
		return Before
	}
	return After
}

// RowTarget positions a row. With RowID set the row goes before or after
// that row; otherwise it lands on the canvas at Relative (0 = top, 1 =
// bottom): positions below one half insert at the top, others append.
type RowTarget struct {
	RowID     string
	Placement Placement
	Relative  float64
}

// ColumnTarget positions a column. With ColumnID set the column goes before
// or after that column; otherwise it is appended to RowID.
type ColumnTarget struct {
	ColumnID  string
	RowID     string
	Placement Placement
}

// FieldTarget positions a field. With FieldID set the field goes before or
// after that field; otherwise it is appended to ColumnID.
type FieldTarget struct {
	FieldID   string
	ColumnID  string
	Placement Placement
}

// insertAt inserts v at i, appending when i is out of range.
func insertAt[T any](s []T, i int, v T) []T {
	if i < 0 || i > len(s) {
		i = len(s)
	}
	return slices.Insert(s, i, v)
}

func removeAt[T any](s []T, i int) []T {
	return slices.Delete(s, i, i+1)
}

func sideIndex(i int, p Placement) int {
	if p == After {
		return i + 1
	}
	return i
}
