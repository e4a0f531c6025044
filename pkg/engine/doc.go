// Package engine implements the structural operations on a layout tree:
// creating, deleting and relocating rows, columns and fields.
//
// # Overview
//
// An [Engine] owns a [layout.Tree], an [ident.Allocator] and reads element
// definitions from an [element.Registry]. Every operation is atomic: all
// preconditions are checked before the tree is touched, so a failed call
// leaves the tree exactly as it was.
//
//	eng := engine.New(layout.New(), ident.New(), element.Default())
//	row := eng.CreateRow()                       // row-1 with column-1 (width 12)
//	col, _ := eng.AddColumn(row.ID)              // widths 6, 6
//	f, _ := eng.CreateField("input-text", col.ID) // input-text-1
//
// # Targets
//
// Inserts and moves take a target describing where the node lands: before
// or after a sibling (the [Placement] is derived from which half of the
// sibling the pointer was over), appended into a parent, or at a relative
// position on the canvas. A pointer exactly on the midpoint counts as
// [After].
//
// # Errors
//
// Failures carry codes from package errors: NOT_FOUND for unknown ids or
// type keys, CAPACITY_EXCEEDED when a row already has 12 columns and
// DUPLICATE for a second root element. Deleting an unknown id is a no-op.
package engine
