// Package drag implements the drag-and-drop interaction state machine.
//
// A [Controller] turns pointer gestures into exactly one structural
// operation per completed drop:
//
//	Idle ──Start──▶ Dragging ──Over──▶ HoveringValid ──Drop──▶ Idle
//	                    │                   │
//	                    └──Over──▶ HoveringInvalid ──Drop──▶ Idle (no-op)
//
// Cancel returns to Idle from any state. Every hovered element is checked
// against a [scope.Guard] first; a target outside the designer's boundary
// is treated like an incompatible one, so dropping on it issues no call
// and raises no error.
//
// # Targets
//
// The payload's subject decides which elements accept it. The controller
// walks up from the hovered element to the nearest compatible ancestor:
//
//	row     canvas, row
//	column  row, column
//	field   column, field
//
// Placement before or after a sibling follows the pointer: rows and
// fields split on the vertical midpoint, columns on the horizontal one. The
// midpoint itself counts as after.
package drag
