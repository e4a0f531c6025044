package dom

import (
	"fmt"
	"iter"
)

// Kind classifies a host element.
type Kind int

const (
	// KindHost is any element the designer does not own, including the
	// document root.
	KindHost Kind = iota
	// KindCanvas is the designer's container. Dropping a row here appends
	// or prepends it to the layout.
	KindCanvas
	KindRow
	KindColumn
	KindField
	// KindRoot is the rendered root element (submission wrapper).
	KindRoot
	// KindPanel is the property editing panel.
	KindPanel
	// KindHandle is the drag handle inside a row, column or field.
	KindHandle
)

var kindNames = map[Kind]string{
	KindHost:   "host",
	KindCanvas: "canvas",
	KindRow:    "row",
	KindColumn: "column",
	KindField:  "field",
	KindRoot:   "root",
	KindPanel:  "panel",
	KindHandle: "handle",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Point is a pointer position in host coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	x, y := min(r.X, o.X), min(r.Y, o.Y)
	return Rect{X: x, Y: y, W: max(r.X+r.W, o.X+o.W) - x, H: max(r.Y+r.H, o.Y+o.H) - y}
}

// Element is a node of the host document.
type Element struct {
	Kind   Kind
	NodeID string // layout node id for rows, columns, fields and the root
	Name   string // region name, e.g. "property-panel"
	Rect   Rect

	parent   *Element
	children []*Element
}

// New creates a detached element.
func New(kind Kind, nodeID string, r Rect) *Element {
	return &Element{Kind: kind, NodeID: nodeID, Rect: r}
}

// Append adds child as the last child of e, detaching it from any previous
// parent, and returns child.
func (e *Element) Append(child *Element) *Element {
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	return child
}

func (e *Element) remove(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

// Detach removes e from its parent. Detaching a root is a no-op.
func (e *Element) Detach() {
	if e.parent != nil {
		e.parent.remove(e)
		e.parent = nil
	}
}

// Parent returns the parent element, or nil for a root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's children in order.
func (e *Element) Children() []*Element { return e.children }

// Closest returns e or its nearest ancestor whose kind is one of kinds, or
// nil if there is none.
func (e *Element) Closest(kinds ...Kind) *Element {
	for n := e; n != nil; n = n.parent {
		for _, k := range kinds {
			if n.Kind == k {
				return n
			}
		}
	}
	return nil
}

// ElementAt returns the deepest element under p, preferring later children
// when siblings overlap. It returns nil if p lies outside e.
func (e *Element) ElementAt(p Point) *Element {
	if !e.Rect.Contains(p) {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := e.children[i].ElementAt(p); hit != nil {
			return hit
		}
	}
	return e
}

// Find returns the first element in e's subtree carrying nodeID.
func (e *Element) Find(nodeID string) *Element {
	for n := range e.All() {
		if n.NodeID == nodeID && n.Kind != KindHandle {
			return n
		}
	}
	return nil
}

// All yields e and its descendants in pre-order.
func (e *Element) All() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		e.walk(yield)
	}
}

func (e *Element) walk(yield func(*Element) bool) bool {
	if !yield(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// Center returns the midpoint of the element's bounding box.
func (e *Element) Center() Point {
	return Point{X: e.Rect.X + e.Rect.W/2, Y: e.Rect.Y + e.Rect.H/2}
}

func (e *Element) String() string {
	switch {
	case e.NodeID != "":
		return e.Kind.String() + "#" + e.NodeID
	case e.Name != "":
		return e.Kind.String() + "." + e.Name
	default:
		return e.Kind.String()
	}
}
