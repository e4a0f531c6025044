package layout

import "iter"

// Location describes where a node sits in a tree. Only the fields relevant
// to Kind are set; Index is the node's position in its parent sequence.
type Location struct {
	Kind   NodeKind
	Row    *Row
	Column *Column
	Field  *Field
	Index  int
}

// Found reports whether the location refers to a node.
func (l Location) Found() bool { return l.Kind != KindNone }

// Locate finds id, searching the root element, rows, columns and fields in
// that order.
func (t *Tree) Locate(id string) Location {
	if id == "" {
		return Location{}
	}
	if t.Root != nil && t.Root.ID == id {
		return Location{Kind: KindRoot, Field: t.Root}
	}
	if r, i := t.FindRow(id); r != nil {
		return Location{Kind: KindRow, Row: r, Index: i}
	}
	if r, c, i := t.FindColumn(id); c != nil {
		return Location{Kind: KindColumn, Row: r, Column: c, Index: i}
	}
	if r, c, f, i := t.FindField(id); f != nil {
		return Location{Kind: KindField, Row: r, Column: c, Field: f, Index: i}
	}
	return Location{}
}

// FindRow returns the row with the given ID and its index, or nil and -1.
func (t *Tree) FindRow(id string) (*Row, int) {
	for i, r := range t.Rows {
		if r.ID == id {
			return r, i
		}
	}
	return nil, -1
}

// FindColumn returns the column with the given ID, its row and its index in
// that row. It returns nils and -1 if no column matches.
func (t *Tree) FindColumn(id string) (*Row, *Column, int) {
	for _, r := range t.Rows {
		if c, i := r.Column(id); c != nil {
			return r, c, i
		}
	}
	return nil, nil, -1
}

// FindField returns the field with the given ID, its row and column and its
// index in the column. It returns nils and -1 if no field matches.
func (t *Tree) FindField(id string) (*Row, *Column, *Field, int) {
	for _, r := range t.Rows {
		for _, c := range r.Columns {
			if f, i := c.Field(id); f != nil {
				return r, c, f, i
			}
		}
	}
	return nil, nil, nil, -1
}

// Node returns the field-shaped node (root element or field) with the given
// ID, if any.
func (t *Tree) Node(id string) (*Field, bool) {
	loc := t.Locate(id)
	if loc.Field == nil {
		return nil, false
	}
	return loc.Field, true
}

// Walk yields the location of every node: the root element first, then
// rows, columns and fields in document order.
func (t *Tree) Walk() iter.Seq[Location] {
	return func(yield func(Location) bool) {
		if t.Root != nil && !yield(Location{Kind: KindRoot, Field: t.Root}) {
			return
		}
		for i, r := range t.Rows {
			if !yield(Location{Kind: KindRow, Row: r, Index: i}) {
				return
			}
			for j, c := range r.Columns {
				if !yield(Location{Kind: KindColumn, Row: r, Column: c, Index: j}) {
					return
				}
				for k, f := range c.Fields {
					if !yield(Location{Kind: KindField, Row: r, Column: c, Field: f, Index: k}) {
						return
					}
				}
			}
		}
	}
}

// IDs yields the identifier of every node in Walk order.
func (t *Tree) IDs() iter.Seq[string] {
	return func(yield func(string) bool) {
		for loc := range t.Walk() {
			if !yield(loc.ID()) {
				return
			}
		}
	}
}

// ID returns the identifier of the located node.
func (l Location) ID() string {
	switch l.Kind {
	case KindRow:
		return l.Row.ID
	case KindColumn:
		return l.Column.ID
	case KindRoot, KindField:
		return l.Field.ID
	}
	return ""
}

// Fields yields every field in document order.
func (t *Tree) Fields() iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		for _, r := range t.Rows {
			for _, c := range r.Columns {
				for _, f := range c.Fields {
					if !yield(f) {
						return
					}
				}
			}
		}
	}
}

// Stats counts the nodes of a tree.
type Stats struct {
	Rows    int
	Columns int
	Fields  int
	Root    bool
}

// Total returns the number of nodes including the root element.
func (s Stats) Total() int {
	n := s.Rows + s.Columns + s.Fields
	if s.Root {
		n++
	}
	return n
}

// Stats returns node counts for t.
func (t *Tree) Stats() Stats {
	s := Stats{Rows: len(t.Rows), Root: t.Root != nil}
	for _, r := range t.Rows {
		s.Columns += len(r.Columns)
		for _, c := range r.Columns {
			s.Fields += len(c.Fields)
		}
	}
	return s
}
