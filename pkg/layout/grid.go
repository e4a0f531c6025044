package layout

// Redistribute assigns column widths so they sum to GridUnits.
// Each column gets GridUnits/n units and the first GridUnits%n columns, in
// order, one more. A row without columns is left alone.
func (r *Row) Redistribute() {
	n := len(r.Columns)
	if n == 0 {
		return
	}
	base, extra := GridUnits/n, GridUnits%n
	for i, c := range r.Columns {
		c.Width = base
		if i < extra {
			c.Width++
		}
	}
}

// TotalWidth returns the sum of the row's column widths.
func (r *Row) TotalWidth() int {
	total := 0
	for _, c := range r.Columns {
		total += c.Width
	}
	return total
}

// Full reports whether no further column fits in the row.
func (r *Row) Full() bool { return len(r.Columns) >= MaxColumns }

// Column returns the column with the given ID and its index, or nil and -1.
func (r *Row) Column(id string) (*Column, int) {
	for i, c := range r.Columns {
		if c.ID == id {
			return c, i
		}
	}
	return nil, -1
}

// Field returns the field with the given ID and its index, or nil and -1.
func (c *Column) Field(id string) (*Field, int) {
	for i, f := range c.Fields {
		if f.ID == id {
			return f, i
		}
	}
	return nil, -1
}
