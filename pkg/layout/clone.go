package layout

import "maps"

// CloneRows returns a deep copy of rows.
func CloneRows(rows []*Row) []*Row {
	if rows == nil {
		return nil
	}
	out := make([]*Row, len(rows))
	for i, r := range rows {
		out[i] = cloneRow(r)
	}
	return out
}

func cloneRow(r *Row) *Row {
	out := &Row{ID: r.ID, Columns: make([]*Column, len(r.Columns))}
	for i, c := range r.Columns {
		out.Columns[i] = cloneColumn(c)
	}
	return out
}

func cloneColumn(c *Column) *Column {
	out := &Column{ID: c.ID, Width: c.Width, Fields: make([]*Field, len(c.Fields))}
	for i, f := range c.Fields {
		out.Fields[i] = cloneField(f)
	}
	return out
}

// CloneField returns a deep copy of f, or nil if f is nil.
func CloneField(f *Field) *Field { return cloneField(f) }

func cloneField(f *Field) *Field {
	if f == nil {
		return nil
	}
	out := &Field{
		ID:         f.ID,
		Type:       f.Type,
		Properties: CloneValues(f.Properties),
		Meta:       CloneValues(f.Meta),
	}
	if out.Properties == nil {
		out.Properties = map[string]any{}
	}
	if f.Events != nil {
		out.Events = make(map[string]EventBinding, len(f.Events))
		for k, e := range f.Events {
			out.Events[k] = EventBinding{Action: e.Action, Target: e.Target, Params: CloneValues(e.Params)}
		}
	}
	return out
}

// CloneValues deep-copies a map of JSON-like values. Nested maps and slices
// are copied; other values are shared.
func CloneValues(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := maps.Clone(m)
	for k, v := range out {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return CloneValues(x)
	case []any:
		s := make([]any, len(x))
		for i, e := range x {
			s[i] = cloneValue(e)
		}
		return s
	case []string:
		return append([]string(nil), x...)
	default:
		return v
	}
}
