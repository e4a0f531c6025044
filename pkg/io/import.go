package io

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"slices"
	"time"

	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// Wire types use pointers so missing keys can be told apart from zero
// values.
type wireDocument struct {
	RootElement *wireField    `json:"rootElement"`
	Rows        *[]*wireRow   `json:"rows"`
	Metadata    *wireMetadata `json:"metadata"`
	Version     *string       `json:"version"` // legacy
}

type wireMetadata struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Version     string  `json:"version"`
	CreatedAt   *string `json:"createdAt"`
}

type wireRow struct {
	ID      *string        `json:"id"`
	Columns *[]*wireColumn `json:"columns"`
}

type wireColumn struct {
	ID     *string       `json:"id"`
	Width  *float64      `json:"width"`
	Fields *[]*wireField `json:"fields"`
}

type wireField struct {
	ID         *string                        `json:"id"`
	Type       *string                        `json:"type"`
	Properties map[string]any                 `json:"properties"`
	Meta       map[string]any                 `json:"meta"`
	Events     map[string]layout.EventBinding `json:"events"`
}

// ReadJSON decodes a snapshot from r, accepting the current and the legacy
// format. The whole document is validated first; on any problem ReadJSON
// returns a VALIDATION_FAILED error listing every violation and no
// snapshot. ReadJSON does not close r.
func ReadJSON(r io.Reader) (layout.Snapshot, error) {
	var doc wireDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return layout.Snapshot{}, errors.Wrap(errors.ErrCodeValidation, err, "decode snapshot")
	}

	v := validator{seen: map[string]string{}}
	s := v.document(&doc)
	if err := v.Err("snapshot"); err != nil {
		return layout.Snapshot{}, err
	}
	return s, nil
}

// ImportJSON reads a JSON file at path and returns the decoded snapshot.
// It returns the same validation errors as [ReadJSON].
func ImportJSON(path string) (layout.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return layout.Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// IsLegacy reports whether raw JSON uses the legacy layout: a top-level
// version and no rootElement key.
func IsLegacy(raw []byte) bool {
	var keys map[string]json.RawMessage
	if json.Unmarshal(raw, &keys) != nil {
		return false
	}
	_, hasVersion := keys["version"]
	_, hasRoot := keys["rootElement"]
	return hasVersion && !hasRoot
}

type validator struct {
	errors.Violations
	seen map[string]string // node id -> path of first use
}

func (v *validator) document(doc *wireDocument) layout.Snapshot {
	var s layout.Snapshot

	if doc.Metadata != nil {
		s.Metadata = v.metadata(doc.Metadata)
	}
	if doc.Version != nil && s.Metadata.Version == "" {
		s.Metadata.Version = *doc.Version
	}
	if s.Metadata.Version == "" {
		s.Metadata.Version = layout.FormatVersion
	}

	if doc.RootElement != nil {
		s.Root = v.field("rootElement", doc.RootElement)
	}

	if doc.Rows == nil {
		v.Addf("rows", "missing row array")
		return s
	}
	s.Rows = make([]*layout.Row, 0, len(*doc.Rows))
	for i, r := range *doc.Rows {
		if row := v.row(fmt.Sprintf("rows[%d]", i), r); row != nil {
			s.Rows = append(s.Rows, row)
		}
	}
	return s
}

func (v *validator) metadata(m *wireMetadata) layout.Metadata {
	out := layout.Metadata{ID: m.ID, Title: m.Title, Description: m.Description, Version: m.Version}
	if m.CreatedAt != nil && *m.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, *m.CreatedAt)
		if err != nil {
			v.Addf("metadata.createdAt", "not an RFC 3339 timestamp: %q", *m.CreatedAt)
		}
		out.CreatedAt = t
	}
	return out
}

func (v *validator) id(path string, id *string) string {
	if id == nil || *id == "" {
		v.Addf(path+".id", "missing id")
		return ""
	}
	if first, dup := v.seen[*id]; dup {
		v.Addf(path+".id", "duplicate id %q (first used at %s)", *id, first)
	} else {
		v.seen[*id] = path
	}
	return *id
}

func (v *validator) row(path string, r *wireRow) *layout.Row {
	if r == nil {
		v.Addf(path, "row is null")
		return nil
	}
	row := &layout.Row{ID: v.id(path, r.ID), Columns: []*layout.Column{}}
	if r.Columns == nil {
		v.Addf(path+".columns", "missing column array")
		return row
	}
	sized := true
	sum := 0
	for j, c := range *r.Columns {
		col := v.column(fmt.Sprintf("%s.columns[%d]", path, j), c)
		if col == nil || c.Width == nil || float64(col.Width) != *c.Width {
			sized = false
		}
		if col != nil {
			row.Columns = append(row.Columns, col)
			sum += col.Width
		}
	}
	switch n := len(*r.Columns); {
	case n > layout.MaxColumns:
		v.Addf(path+".columns", "%d columns exceed the maximum of %d", n, layout.MaxColumns)
	case n > 0 && sized && sum != layout.GridUnits:
		v.Addf(path+".columns", "column widths sum to %d, want %d", sum, layout.GridUnits)
	}
	return row
}

func (v *validator) column(path string, c *wireColumn) *layout.Column {
	if c == nil {
		v.Addf(path, "column is null")
		return nil
	}
	col := &layout.Column{ID: v.id(path, c.ID), Fields: []*layout.Field{}}
	switch {
	case c.Width == nil:
		v.Addf(path+".width", "missing numeric width")
	case *c.Width != math.Trunc(*c.Width) || *c.Width < 0 || *c.Width > layout.GridUnits:
		v.Addf(path+".width", "width %v is not a whole number of grid units between 0 and %d", *c.Width, layout.GridUnits)
	default:
		col.Width = int(*c.Width)
	}
	if c.Fields == nil {
		v.Addf(path+".fields", "missing field array")
		return col
	}
	for k, f := range *c.Fields {
		if field := v.field(fmt.Sprintf("%s.fields[%d]", path, k), f); field != nil {
			col.Fields = append(col.Fields, field)
		}
	}
	return col
}

func (v *validator) field(path string, f *wireField) *layout.Field {
	if f == nil {
		v.Addf(path, "field is null")
		return nil
	}
	out := &layout.Field{
		ID:         v.id(path, f.ID),
		Properties: f.Properties,
		Meta:       f.Meta,
		Events:     f.Events,
	}
	if f.Type == nil || *f.Type == "" {
		v.Addf(path+".type", "missing type key")
	} else {
		out.Type = *f.Type
	}
	if f.Properties == nil {
		v.Addf(path+".properties", "missing property object")
		out.Properties = map[string]any{}
	}
	for _, k := range slices.Sorted(maps.Keys(out.Properties)) {
		if !layout.ValidName(k) {
			v.Addf(path+".properties", "%q is not a valid attribute name", k)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(out.Events)) {
		if !layout.ValidName(k) {
			v.Addf(path+".events", "%q is not a valid event name", k)
		}
	}
	return out
}
