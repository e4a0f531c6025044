package layout

import (
	"fmt"
	"regexp"
	"time"
)

// GridUnits is the number of width units a row's columns always sum to.
const GridUnits = 12

// MaxColumns is the maximum number of columns in a row. Each column needs at
// least one grid unit.
const MaxColumns = GridUnits

// Sections a field's attributes are split into.
const (
	SectionProperties = "properties"
	SectionMeta       = "meta"
	SectionEvents     = "events"
)

// Well-known property and meta keys.
const (
	PropID      = "id"
	PropName    = "name"
	PropType    = "type"
	MetaLabel   = "label"
	MetaHelper  = "helper"
	MetaContent = "content"
)

var attrName = regexp.MustCompile(`^[A-Za-z_:][-A-Za-z0-9_:.]*$`)

// ValidName reports whether name can be written as a markup attribute name.
// Property keys and event names must satisfy it.
func ValidName(name string) bool { return attrName.MatchString(name) }

// NodeKind identifies which level of the tree a node lives on.
type NodeKind int

const (
	KindNone NodeKind = iota
	KindRoot
	KindRow
	KindColumn
	KindField
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	case KindField:
		return "field"
	default:
		return "none"
	}
}

// EventBinding attaches an action to a named field event (e.g. "click").
type EventBinding struct {
	Action string         `json:"action"`
	Target string         `json:"target,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// Field is a leaf node: one control or content element.
type Field struct {
	ID         string                  `json:"id"`
	Type       string                  `json:"type"` // element type key
	Properties map[string]any          `json:"properties"`
	Meta       map[string]any          `json:"meta,omitempty"`
	Events     map[string]EventBinding `json:"events,omitempty"`
}

// Property returns a property value and whether it is set.
func (f *Field) Property(name string) (any, bool) {
	v, ok := f.Properties[name]
	return v, ok
}

// PropertyString returns a property formatted as a string, or "" if unset.
func (f *Field) PropertyString(name string) string {
	return stringify(f.Properties[name])
}

// MetaString returns a meta attribute formatted as a string, or "" if unset.
func (f *Field) MetaString(name string) string {
	return stringify(f.Meta[name])
}

// Label returns the label meta attribute.
func (f *Field) Label() string { return f.MetaString(MetaLabel) }

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	default:
		return fmt.Sprint(s)
	}
}

// Column is a vertical slot in a row holding fields.
type Column struct {
	ID     string   `json:"id"`
	Width  int      `json:"width"`
	Fields []*Field `json:"fields"`
}

// Row is a horizontal band of columns.
type Row struct {
	ID      string    `json:"id"`
	Columns []*Column `json:"columns"`
}

// Metadata describes a serialized tree.
type Metadata struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Version     string    `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FormatVersion is the snapshot format version written by this package.
const FormatVersion = "2.0"

// Tree is a layout: an ordered row sequence plus an optional root element.
// The zero value is an empty, usable tree.
type Tree struct {
	Root *Field
	Rows []*Row
}

// New creates an empty tree.
func New() *Tree { return &Tree{} }

// Snapshot is a detached copy of a tree together with its metadata.
type Snapshot struct {
	Root     *Field
	Rows     []*Row
	Metadata Metadata
}

// Tree returns a new tree built from a deep copy of the snapshot.
func (s Snapshot) Tree() *Tree {
	return &Tree{Root: cloneField(s.Root), Rows: CloneRows(s.Rows)}
}

// Snapshot returns a deep copy of t with the given metadata.
// Empty metadata versions default to FormatVersion.
func (t *Tree) Snapshot(meta Metadata) Snapshot {
	if meta.Version == "" {
		meta.Version = FormatVersion
	}
	return Snapshot{Root: cloneField(t.Root), Rows: CloneRows(t.Rows), Metadata: meta}
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	return &Tree{Root: cloneField(t.Root), Rows: CloneRows(t.Rows)}
}
