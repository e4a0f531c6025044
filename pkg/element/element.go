// Package element provides the catalog of element type definitions that
// fields are created from.
//
// A [Definition] describes one draggable kind: the markup tag renderers
// dispatch on, a category used by the toolbox, a human label and the
// default values a new field's properties, meta attributes and event
// bindings are seeded with. Definitions are read-only to the rest of the
// system; a [Registry] serves them by type key.
//
// # Catalogs
//
// [Default] returns the built-in catalog, decoded from an embedded TOML
// file. Hosts can load their own catalogs with [LoadFile] or [Decode]:
//
//	[element.input-color]
//	id = "input-color"
//	tag = "input"
//	category = "input"
//	label = "Colour picker"
//	properties = { id = "", name = "", type = "color", value = "#000000" }
//	meta = { label = "" }
//
// [Registry.Replace] validates a whole catalog before accepting it and
// rejects it wholesale on the first structural problem, so a registry never
// holds a half-replaced catalog.
package element

import (
	"maps"
	"slices"
	"sort"

	"github.com/matzehuels/formgrid/pkg/layout"
)

// Categories group definitions in the toolbox.
const (
	CategoryLayout  = "layout"
	CategoryRoot    = "root"
	CategoryInput   = "input"
	CategoryChoice  = "choice"
	CategoryContent = "content"
	CategoryAction  = "action"
)

// Type keys with structural meaning.
const (
	KeyRow    = "row"
	KeyColumn = "column"
	KeyForm   = "form"
)

// EventDefault is the default binding of one event in a definition.
type EventDefault struct {
	Action string `toml:"action" json:"action"`
	Target string `toml:"target" json:"target,omitempty"`
}

// Definition describes one element kind.
type Definition struct {
	ID         string                  `toml:"id" json:"id"`
	Tag        string                  `toml:"tag" json:"tag"`
	Category   string                  `toml:"category" json:"category"`
	Label      string                  `toml:"label" json:"label"`
	Properties map[string]any          `toml:"properties" json:"properties,omitempty"`
	Meta       map[string]any          `toml:"meta" json:"meta,omitempty"`
	Events     map[string]EventDefault `toml:"events" json:"events,omitempty"`
}

// InputCapable reports whether fields of this kind accept user input and so
// get a label seeded with their identifier.
func (d Definition) InputCapable() bool {
	return d.Category == CategoryInput || d.Category == CategoryChoice
}

// IsLayout reports whether the definition is a structural row or column.
func (d Definition) IsLayout() bool { return d.Category == CategoryLayout }

// IsRoot reports whether the definition describes a root element.
func (d Definition) IsRoot() bool { return d.Category == CategoryRoot }

// HasProperty reports whether the property schema defines name.
func (d Definition) HasProperty(name string) bool {
	_, ok := d.Properties[name]
	return ok
}

// HasMeta reports whether the meta schema defines name.
func (d Definition) HasMeta(name string) bool {
	_, ok := d.Meta[name]
	return ok
}

// NewField builds a field with id whose maps are seeded from the schema
// defaults. The id property, and the name property when the schema has
// one, are set to id. Input-capable kinds with a label in their meta schema
// get id as their label.
func (d Definition) NewField(id string) *layout.Field {
	f := &layout.Field{
		ID:         id,
		Type:       d.ID,
		Properties: layout.CloneValues(d.Properties),
		Meta:       layout.CloneValues(d.Meta),
	}
	if f.Properties == nil {
		f.Properties = map[string]any{}
	}
	f.Properties[layout.PropID] = id
	if d.HasProperty(layout.PropName) {
		f.Properties[layout.PropName] = id
	}
	if d.InputCapable() && d.HasMeta(layout.MetaLabel) {
		f.Meta[layout.MetaLabel] = id
	}
	if len(d.Events) > 0 {
		f.Events = make(map[string]layout.EventBinding, len(d.Events))
		for name, e := range d.Events {
			f.Events[name] = layout.EventBinding{Action: e.Action, Target: e.Target}
		}
	}
	return f
}

// Registry serves definitions by type key.
// Registry is not safe for concurrent use.
type Registry struct {
	defs map[string]Definition
}

// New creates a registry from defs keyed by their IDs.
// It returns a VALIDATION_FAILED error if any definition is malformed.
func New(defs ...Definition) (*Registry, error) {
	m := make(map[string]Definition, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	r := &Registry{defs: map[string]Definition{}}
	if err := r.Replace(m); err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns the definition for key.
func (r *Registry) Get(key string) (Definition, bool) {
	d, ok := r.defs[key]
	return d, ok
}

// Has reports whether key is defined.
func (r *Registry) Has(key string) bool {
	_, ok := r.defs[key]
	return ok
}

// Len returns the number of definitions.
func (r *Registry) Len() int { return len(r.defs) }

// Keys returns all type keys in sorted order.
func (r *Registry) Keys() []string {
	return slices.Sorted(maps.Keys(r.defs))
}

// ByCategory returns the definitions of one category sorted by key.
func (r *Registry) ByCategory(category string) []Definition {
	var out []Definition
	for _, k := range r.Keys() {
		if d := r.defs[k]; d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns the distinct categories in the registry, sorted.
func (r *Registry) Categories() []string {
	seen := map[string]bool{}
	for _, d := range r.defs {
		seen[d.Category] = true
	}
	out := slices.Collect(maps.Keys(seen))
	sort.Strings(out)
	return out
}

// Replace swaps the whole catalog for defs after validating it.
// When validation fails the registry keeps its previous catalog.
func (r *Registry) Replace(defs map[string]Definition) error {
	if err := Validate(defs); err != nil {
		return err
	}
	next := make(map[string]Definition, len(defs))
	for k, d := range defs {
		d.Properties = normalizeValues(layout.CloneValues(d.Properties))
		d.Meta = normalizeValues(layout.CloneValues(d.Meta))
		next[k] = d
	}
	r.defs = next
	return nil
}
