package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// Built-in strategy names.
const (
	HTML      = "html"
	Bootstrap = "bootstrap"
	Tailwind  = "tailwind"
	Preview   = "preview"
)

// Options control rendering.
type Options struct {
	// IncludeLabels emits <label> elements for input-capable fields.
	IncludeLabels bool
	// Indent is repeated once per nesting level. Empty produces compact
	// output on a single line.
	Indent string
}

// DefaultOptions returns labelled, two-space indented output.
func DefaultOptions() Options {
	return Options{IncludeLabels: true, Indent: "  "}
}

// Renderer maps layout nodes to one markup dialect.
type Renderer interface {
	// Name returns the strategy name the renderer was registered under.
	Name() string
	RenderField(f *layout.Field, opts Options) string
	RenderColumn(c *layout.Column, opts Options) string
	RenderRow(r *layout.Row, opts Options) string
	// RenderForm renders every row followed by the root element, if any.
	RenderForm(s layout.Snapshot, opts Options) string
	// RenderPreview renders like RenderForm with every control disabled
	// and no event bindings.
	RenderPreview(s layout.Snapshot, opts Options) string
}

// Constructor builds a renderer that resolves element types through reg.
type Constructor func(reg *element.Registry) Renderer

// Factory resolves renderer strategies by name.
// Factory is not safe for concurrent use.
type Factory struct {
	registry *element.Registry
	ctors    map[string]Constructor
}

// NewFactory creates a factory with the built-in strategies registered.
// A nil registry uses element.Default.
func NewFactory(reg *element.Registry) *Factory {
	if reg == nil {
		reg = element.Default()
	}
	return &Factory{
		registry: reg,
		ctors: map[string]Constructor{
			HTML:      NewHTML,
			Bootstrap: NewBootstrap,
			Tailwind:  NewTailwind,
			Preview:   NewPreview,
		},
	}
}

// SetRegistry changes the element registry handed to renderers created
// from now on.
func (f *Factory) SetRegistry(reg *element.Registry) {
	if reg != nil {
		f.registry = reg
	}
}

// New returns a fresh renderer for name. Unknown names fail with
// UNKNOWN_RENDERER and the error lists the registered names.
func (f *Factory) New(name string) (Renderer, error) {
	ctor, ok := f.ctors[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownRenderer,
			"unknown renderer %q (registered: %s)", name, strings.Join(f.Names(), ", "))
	}
	return ctor(f.registry), nil
}

// Register adds a strategy. It fails with DUPLICATE if name is taken and
// with INVALID_INPUT for an empty name or nil constructor.
func (f *Factory) Register(name string, ctor Constructor) error {
	if name == "" || ctor == nil {
		return errors.New(errors.ErrCodeInvalidInput, "renderer needs a name and a constructor")
	}
	if _, ok := f.ctors[name]; ok {
		return errors.Duplicate("renderer %q already registered", name)
	}
	f.ctors[name] = ctor
	return nil
}

// Has reports whether name is registered.
func (f *Factory) Has(name string) bool {
	_, ok := f.ctors[name]
	return ok
}

// Names returns the registered strategy names in sorted order.
func (f *Factory) Names() []string {
	names := make([]string, 0, len(f.ctors))
	for n := range f.ctors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
