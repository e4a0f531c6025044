package render

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// NodeAttr carries the layout node id on the outermost element of every
// row, column and field.
const NodeAttr = "data-node"

// markup is the shared implementation behind the built-in strategies. The
// strategies differ only in their dialect.
type markup struct {
	name        string
	dialect     Dialect
	registry    *element.Registry
	handlers    map[fieldKey]fieldHandler
	previewOnly bool
}

func newMarkup(name string, d Dialect, reg *element.Registry, previewOnly bool) *markup {
	if reg == nil {
		reg = element.Default()
	}
	return &markup{
		name:        name,
		dialect:     d,
		registry:    reg,
		handlers:    defaultHandlers(),
		previewOnly: previewOnly,
	}
}

// NewHTML returns the minimal markup strategy.
func NewHTML(reg *element.Registry) Renderer { return newMarkup(HTML, htmlDialect, reg, false) }

// NewBootstrap returns the Bootstrap 5 strategy.
func NewBootstrap(reg *element.Registry) Renderer {
	return newMarkup(Bootstrap, bootstrapDialect, reg, false)
}

// NewTailwind returns the Tailwind CSS strategy.
func NewTailwind(reg *element.Registry) Renderer {
	return newMarkup(Tailwind, tailwindDialect, reg, false)
}

// NewPreview returns the preview strategy; all of its output is disabled.
func NewPreview(reg *element.Registry) Renderer { return newMarkup(Preview, previewDialect, reg, true) }

// NewDialect returns a strategy named name that renders with d. It is the
// simplest way to register a custom class convention:
//
//	f.Register("bulma", func(reg *element.Registry) render.Renderer {
//	    return render.NewDialect("bulma", bulma, reg)
//	})
func NewDialect(name string, d Dialect, reg *element.Registry) Renderer {
	return newMarkup(name, d, reg, false)
}

func (m *markup) Name() string { return m.name }

func (m *markup) RenderField(f *layout.Field, opts Options) string {
	p := m.begin(opts, m.previewOnly)
	p.field(f)
	return p.w.String()
}

func (m *markup) RenderColumn(c *layout.Column, opts Options) string {
	p := m.begin(opts, m.previewOnly)
	p.column(c)
	return p.w.String()
}

func (m *markup) RenderRow(r *layout.Row, opts Options) string {
	p := m.begin(opts, m.previewOnly)
	p.row(r)
	return p.w.String()
}

func (m *markup) RenderForm(s layout.Snapshot, opts Options) string {
	p := m.begin(opts, m.previewOnly)
	p.document(s)
	return p.w.String()
}

func (m *markup) RenderPreview(s layout.Snapshot, opts Options) string {
	p := m.begin(opts, true)
	p.document(s)
	return p.w.String()
}

// pass is the state of one render call.
type pass struct {
	*markup
	w        *writer
	opts     Options
	disabled bool
	node     string // pending data-node value for the next outer element
}

func (m *markup) begin(opts Options, disabled bool) *pass {
	return &pass{markup: m, w: newWriter(opts), opts: opts, disabled: disabled}
}

func (p *pass) document(s layout.Snapshot) {
	d := p.dialect
	class := d.Container
	if p.disabled {
		class = joinClass(class, d.PreviewClass)
	}
	if class != "" {
		p.w.open("div", attrs{}.set("class", class))
		defer p.w.close("div")
	}
	for _, r := range s.Rows {
		p.row(r)
	}
	if s.Root != nil {
		p.root(s.Root)
	}
}

func (p *pass) row(r *layout.Row) {
	p.w.open("div", attrs{}.set("class", p.dialect.Row).set(NodeAttr, r.ID))
	for _, c := range r.Columns {
		p.column(c)
	}
	p.w.close("div")
}

func (p *pass) column(c *layout.Column) {
	a := attrs{}.
		set("class", p.dialect.columnClass(c.Width)).
		set(NodeAttr, c.ID).
		set("data-width", strconv.Itoa(c.Width))
	p.w.open("div", a)
	for _, f := range c.Fields {
		p.field(f)
	}
	p.w.close("div")
}

// root renders the root element as a form holding its submit button.
func (p *pass) root(f *layout.Field) {
	p.node = f.ID
	a := p.outer(p.propertyAttrs(f).set("class", p.dialect.Form))
	a = p.eventAttrs(a, f)
	p.w.open("form", a)
	if label := f.Label(); label != "" {
		b := attrs{}.set("type", "submit").set("class", p.dialect.buttonClass("submit")).flag("disabled", p.disabled)
		p.w.text("button", b, label)
	}
	p.w.close("form")
}

func (p *pass) field(f *layout.Field) {
	p.node = f.ID
	h := placeholderField
	if def, ok := p.registry.Get(f.Type); ok {
		if fh, ok := p.handlers[keyFor(def.Tag, f)]; ok {
			h = fh
		}
	}
	h(p, f)
	p.node = ""
}

// outer adds the pending data-node attribute, once.
func (p *pass) outer(a attrs) attrs {
	if p.node == "" {
		return a
	}
	a = a.set(NodeAttr, p.node)
	p.node = ""
	return a
}

// reserved properties are never copied verbatim into attributes.
var reserved = []string{"options", "class", "style", NodeAttr}

// propertyAttrs converts a field's properties to attributes: id, name and
// type first, the rest sorted. true booleans become bare attributes; false
// booleans, empty values and lists are dropped. Keys in skip are left out.
func (p *pass) propertyAttrs(f *layout.Field, skip ...string) attrs {
	keys := make([]string, 0, len(f.Properties))
	for k := range f.Properties {
		if !slices.Contains(skip, k) && !slices.Contains(reserved, k) {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		ra, rb := attrRank(a), attrRank(b)
		if ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})

	var a attrs
	for _, k := range keys {
		switch v := f.Properties[k].(type) {
		case bool:
			a = a.flag(k, v)
		case []any, []string, map[string]any:
		default:
			a = a.set(k, f.PropertyString(k))
		}
	}
	return a
}

func attrRank(k string) int {
	switch k {
	case layout.PropID:
		return 0
	case layout.PropName:
		return 1
	case layout.PropType:
		return 2
	default:
		return 3
	}
}

// eventAttrs adds data-on-<event> attributes for every bound event. Preview
// output carries no bindings.
func (p *pass) eventAttrs(a attrs, f *layout.Field) attrs {
	if p.disabled || len(f.Events) == 0 {
		return a
	}
	names := make([]string, 0, len(f.Events))
	for n := range f.Events {
		if layout.ValidName(n) {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	for _, n := range names {
		b := f.Events[n]
		if b.Action == "" {
			continue
		}
		a = a.set("data-on-"+n, b.Action).set("data-on-"+n+"-target", b.Target)
		if len(b.Params) > 0 {
			if raw, err := json.Marshal(b.Params); err == nil {
				a = a.set("data-on-"+n+"-params", string(raw))
			}
		}
	}
	return a
}

func joinClass(classes ...string) string {
	var out []string
	for _, c := range classes {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}
