package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/formgrid/pkg/layout"
)

// attr is one markup attribute. A bare attribute has no value.
type attr struct {
	key, val string
	bare     bool
}

type attrs []attr

// set appends key=val unless val is empty or key is not a valid
// attribute name.
func (a attrs) set(key, val string) attrs {
	if val == "" || !layout.ValidName(key) {
		return a
	}
	return append(a, attr{key: key, val: val})
}

// flag appends a bare attribute when on and not already present.
func (a attrs) flag(key string, on bool) attrs {
	if !on || !layout.ValidName(key) || a.has(key) {
		return a
	}
	return append(a, attr{key: key, bare: true})
}

func (a attrs) has(key string) bool {
	for _, x := range a {
		if x.key == key {
			return true
		}
	}
	return false
}

func (a attrs) String() string {
	var b strings.Builder
	for _, x := range a {
		b.WriteByte(' ')
		b.WriteString(x.key)
		if !x.bare {
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(x.val))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// writer accumulates indented markup.
type writer struct {
	b      strings.Builder
	indent string
	depth  int
}

func newWriter(opts Options) *writer {
	return &writer{indent: opts.Indent}
}

func (w *writer) line(s string) {
	if w.indent != "" {
		w.b.WriteString(strings.Repeat(w.indent, w.depth))
	}
	w.b.WriteString(s)
	if w.indent != "" {
		w.b.WriteByte('\n')
	}
}

func (w *writer) open(tag string, a attrs) {
	w.line("<" + tag + a.String() + ">")
	w.depth++
}

func (w *writer) close(tag string) {
	w.depth--
	w.line("</" + tag + ">")
}

// void writes an element without content, e.g. <input>.
func (w *writer) void(tag string, a attrs) {
	w.line("<" + tag + a.String() + ">")
}

// text writes an element with escaped text content on one line.
func (w *writer) text(tag string, a attrs, content string) {
	w.line("<" + tag + a.String() + ">" + html.EscapeString(content) + "</" + tag + ">")
}

func (w *writer) String() string { return w.b.String() }
