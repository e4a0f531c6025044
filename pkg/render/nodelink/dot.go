package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// rootNode is the DOT id of the diagram's entry node.
const rootNode = "layout"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes field properties in node labels.
	// When false, fields show their id and type only.
	Detailed bool

	// Registry, when set, marks fields whose type it does not know with
	// dashed outlines.
	Registry *element.Registry
}

// ToDOT converts a layout snapshot to Graphviz DOT format. Edges run from
// the layout to its rows, from rows to columns and from columns to fields;
// the root element hangs off the layout node with a dashed edge.
func ToDOT(s layout.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	title := s.Metadata.Title
	if title == "" {
		title = rootNode
	}
	fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, fillcolor=lightyellow];\n", rootNode, title)

	var edges []string
	if s.Root != nil {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", s.Root.ID, s.Root.ID+"\n"+s.Root.Type)
		edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed];", rootNode, s.Root.ID))
	}
	for _, r := range s.Rows {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box3d];\n", r.ID, r.ID)
		edges = append(edges, fmt.Sprintf("  %q -> %q;", rootNode, r.ID))
		for _, c := range r.Columns {
			fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=whitesmoke];\n", c.ID, fmt.Sprintf("%s\nwidth %d/%d", c.ID, c.Width, layout.GridUnits))
			edges = append(edges, fmt.Sprintf("  %q -> %q;", r.ID, c.ID))
			for _, f := range c.Fields {
				fmt.Fprintf(&buf, "  %q [%s];\n", f.ID, strings.Join(fmtAttrs(f, opts), ", "))
				edges = append(edges, fmt.Sprintf("  %q -> %q;", c.ID, f.ID))
			}
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(f *layout.Field, detailed bool) string {
	head := f.ID + "\n" + f.Type
	if !detailed {
		return head
	}

	var parts []string
	for _, k := range slices.Sorted(maps.Keys(f.Properties)) {
		if v := f.PropertyString(k); v != "" && k != layout.PropID {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v))
		}
	}
	if len(parts) == 0 {
		return head
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(f *layout.Field, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(f, opts.Detailed))}
	if opts.Registry != nil && !opts.Registry.Has(f.Type) {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root <svg> tag with one whose viewBox starts
// at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
