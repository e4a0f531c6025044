// Package nodelink renders the structure of a layout as a node-link diagram.
//
// The diagram has one node for the layout, one per row, column and field,
// and one for the root element. It shows the shape of a tree at a glance,
// independent of any markup strategy.
//
//	dot := nodelink.ToDOT(tree.Snapshot(meta), nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] produces plain Graphviz DOT source that can also be fed to
// external Graphviz tools. [RenderSVG] renders it in-process with
// [github.com/goccy/go-graphviz].
package nodelink
