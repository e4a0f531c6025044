// Package render turns layout trees into markup.
//
// # Overview
//
// A [Renderer] maps a tree snapshot, or one of its rows, columns or fields,
// to a markup string. Renderers are pure: they never modify what they are
// given. Four strategies ship with the package:
//
//   - html: minimal markup with a handful of structural classes
//   - bootstrap: Bootstrap 5 grid and form-control classes
//   - tailwind: Tailwind CSS utility classes on a 12 column grid
//   - preview: disabled, non-interactive markup for visual feedback
//
// Every renderer also offers [Renderer.RenderPreview], which renders the
// same layout with controls disabled and event bindings dropped.
//
// # Factory
//
// A [Factory] resolves strategies by name and returns a fresh instance on
// every lookup:
//
//	f := render.NewFactory(element.Default())
//	r, err := f.New("bootstrap")
//	if err != nil {
//	    return err // UNKNOWN_RENDERER, lists the registered names
//	}
//	out := r.RenderForm(tree.Snapshot(layout.Metadata{}), render.DefaultOptions())
//
// New strategies are added with [Factory.Register].
//
// # Field Dispatch
//
// Field markup is chosen by a table keyed on the element's markup tag and,
// for the generic input and button tags, its type property. A pair with no
// handler renders a visible placeholder instead of failing, so one unknown
// field never aborts a whole document.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws the structure of a tree (rows, columns,
// fields) as a Graphviz diagram.
//
// [nodelink]: github.com/matzehuels/formgrid/pkg/render/nodelink
package render
