// Package pkg provides the core libraries for formgrid, a grid form designer.
//
// # Overview
//
// A form is a tree of rows, columns and fields laid out on a twelve unit
// grid. The pkg directory is organized bottom-up:
//
//  1. [layout], [ident], [element] - The tree model, id allocation and the
//     element catalog fields are created from
//  2. [engine] - Structural operations (insert, move, delete) that keep the
//     grid invariants
//  3. [dom], [scope], [drag] - A mirrored element tree, instance scoping and
//     the drag-and-drop state machine
//  4. [render], [render/nodelink] - Markup dialects and Graphviz diagrams
//  5. [designer] - One editable form bound to a container
//  6. [io], [pipeline], [cache], [config] - Snapshots, cached rendering and
//     settings for the CLI
//
// # Architecture
//
// The typical data flow through formgrid:
//
//	drag gesture or edit call
//	         ↓
//	    [drag] controller (resolve target, check scope)
//	         ↓
//	    [engine] (mutate the tree, redistribute widths)
//	         ↓
//	    [designer] (rebuild [dom], notify observers)
//	         ↓
//	    [render] (HTML, Bootstrap, Tailwind or preview markup)
//
// # Quick Start
//
// Build a form and render it:
//
//	d, _ := designer.New(dom.New(dom.KindHost, "", dom.Rect{}), designer.Options{})
//	r := d.CreateRow()
//	d.CreateField("input-email", r.Columns[0].ID)
//	d.CreateRootElement()
//	fmt.Println(d.Render())
//
// Snapshots round-trip through JSON:
//
//	d.ExportFile("signup.json")
//	s, _ := io.ImportJSON("signup.json")
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/layout
// [ident]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/ident
// [element]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/element
// [engine]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/engine
// [dom]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/dom
// [scope]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/scope
// [drag]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/drag
// [render]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/render/nodelink
// [designer]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/designer
// [io]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/formgrid/pkg/config
package pkg
