// Package dom models the host document a designer is embedded in.
//
// The designer never talks to a real rendering host. Instead the host is
// described by a small tree of [Element] values, each with a [Kind], an
// optional layout node identifier and a bounding [Rect]. The drag
// controller resolves pointer positions against this tree with
// [Element.ElementAt] and walks up with [Element.Closest]; the scope guard
// checks ancestry through [Element.Parent].
//
// [Build] mirrors a layout tree into elements: a canvas container holding
// one element per row, column and field, stacked the way a 12-unit grid
// lays them out, next to a property panel region.
//
//	doc := dom.Build(tree, dom.DefaultGeometry())
//	el := doc.Host.ElementAt(dom.Point{X: 120, Y: 40})
//	if col := el.Closest(dom.KindColumn); col != nil {
//	    fmt.Println(col.NodeID)
//	}
package dom
