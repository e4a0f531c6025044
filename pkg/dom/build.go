package dom

import "github.com/matzehuels/formgrid/pkg/layout"

// PanelRegion names the property panel exception region.
const PanelRegion = "property-panel"

// Geometry controls how Build sizes elements.
type Geometry struct {
	Width       float64 // canvas width
	FieldHeight float64
	RowPadding  float64 // vertical padding inside a row, above and below its columns
	RootHeight  float64
	DropSpace   float64 // empty canvas below the last row
	HandleSize  float64
	PanelWidth  float64
	PanelGap    float64
}

// DefaultGeometry returns the geometry used by the terminal designer and the
// tests: a 1200 unit canvas, so one grid unit is 100 wide.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:       1200,
		FieldHeight: 40,
		RowPadding:  10,
		RootHeight:  40,
		DropSpace:   80,
		HandleSize:  10,
		PanelWidth:  300,
		PanelGap:    20,
	}
}

// Document is a mirrored host document.
type Document struct {
	Host   *Element
	Canvas *Element
	Panel  *Element
}

// Build mirrors t into a fresh document. Rows are stacked top to bottom; a
// row is tall enough for its fullest column. Column widths are proportional
// to their grid units. The root element, if any, follows the rows.
func Build(t *layout.Tree, g Geometry) *Document {
	canvas := New(KindCanvas, "", Rect{W: g.Width})
	canvas.Name = "canvas"

	y := 0.0
	for _, r := range t.Rows {
		y += buildRow(canvas, r, y, g)
	}
	if t.Root != nil {
		root := canvas.Append(New(KindRoot, t.Root.ID, Rect{Y: y, W: g.Width, H: g.RootHeight}))
		addHandle(root, g)
		y += g.RootHeight
	}
	canvas.Rect.H = y + g.DropSpace

	panel := New(KindPanel, "", Rect{X: g.Width + g.PanelGap, W: g.PanelWidth, H: canvas.Rect.H})
	panel.Name = PanelRegion

	host := New(KindHost, "", Rect{W: panel.Rect.X + panel.Rect.W, H: canvas.Rect.H})
	host.Name = "document"
	host.Append(canvas)
	host.Append(panel)

	return &Document{Host: host, Canvas: canvas, Panel: panel}
}

func buildRow(canvas *Element, r *layout.Row, y float64, g Geometry) float64 {
	slots := 1
	for _, c := range r.Columns {
		slots = max(slots, len(c.Fields))
	}
	inner := float64(slots) * g.FieldHeight
	h := inner + 2*g.RowPadding

	row := canvas.Append(New(KindRow, r.ID, Rect{Y: y, W: g.Width, H: h}))
	addHandle(row, g)

	unit := g.Width / layout.GridUnits
	x := 0.0
	for _, c := range r.Columns {
		w := float64(c.Width) * unit
		col := row.Append(New(KindColumn, c.ID, Rect{X: x, Y: y + g.RowPadding, W: w, H: inner}))
		addHandle(col, g)
		for i, f := range c.Fields {
			fy := col.Rect.Y + float64(i)*g.FieldHeight
			field := col.Append(New(KindField, f.ID, Rect{X: x, Y: fy, W: w, H: g.FieldHeight}))
			addHandle(field, g)
		}
		x += w
	}
	return h
}

func addHandle(e *Element, g Geometry) {
	if g.HandleSize <= 0 {
		return
	}
	e.Append(New(KindHandle, e.NodeID, Rect{X: e.Rect.X, Y: e.Rect.Y, W: g.HandleSize, H: g.HandleSize}))
}
