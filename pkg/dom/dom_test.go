package dom

import (
	"testing"

	"github.com/matzehuels/formgrid/pkg/layout"
)

func sampleTree() *layout.Tree {
	return &layout.Tree{
		Root: &layout.Field{ID: "form-1", Type: "form"},
		Rows: []*layout.Row{
			{ID: "row-1", Columns: []*layout.Column{
				{ID: "column-1", Width: 6, Fields: []*layout.Field{
					{ID: "input-text-1", Type: "input-text"},
					{ID: "input-text-2", Type: "input-text"},
				}},
				{ID: "column-2", Width: 6},
			}},
			{ID: "row-2", Columns: []*layout.Column{{ID: "column-3", Width: 12}}},
			{ID: "row-3"},
		},
	}
}

func TestBuildGeometry(t *testing.T) {
	doc := Build(sampleTree(), DefaultGeometry())

	tests := []struct {
		id   string
		kind Kind
		want Rect
	}{
		{"row-1", KindRow, Rect{X: 0, Y: 0, W: 1200, H: 100}},
		{"column-1", KindColumn, Rect{X: 0, Y: 10, W: 600, H: 80}},
		{"column-2", KindColumn, Rect{X: 600, Y: 10, W: 600, H: 80}},
		{"input-text-2", KindField, Rect{X: 0, Y: 50, W: 600, H: 40}},
		{"row-2", KindRow, Rect{X: 0, Y: 100, W: 1200, H: 60}},
		{"row-3", KindRow, Rect{X: 0, Y: 160, W: 1200, H: 60}},
		{"form-1", KindRoot, Rect{X: 0, Y: 220, W: 1200, H: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			el := doc.Canvas.Find(tt.id)
			if el == nil {
				t.Fatalf("element %q not built", tt.id)
			}
			if el.Kind != tt.kind || el.Rect != tt.want {
				t.Errorf("got %v %+v, want %v %+v", el.Kind, el.Rect, tt.kind, tt.want)
			}
		})
	}

	if doc.Canvas.Rect.H != 340 {
		t.Errorf("canvas height = %v, want 340", doc.Canvas.Rect.H)
	}
	if doc.Panel.Name != PanelRegion || doc.Panel.Parent() != doc.Host {
		t.Errorf("panel = %v parent %v", doc.Panel, doc.Panel.Parent())
	}
	if doc.Canvas.Parent() != doc.Host {
		t.Error("canvas should be a child of the host")
	}
}

func TestElementAt(t *testing.T) {
	doc := Build(sampleTree(), DefaultGeometry())

	tests := []struct {
		name string
		p    Point
		want string
	}{
		{"field body", Point{X: 300, Y: 60}, "field#input-text-2"},
		{"field handle", Point{X: 2, Y: 12}, "handle#input-text-1"},
		{"empty column", Point{X: 900, Y: 60}, "column#column-2"},
		{"row padding", Point{X: 900, Y: 95}, "row#row-1"},
		{"empty row", Point{X: 500, Y: 190}, "row#row-3"},
		{"canvas drop space", Point{X: 500, Y: 300}, "canvas.canvas"},
		{"panel", Point{X: 1300, Y: 10}, "panel.property-panel"},
		{"gap between canvas and panel", Point{X: 1210, Y: 10}, "host.document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := doc.Host.ElementAt(tt.p)
			if el == nil {
				t.Fatal("no element hit")
			}
			if el.String() != tt.want {
				t.Errorf("ElementAt(%v) = %s, want %s", tt.p, el, tt.want)
			}
		})
	}

	if el := doc.Host.ElementAt(Point{X: -1, Y: 0}); el != nil {
		t.Errorf("point outside the host hit %s", el)
	}
}

func TestClosest(t *testing.T) {
	doc := Build(sampleTree(), DefaultGeometry())
	handle := doc.Host.ElementAt(Point{X: 2, Y: 12})

	if got := handle.Closest(KindField); got == nil || got.NodeID != "input-text-1" {
		t.Errorf("Closest(field) = %v", got)
	}
	if got := handle.Closest(KindRow, KindColumn); got == nil || got.NodeID != "column-1" {
		t.Errorf("Closest(row, column) = %v, want nearest column-1", got)
	}
	if got := handle.Closest(KindPanel); got != nil {
		t.Errorf("Closest(panel) = %v, want nil", got)
	}
}

func TestAppendReparents(t *testing.T) {
	a := New(KindHost, "", Rect{})
	b := New(KindHost, "", Rect{})
	c := New(KindField, "x-1", Rect{})

	a.Append(c)
	b.Append(c)

	if len(a.Children()) != 0 || len(b.Children()) != 1 || c.Parent() != b {
		t.Errorf("reparenting failed: a=%d b=%d parent=%v", len(a.Children()), len(b.Children()), c.Parent())
	}
}

func TestDetach(t *testing.T) {
	a := New(KindHost, "", Rect{})
	c := a.Append(New(KindCanvas, "", Rect{}))

	c.Detach()
	c.Detach()

	if len(a.Children()) != 0 || c.Parent() != nil {
		t.Errorf("detach failed: children=%d parent=%v", len(a.Children()), c.Parent())
	}
}

func TestRectUnion(t *testing.T) {
	got := Rect{X: 10, Y: 10, W: 10, H: 10}.Union(Rect{X: 0, Y: 15, W: 5, H: 20})
	if want := (Rect{X: 0, Y: 10, W: 20, H: 25}); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestKindString(t *testing.T) {
	if KindColumn.String() != "column" || Kind(99).String() != "kind(99)" {
		t.Errorf("unexpected kind names %q %q", KindColumn, Kind(99))
	}
}
