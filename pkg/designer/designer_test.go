package designer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/formgrid/pkg/dom"
	"github.com/matzehuels/formgrid/pkg/drag"
	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/engine"
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/layout"
	"github.com/matzehuels/formgrid/pkg/render"
)

// page builds a host page holding the designer's container and an
// unrelated element standing in for another designer instance.
func page(t *testing.T) (*Designer, *dom.Element) {
	t.Helper()
	root := dom.New(dom.KindHost, "", dom.Rect{W: 2000, H: 2000})
	root.Name = "page"
	container := root.Append(dom.New(dom.KindHost, "", dom.Rect{}))
	container.Name = "designer"
	foreign := root.Append(dom.New(dom.KindColumn, "column-1", dom.Rect{X: 1600, W: 300, H: 300}))

	d, err := New(container, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, foreign
}

// counter subscribes to event and returns a pointer to the delivery count.
func counter(d *Designer, event Event) *int {
	n := new(int)
	d.Subscribe(event, func(Notification) { *n++ })
	return n
}

func TestNewRequiresContainer(t *testing.T) {
	if _, err := New(nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestNewUnknownRenderer(t *testing.T) {
	_, err := New(dom.New(dom.KindHost, "", dom.Rect{}), Options{Renderer: "xml"})
	if !errors.Is(err, errors.ErrCodeUnknownRenderer) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeUnknownRenderer)
	}
}

func TestNewMountsDocument(t *testing.T) {
	d, _ := page(t)
	doc := d.Document()
	if doc.Canvas.Parent() != d.Container() {
		t.Error("canvas not mounted in container")
	}
	if doc.Panel.Parent() != d.Container().Parent() {
		t.Error("panel not mounted next to container")
	}
	if !d.Guard().Contains(doc.Panel) {
		t.Error("panel should be in scope")
	}
	if d.ID() == "" || d.Snapshot().Metadata.ID == "" {
		t.Error("instance and snapshot ids should be set")
	}
}

func TestDropNewFieldOnColumn(t *testing.T) {
	d, _ := page(t)
	d.CreateRow()
	if _, err := d.CreateField("input-text", "column-1"); err != nil {
		t.Fatal(err)
	}

	var got []Notification
	d.Subscribe(EventFormChanged, func(n Notification) { got = append(got, n) })

	if err := d.HandleDragStart("input-text"); err != nil {
		t.Fatal(err)
	}
	col := d.Document().Canvas.Find("column-1")
	if !d.HandleDragOver(col, col.Center()) {
		t.Fatal("column should accept a field")
	}
	if err := d.HandleDrop(col, col.Center()); err != nil {
		t.Fatalf("HandleDrop: %v", err)
	}

	fields := d.Snapshot().Rows[0].Columns[0].Fields
	if len(fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(fields))
	}
	f := fields[1]
	if f.ID != "input-text-2" {
		t.Errorf("new field id = %q, want input-text-2", f.ID)
	}
	if f.PropertyString("id") != f.ID || f.PropertyString("name") != f.ID || f.Label() != f.ID {
		t.Errorf("id/name/label = %q/%q/%q, want %q", f.PropertyString("id"), f.PropertyString("name"), f.Label(), f.ID)
	}
	if len(got) != 1 {
		t.Fatalf("form-changed notifications = %d, want 1", len(got))
	}
	if n := len(got[0].Rows[0].Columns[0].Fields); n != 2 {
		t.Errorf("notified rows carry %d fields, want 2", n)
	}
	if d.DragState() != drag.Idle {
		t.Errorf("state = %v, want idle", d.DragState())
	}
}

func TestDropOutsideScopeIsIgnored(t *testing.T) {
	d, foreign := page(t)
	d.CreateRow()
	before := d.Snapshot()
	changes := counter(d, EventFormChanged)

	if err := d.HandleDragStart("input-text"); err != nil {
		t.Fatal(err)
	}
	if d.HandleDragOver(foreign, foreign.Center()) {
		t.Error("foreign element must not accept a drop")
	}
	if err := d.HandleDrop(foreign, foreign.Center()); err != nil {
		t.Errorf("HandleDrop outside scope returned %v", err)
	}

	if diff := cmp.Diff(before.Rows, d.Snapshot().Rows, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("tree changed (-before +after):\n%s", diff)
	}
	if *changes != 0 {
		t.Errorf("form-changed fired %d times", *changes)
	}
}

func TestDropOutsideScopeAfterValidHover(t *testing.T) {
	d, foreign := page(t)
	d.CreateRow()
	changes := counter(d, EventFormChanged)

	d.HandleDragStart("input-text")
	col := d.Document().Canvas.Find("column-1")
	d.HandleDragOver(col, col.Center())
	if err := d.HandleDrop(foreign, foreign.Center()); err != nil {
		t.Fatal(err)
	}
	if n := len(d.Snapshot().Rows[0].Columns[0].Fields); n != 0 || *changes != 0 {
		t.Errorf("fields = %d, notifications = %d, want none", n, *changes)
	}
}

func TestMoveByHandle(t *testing.T) {
	d, _ := page(t)
	d.CreateRow()
	d.CreateRow()
	d.CreateField("input-text", "column-1")

	// The field's handle sits in its top-left corner.
	handle := d.ElementAt(dom.Point{X: 1, Y: 11})
	if handle == nil || handle.Kind != dom.KindHandle || handle.NodeID != "input-text-1" {
		t.Fatalf("handle hit = %v", handle)
	}
	started, err := d.HandleHandleDragStart(handle)
	if err != nil || !started {
		t.Fatalf("HandleHandleDragStart = %v, %v", started, err)
	}

	target := d.Document().Canvas.Find("column-2")
	if err := d.HandleDrop(target, target.Center()); err != nil {
		t.Fatal(err)
	}
	s := d.Snapshot()
	if len(s.Rows[0].Columns[0].Fields) != 0 || len(s.Rows[1].Columns[0].Fields) != 1 {
		t.Errorf("field not moved: %+v", s.Rows)
	}
}

func TestHandleDragStartOutsideScope(t *testing.T) {
	d, foreign := page(t)
	handle := foreign.Append(dom.New(dom.KindHandle, "column-1", dom.Rect{X: 1600, W: 10, H: 10}))
	started, err := d.HandleHandleDragStart(handle)
	if started || err != nil {
		t.Errorf("HandleHandleDragStart = %v, %v, want false, nil", started, err)
	}
	if d.DragState() != drag.Idle {
		t.Errorf("state = %v", d.DragState())
	}
}

func TestHandleDragStartUnknownType(t *testing.T) {
	d, _ := page(t)
	if err := d.HandleDragStart("marquee"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestDragEndCancels(t *testing.T) {
	d, _ := page(t)
	d.HandleDragStart(element.KeyRow)
	d.HandleDragEnd()
	if d.DragState() != drag.Idle {
		t.Errorf("state = %v, want idle", d.DragState())
	}
	if err := d.HandleDrop(nil, dom.Point{}); err != nil {
		t.Errorf("drop without drag = %v", err)
	}
}

func TestStructuralOperationsNotify(t *testing.T) {
	d, _ := page(t)
	changes := counter(d, EventFormChanged)

	r := d.CreateRow()
	if _, err := d.AddColumn(r.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateRootElement(); err != nil {
		t.Fatal(err)
	}
	if !d.DeleteNode("column-2") {
		t.Error("DeleteNode(column-2) = false")
	}
	if d.DeleteNode("nope") {
		t.Error("DeleteNode(nope) = true")
	}
	if _, err := d.AddColumn("row-99"); err == nil {
		t.Error("AddColumn on a missing row should fail")
	}

	if *changes != 4 {
		t.Errorf("form-changed = %d, want 4", *changes)
	}
}

func TestMoveColumn(t *testing.T) {
	d, _ := page(t)
	r1 := d.CreateRow()
	if _, err := d.AddColumn(r1.ID); err != nil {
		t.Fatal(err)
	}
	d.CreateRow()
	changes := counter(d, EventFormChanged)

	if err := d.MoveColumn("column-2", engine.ColumnTarget{RowID: "row-2"}); err != nil {
		t.Fatalf("MoveColumn: %v", err)
	}
	rows := d.Snapshot().Rows
	if n := len(rows[0].Columns); n != 1 || rows[0].Columns[0].Width != layout.GridUnits {
		t.Errorf("row-1 = %d columns, width %d", n, rows[0].Columns[0].Width)
	}
	var widths []int
	for _, c := range rows[1].Columns {
		widths = append(widths, c.Width)
	}
	if diff := cmp.Diff([]int{6, 6}, widths); diff != "" {
		t.Errorf("row-2 widths (-want +got):\n%s", diff)
	}
	if got := d.Document().Canvas.Find("column-2").Closest(dom.KindRow).NodeID; got != "row-2" {
		t.Errorf("mirrored column-2 sits in %s, want row-2", got)
	}

	if err := d.MoveColumn("column-9", engine.ColumnTarget{RowID: "row-1"}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown column error = %v, want %s", err, errors.ErrCodeNotFound)
	}
	if *changes != 1 {
		t.Errorf("form-changed = %d, want 1", *changes)
	}
}

func TestNotificationRowsAreCopies(t *testing.T) {
	d, _ := page(t)
	var rows []*layout.Row
	d.Subscribe(EventFormChanged, func(n Notification) { rows = n.Rows })
	d.CreateRow()

	rows[0].ID = "tampered"
	if d.Snapshot().Rows[0].ID != "row-1" {
		t.Error("observer mutation leaked into the tree")
	}
}

func TestSetPropertyNotifies(t *testing.T) {
	d, _ := page(t)
	d.CreateRow()
	f, _ := d.CreateField("input-text", "column-1")

	var got []PropertyChange
	d.Subscribe(EventPropertyChanged, func(n Notification) { got = append(got, n.Change) })
	structural := counter(d, EventFormChanged)

	if err := d.SetProperty(f.ID, layout.SectionMeta, "label", "Email"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetProperty("missing", "", "x", 1); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing node error = %v", err)
	}

	want := []PropertyChange{{NodeID: f.ID, Property: "label", Value: "Email", Section: layout.SectionMeta}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("property-changed mismatch (-want +got):\n%s", diff)
	}
	if *structural != 0 {
		t.Errorf("form-changed fired %d times for a property edit", *structural)
	}
	if !strings.Contains(d.Markup(), "Email") {
		t.Errorf("markup not re-rendered:\n%s", d.Markup())
	}
}

func TestUnsubscribe(t *testing.T) {
	d, _ := page(t)
	n := 0
	stop := d.Subscribe(EventFormChanged, func(Notification) { n++ })
	d.CreateRow()
	stop()
	stop()
	d.CreateRow()
	if n != 1 {
		t.Errorf("deliveries = %d, want 1", n)
	}
}

func TestSetRenderer(t *testing.T) {
	d, _ := page(t)
	d.CreateRow()
	if err := d.SetRenderer(render.Bootstrap); err != nil {
		t.Fatal(err)
	}
	if d.Renderer() != render.Bootstrap || !strings.Contains(d.Markup(), "col-md-12") {
		t.Errorf("bootstrap markup expected, got:\n%s", d.Markup())
	}
	if err := d.SetRenderer("xml"); !errors.Is(err, errors.ErrCodeUnknownRenderer) {
		t.Errorf("error = %v", err)
	}
	if d.Renderer() != render.Bootstrap {
		t.Errorf("failed switch changed renderer to %q", d.Renderer())
	}
}

func TestRenderPreviewKeepsMarkup(t *testing.T) {
	d, _ := page(t)
	d.CreateRow()
	d.CreateField("input-text", "column-1")
	markup := d.Markup()
	if p := d.RenderPreview(); !strings.Contains(p, "disabled") {
		t.Errorf("preview not disabled:\n%s", p)
	}
	if d.Markup() != markup {
		t.Error("RenderPreview replaced Markup")
	}
}

func TestImportExport(t *testing.T) {
	d, _ := page(t)
	d.CreateRow()
	d.CreateField("input-text", "column-1")
	d.SetMetadata(layout.Metadata{Title: "Signup"})

	var buf bytes.Buffer
	if err := d.Export(&buf); err != nil {
		t.Fatal(err)
	}

	e, _ := page(t)
	changes := counter(e, EventFormChanged)
	if err := e.Import(&buf); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(d.Snapshot(), e.Snapshot(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot mismatch (-exported +imported):\n%s", diff)
	}
	if *changes != 1 {
		t.Errorf("form-changed = %d, want 1", *changes)
	}

	// The allocator continues after imported ids.
	f, err := e.CreateField("input-text", "column-1")
	if err != nil || f.ID != "input-text-2" {
		t.Errorf("CreateField after import = %v, %v", f, err)
	}
}

func TestImportInvalidLeavesTree(t *testing.T) {
	d, _ := page(t)
	d.CreateRow()
	before := d.Snapshot()
	changes := counter(d, EventFormChanged)

	bad := `{"rows":[{"id":"row-1","columns":[{"id":"column-1","width":12,"fields":[{"id":"x-1"}]}]}]}`
	err := d.Import(strings.NewReader(bad))
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeValidation)
	}
	if diff := cmp.Diff(before, d.Snapshot(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("tree changed (-before +after):\n%s", diff)
	}
	if *changes != 0 {
		t.Errorf("form-changed = %d, want 0", *changes)
	}
}

func TestReplaceRegistry(t *testing.T) {
	d, _ := page(t)
	reg, err := element.New(
		element.Definition{ID: "rating", Label: "Rating", Category: element.CategoryInput, Tag: "input", Properties: map[string]any{"type": "range"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.ReplaceRegistry(reg); err != nil {
		t.Fatal(err)
	}
	d.CreateRow()
	if _, err := d.CreateField("input-text", "column-1"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("old type still available: %v", err)
	}
	if _, err := d.CreateField("rating", "column-1"); err != nil {
		t.Errorf("new type unavailable: %v", err)
	}
	if d.ReplaceRegistry(nil) == nil {
		t.Error("nil registry accepted")
	}
}
