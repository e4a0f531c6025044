package drag

import (
	"errors"
	"testing"

	"github.com/matzehuels/formgrid/pkg/dom"
	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/engine"
	ferrors "github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/layout"
	"github.com/matzehuels/formgrid/pkg/scope"
)

// recorder is a Mutator that records every call.
type recorder struct {
	calls []string
	last  any
}

func (r *recorder) InsertRow(t engine.RowTarget) (*layout.Row, error) {
	r.calls, r.last = append(r.calls, "InsertRow"), t
	return &layout.Row{ID: "row-9"}, nil
}

func (r *recorder) MoveRow(id string, t engine.RowTarget) error {
	r.calls, r.last = append(r.calls, "MoveRow "+id), t
	return nil
}

func (r *recorder) InsertColumn(t engine.ColumnTarget) (*layout.Column, error) {
	r.calls, r.last = append(r.calls, "InsertColumn"), t
	return &layout.Column{ID: "column-9"}, nil
}

func (r *recorder) MoveColumn(id string, t engine.ColumnTarget) error {
	r.calls, r.last = append(r.calls, "MoveColumn "+id), t
	return nil
}

func (r *recorder) InsertField(key string, t engine.FieldTarget) (*layout.Field, error) {
	r.calls, r.last = append(r.calls, "InsertField "+key), t
	return &layout.Field{ID: key + "-9"}, nil
}

func (r *recorder) MoveField(id string, t engine.FieldTarget) error {
	r.calls, r.last = append(r.calls, "MoveField "+id), t
	return nil
}

func fixture() (*layout.Tree, *dom.Document) {
	tree := &layout.Tree{Rows: []*layout.Row{
		{ID: "row-1", Columns: []*layout.Column{
			{ID: "column-1", Width: 6, Fields: []*layout.Field{{ID: "input-text-1", Type: "input-text"}}},
			{ID: "column-2", Width: 6, Fields: []*layout.Field{}},
		}},
		{ID: "row-2", Columns: []*layout.Column{{ID: "column-3", Width: 12, Fields: []*layout.Field{}}}},
	}}
	return tree, dom.Build(tree, dom.DefaultGeometry())
}

func guardFor(doc *dom.Document) *scope.Guard[*dom.Element] {
	return scope.NewGuard(doc.Canvas, nil, scope.Region[*dom.Element]{Name: dom.PanelRegion, Root: doc.Panel})
}

func TestStartRejectsOverlap(t *testing.T) {
	_, doc := fixture()
	c := New(&recorder{}, guardFor(doc), nil)

	if err := c.Start(Payload{TypeKey: "input-text", IsNewInstance: true}); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(Payload{TypeKey: "select", IsNewInstance: true}); !errors.Is(err, ErrDragActive) {
		t.Errorf("second Start = %v, want ErrDragActive", err)
	}
	if p, _ := c.Payload(); p.TypeKey != "input-text" {
		t.Errorf("payload replaced by rejected Start: %+v", p)
	}

	c.Cancel()
	if err := c.Start(Payload{TypeKey: "select", IsNewInstance: true}); err != nil {
		t.Errorf("Start after Cancel = %v", err)
	}
}

func TestStartValidatesPayload(t *testing.T) {
	c := New(&recorder{}, nil, nil)
	if err := c.Start(Payload{}); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("empty payload = %v", err)
	}
	if err := c.Start(Payload{TypeKey: "row"}); !errors.Is(err, ErrNoSource) {
		t.Errorf("move without source = %v", err)
	}
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestDropIssuesOneCall(t *testing.T) {
	_, doc := fixture()

	tests := []struct {
		name     string
		payload  Payload
		at       dom.Point
		wantCall string
		want     any
		wantRes  Result
	}{
		{
			name:     "new field on empty column",
			payload:  Payload{TypeKey: "input-text", IsNewInstance: true},
			at:       dom.Point{X: 900, Y: 30},
			wantCall: "InsertField input-text",
			want:     engine.FieldTarget{ColumnID: "column-2"},
			wantRes:  Result{Op: OpCreate, Kind: layout.KindField, NodeID: "input-text-9"},
		},
		{
			name:     "new field on lower half of field",
			payload:  Payload{TypeKey: "select", IsNewInstance: true},
			at:       dom.Point{X: 300, Y: 45},
			wantCall: "InsertField select",
			want:     engine.FieldTarget{FieldID: "input-text-1", Placement: engine.After},
			wantRes:  Result{Op: OpCreate, Kind: layout.KindField, NodeID: "select-9"},
		},
		{
			name:     "move field onto upper half of field",
			payload:  Payload{TypeKey: "input-text", SourceNodeID: "input-text-5"},
			at:       dom.Point{X: 300, Y: 15},
			wantCall: "MoveField input-text-5",
			want:     engine.FieldTarget{FieldID: "input-text-1", Placement: engine.Before},
			wantRes:  Result{Op: OpMove, Kind: layout.KindField, NodeID: "input-text-5"},
		},
		{
			name:     "new column over a field resolves to its column",
			payload:  Payload{TypeKey: element.KeyColumn, IsNewInstance: true},
			at:       dom.Point{X: 100, Y: 30},
			wantCall: "InsertColumn",
			want:     engine.ColumnTarget{ColumnID: "column-1", Placement: engine.Before},
			wantRes:  Result{Op: OpCreate, Kind: layout.KindColumn, NodeID: "column-9"},
		},
		{
			name:     "move column onto row padding",
			payload:  Payload{TypeKey: element.KeyColumn, SourceNodeID: "column-3"},
			at:       dom.Point{X: 700, Y: 5},
			wantCall: "MoveColumn column-3",
			want:     engine.ColumnTarget{RowID: "row-1", Placement: engine.Before},
			wantRes:  Result{Op: OpMove, Kind: layout.KindColumn, NodeID: "column-3"},
		},
		{
			name:     "move row onto lower half of row",
			payload:  Payload{TypeKey: element.KeyRow, SourceNodeID: "row-1"},
			at:       dom.Point{X: 100, Y: 100},
			wantCall: "MoveRow row-1",
			want:     engine.RowTarget{RowID: "row-2", Placement: engine.After},
			wantRes:  Result{Op: OpMove, Kind: layout.KindRow, NodeID: "row-1"},
		},
		{
			name:     "new row on canvas drop space",
			payload:  Payload{TypeKey: element.KeyRow, IsNewInstance: true},
			at:       dom.Point{X: 100, Y: 150},
			wantCall: "InsertRow",
			want:     engine.RowTarget{Relative: 0.75},
			wantRes:  Result{Op: OpCreate, Kind: layout.KindRow, NodeID: "row-9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := New(rec, guardFor(doc), nil)
			if err := c.Start(tt.payload); err != nil {
				t.Fatal(err)
			}
			if !c.Over(doc.Host.ElementAt(tt.at), tt.at) {
				t.Fatalf("Over(%v) rejected", tt.at)
			}
			if c.State() != HoveringValid {
				t.Errorf("state = %v, want hovering-valid", c.State())
			}

			res, err := c.Drop()
			if err != nil {
				t.Fatal(err)
			}
			if len(rec.calls) != 1 || rec.calls[0] != tt.wantCall {
				t.Fatalf("calls = %v, want [%s]", rec.calls, tt.wantCall)
			}
			if rec.last != tt.want {
				t.Errorf("target = %+v, want %+v", rec.last, tt.want)
			}
			if res != tt.wantRes {
				t.Errorf("result = %+v, want %+v", res, tt.wantRes)
			}
			if c.State() != Idle {
				t.Errorf("state after drop = %v", c.State())
			}
			if _, ok := c.Payload(); ok {
				t.Error("payload not cleared")
			}
		})
	}
}

func TestIncompatibleTargets(t *testing.T) {
	_, doc := fixture()

	tests := []struct {
		name    string
		payload Payload
		at      dom.Point
	}{
		{"field on canvas", Payload{TypeKey: "input-text", IsNewInstance: true}, dom.Point{X: 100, Y: 150}},
		{"field on row padding", Payload{TypeKey: "input-text", IsNewInstance: true}, dom.Point{X: 700, Y: 5}},
		{"row on panel", Payload{TypeKey: element.KeyRow, IsNewInstance: true}, dom.Point{X: 1300, Y: 10}},
		{"column on canvas", Payload{TypeKey: element.KeyColumn, IsNewInstance: true}, dom.Point{X: 100, Y: 150}},
		{"row on host", Payload{TypeKey: element.KeyRow, IsNewInstance: true}, dom.Point{X: 1210, Y: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := New(rec, guardFor(doc), nil)
			c.Start(tt.payload)
			if c.Over(doc.Host.ElementAt(tt.at), tt.at) {
				t.Fatal("Over accepted an incompatible target")
			}
			if c.State() != HoveringInvalid {
				t.Errorf("state = %v, want hovering-invalid", c.State())
			}
			if _, ok := c.Target(); ok {
				t.Error("target recorded for invalid hover")
			}
			res, err := c.Drop()
			if err != nil || res.Op != OpNone || len(rec.calls) != 0 {
				t.Errorf("Drop = %+v, %v, calls %v; want no-op", res, err, rec.calls)
			}
			if c.State() != Idle {
				t.Errorf("state after drop = %v", c.State())
			}
		})
	}
}

func TestDropOutsideScope(t *testing.T) {
	_, doc := fixture()
	_, other := fixture()
	rec := &recorder{}
	c := New(rec, guardFor(doc), nil)

	c.Start(Payload{TypeKey: "input-text", IsNewInstance: true})

	// A valid target first, then a column of another designer instance.
	c.Over(doc.Canvas.Find("column-2"), dom.Point{X: 900, Y: 30})
	foreign := other.Canvas.Find("column-2")
	if c.Over(foreign, foreign.Center()) {
		t.Fatal("foreign column accepted")
	}

	res, err := c.Drop()
	if err != nil {
		t.Errorf("Drop error = %v, want nil", err)
	}
	if res.Op != OpNone || len(rec.calls) != 0 {
		t.Errorf("out-of-scope drop issued %v", rec.calls)
	}
}

func TestCancel(t *testing.T) {
	_, doc := fixture()
	rec := &recorder{}
	c := New(rec, guardFor(doc), nil)

	c.Cancel() // idle cancel is harmless
	c.Start(Payload{TypeKey: "input-text", IsNewInstance: true})
	c.Over(doc.Canvas.Find("column-2"), dom.Point{X: 900, Y: 30})
	c.Cancel()

	if c.State() != Idle {
		t.Errorf("state = %v", c.State())
	}
	if res, _ := c.Drop(); res.Op != OpNone || len(rec.calls) != 0 {
		t.Errorf("drop after cancel issued %v", rec.calls)
	}
}

func TestOverWhileIdle(t *testing.T) {
	_, doc := fixture()
	c := New(&recorder{}, guardFor(doc), nil)
	if c.Over(doc.Canvas, dom.Point{}) || c.State() != Idle {
		t.Error("Over outside a drag should do nothing")
	}
}

func TestDropWithEngine(t *testing.T) {
	eng := engine.New(nil, nil, element.Default())
	r := eng.CreateRow()
	col := r.Columns[0]
	eng.CreateField("input-text", col.ID)
	doc := dom.Build(eng.Tree(), dom.DefaultGeometry())

	c := New(eng, guardFor(doc), nil)
	c.Start(Payload{TypeKey: "input-text", IsNewInstance: true})
	target := doc.Canvas.Find(col.ID)
	c.Over(target, dom.Point{X: 600, Y: target.Rect.Y + target.Rect.H - 1})

	res, err := c.Drop()
	if err != nil {
		t.Fatal(err)
	}
	if len(col.Fields) != 2 {
		t.Fatalf("column has %d fields, want 2", len(col.Fields))
	}
	f := col.Fields[1]
	if res.NodeID != f.ID || f.ID != "input-text-2" {
		t.Errorf("result %+v, new field %s", res, f.ID)
	}
	if f.PropertyString("name") != f.ID || f.Label() != f.ID {
		t.Errorf("name %q label %q, want %q", f.PropertyString("name"), f.Label(), f.ID)
	}
}

func TestDropSurfacesEngineErrors(t *testing.T) {
	eng := engine.New(nil, nil, element.Default())
	r := eng.CreateRow()
	for i := 1; i < layout.MaxColumns; i++ {
		eng.AddColumn(r.ID)
	}
	doc := dom.Build(eng.Tree(), dom.DefaultGeometry())
	c := New(eng, guardFor(doc), nil)

	c.Start(Payload{TypeKey: element.KeyColumn, IsNewInstance: true})
	row := doc.Canvas.Find(r.ID)
	c.Over(row, dom.Point{X: 5, Y: row.Rect.Y + 2})

	_, err := c.Drop()
	if !ferrors.Is(err, ferrors.ErrCodeCapacity) {
		t.Errorf("Drop error = %v, want %s", err, ferrors.ErrCodeCapacity)
	}
	if c.State() != Idle {
		t.Errorf("state after failed drop = %v", c.State())
	}
}
