package drag

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/formgrid/pkg/dom"
	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/engine"
	"github.com/matzehuels/formgrid/pkg/layout"
	"github.com/matzehuels/formgrid/pkg/scope"
)

// Sentinel errors for gesture misuse.
var (
	// ErrDragActive is returned by Start while another drag is in progress.
	ErrDragActive = errors.New("drag: a drag is already in progress")

	// ErrEmptyPayload is returned by Start for a payload without a type key.
	ErrEmptyPayload = errors.New("drag: payload has no type key")

	// ErrNoSource is returned by Start for a move without a source node.
	ErrNoSource = errors.New("drag: move payload has no source node")
)

// State is the controller's interaction state.
type State int

const (
	Idle State = iota
	Dragging
	HoveringValid
	HoveringInvalid
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case HoveringValid:
		return "hovering-valid"
	case HoveringInvalid:
		return "hovering-invalid"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Payload is what is being dragged: a catalog entry (IsNewInstance) or an
// existing node.
type Payload struct {
	TypeKey       string
	IsNewInstance bool
	SourceNodeID  string
}

// Subject returns the layout level the payload is placed on.
func (p Payload) Subject() layout.NodeKind {
	switch p.TypeKey {
	case element.KeyRow:
		return layout.KindRow
	case element.KeyColumn:
		return layout.KindColumn
	default:
		return layout.KindField
	}
}

// Mutator is the set of structural operations a drop can issue.
// *engine.Engine satisfies it.
type Mutator interface {
	InsertRow(t engine.RowTarget) (*layout.Row, error)
	MoveRow(rowID string, t engine.RowTarget) error
	InsertColumn(t engine.ColumnTarget) (*layout.Column, error)
	MoveColumn(columnID string, t engine.ColumnTarget) error
	InsertField(typeKey string, t engine.FieldTarget) (*layout.Field, error)
	MoveField(fieldID string, t engine.FieldTarget) error
}

// Target is a resolved drop target.
type Target struct {
	Element   *dom.Element
	Placement engine.Placement
	Relative  float64 // vertical pointer position on the canvas, 0 to 1
}

// Op classifies the operation a drop issued.
type Op int

const (
	OpNone Op = iota
	OpCreate
	OpMove
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpMove:
		return "move"
	default:
		return "none"
	}
}

// Result describes a completed drop. Op is OpNone when nothing was issued.
type Result struct {
	Op     Op
	Kind   layout.NodeKind
	NodeID string // created or moved node
}

// Controller is the drag state machine. It is not safe for concurrent use.
type Controller struct {
	mutator Mutator
	guard   *scope.Guard[*dom.Element]
	logger  *log.Logger

	state   State
	payload *Payload
	target  *Target
}

// New creates an idle controller issuing operations on m. Hovered elements
// are checked against g. A nil logger discards debug output.
func New(m Mutator, g *scope.Guard[*dom.Element], logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{mutator: m, guard: g, logger: logger}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Payload returns the active payload, if any.
func (c *Controller) Payload() (Payload, bool) {
	if c.payload == nil {
		return Payload{}, false
	}
	return *c.payload, true
}

// Target returns the recorded valid target, if any.
func (c *Controller) Target() (Target, bool) {
	if c.target == nil {
		return Target{}, false
	}
	return *c.target, true
}

// SetGuard replaces the scope guard, e.g. after the host document was
// rebuilt.
func (c *Controller) SetGuard(g *scope.Guard[*dom.Element]) { c.guard = g }

// Start begins a drag. It fails with ErrDragActive unless the controller
// is idle.
func (c *Controller) Start(p Payload) error {
	if c.state != Idle {
		return ErrDragActive
	}
	if p.TypeKey == "" {
		return ErrEmptyPayload
	}
	if !p.IsNewInstance && p.SourceNodeID == "" {
		return ErrNoSource
	}
	c.payload = &p
	c.target = nil
	c.state = Dragging
	c.logger.Debug("drag started", "type", p.TypeKey, "new", p.IsNewInstance, "source", p.SourceNodeID)
	return nil
}

// Over re-evaluates the hovered element at pointer position pt and
// reports whether a drop would be accepted there. Outside a drag it
// reports false and changes nothing.
func (c *Controller) Over(el *dom.Element, pt dom.Point) bool {
	if c.payload == nil {
		return false
	}
	t, ok := c.resolve(el, pt)
	if !ok {
		c.target = nil
		c.state = HoveringInvalid
		return false
	}
	c.target = &t
	c.state = HoveringValid
	return true
}

// Drop completes the drag. With a recorded valid target it issues exactly
// one operation; otherwise it does nothing. Either way the controller is
// idle again when Drop returns, and the operation's error, if any, is
// returned.
func (c *Controller) Drop() (Result, error) {
	p, t := c.payload, c.target
	c.reset()
	if p == nil || t == nil {
		return Result{}, nil
	}
	return c.issue(*p, *t)
}

// Cancel abandons the drag. It is always safe to call.
func (c *Controller) Cancel() {
	if c.payload != nil {
		c.logger.Debug("drag cancelled", "type", c.payload.TypeKey)
	}
	c.reset()
}

func (c *Controller) reset() {
	c.payload = nil
	c.target = nil
	c.state = Idle
}

// accepts lists the element kinds each subject can be dropped on.
var accepts = map[layout.NodeKind][]dom.Kind{
	layout.KindRow:    {dom.KindCanvas, dom.KindRow},
	layout.KindColumn: {dom.KindRow, dom.KindColumn},
	layout.KindField:  {dom.KindColumn, dom.KindField},
}

func (c *Controller) resolve(el *dom.Element, pt dom.Point) (Target, bool) {
	if el == nil || c.guard == nil || !c.guard.Allow(el, "dragover") {
		return Target{}, false
	}
	hit := el.Closest(accepts[c.payload.Subject()]...)
	if hit == nil || !c.guard.Contains(hit) {
		return Target{}, false
	}

	// Placement only matters next to a sibling; containers append.
	t := Target{Element: hit}
	r := hit.Rect
	switch {
	case hit.Kind == dom.KindCanvas:
		if r.H > 0 {
			t.Relative = (pt.Y - r.Y) / r.H
		}
	case hit.Kind == dom.KindColumn && c.payload.Subject() == layout.KindColumn:
		t.Placement = engine.PlacementFor(pt.X-r.X, r.W)
	case hit.Kind == dom.KindRow && c.payload.Subject() == layout.KindRow,
		hit.Kind == dom.KindField:
		t.Placement = engine.PlacementFor(pt.Y-r.Y, r.H)
	}
	return t, true
}

func (c *Controller) issue(p Payload, t Target) (Result, error) {
	res := Result{Op: OpMove, Kind: p.Subject(), NodeID: p.SourceNodeID}
	if p.IsNewInstance {
		res.Op = OpCreate
	}

	var err error
	switch res.Kind {
	case layout.KindRow:
		rt := engine.RowTarget{Placement: t.Placement, Relative: t.Relative}
		if t.Element.Kind == dom.KindRow {
			rt.RowID = t.Element.NodeID
		}
		if p.IsNewInstance {
			var r *layout.Row
			if r, err = c.mutator.InsertRow(rt); err == nil {
				res.NodeID = r.ID
			}
		} else {
			err = c.mutator.MoveRow(p.SourceNodeID, rt)
		}

	case layout.KindColumn:
		ct := engine.ColumnTarget{Placement: t.Placement}
		if t.Element.Kind == dom.KindColumn {
			ct.ColumnID = t.Element.NodeID
		} else {
			ct.RowID = t.Element.NodeID
		}
		if p.IsNewInstance {
			var col *layout.Column
			if col, err = c.mutator.InsertColumn(ct); err == nil {
				res.NodeID = col.ID
			}
		} else {
			err = c.mutator.MoveColumn(p.SourceNodeID, ct)
		}

	default:
		ft := engine.FieldTarget{Placement: t.Placement}
		if t.Element.Kind == dom.KindField {
			ft.FieldID = t.Element.NodeID
		} else {
			ft.ColumnID = t.Element.NodeID
		}
		if p.IsNewInstance {
			var f *layout.Field
			if f, err = c.mutator.InsertField(p.TypeKey, ft); err == nil {
				res.NodeID = f.ID
			}
		} else {
			err = c.mutator.MoveField(p.SourceNodeID, ft)
		}
	}

	if err != nil {
		return Result{}, fmt.Errorf("drop %s on %s: %w", p.TypeKey, t.Element, err)
	}
	c.logger.Debug("drop", "op", res.Op, "kind", res.Kind, "node", res.NodeID, "target", t.Element)
	return res, nil
}
