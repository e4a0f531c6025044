package designer

import (
	"github.com/matzehuels/formgrid/pkg/dom"
	"github.com/matzehuels/formgrid/pkg/drag"
	"github.com/matzehuels/formgrid/pkg/element"
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// DragState returns the drag controller's state.
func (d *Designer) DragState() drag.State { return d.drag.State() }

// DragPayload returns the payload of the drag in progress, if any.
func (d *Designer) DragPayload() (drag.Payload, bool) { return d.drag.Payload() }

// DragTarget returns the currently accepted drop target, if any.
func (d *Designer) DragTarget() (drag.Target, bool) { return d.drag.Target() }

// HandleDragStart starts dragging a new instance of a catalog entry.
func (d *Designer) HandleDragStart(typeKey string) error {
	if !d.engine.Registry().Has(typeKey) {
		return errors.NotFound("element type %q not found", typeKey)
	}
	return d.drag.Start(drag.Payload{TypeKey: typeKey, IsNewInstance: true})
}

// HandleHandleDragStart starts dragging the node whose handle is el.
// A handle outside the designer's scope is ignored and reported as not
// started.
func (d *Designer) HandleHandleDragStart(el *dom.Element) (started bool, err error) {
	if el == nil || !d.guard.Allow(el, "dragstart") {
		return false, nil
	}
	if el.Kind != dom.KindHandle {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s is not a drag handle", el)
	}
	loc := d.engine.Tree().Locate(el.NodeID)
	var key string
	switch loc.Kind {
	case layout.KindRow:
		key = element.KeyRow
	case layout.KindColumn:
		key = element.KeyColumn
	case layout.KindField:
		key = loc.Field.Type
	case layout.KindRoot:
		return false, errors.New(errors.ErrCodeInvalidInput, "the root element cannot be moved")
	default:
		return false, errors.NotFound("node %q not found", el.NodeID)
	}
	if err := d.drag.Start(drag.Payload{TypeKey: key, SourceNodeID: el.NodeID}); err != nil {
		return false, err
	}
	return true, nil
}

// HandleDragOver reports whether a drop on el at pt would be accepted.
func (d *Designer) HandleDragOver(el *dom.Element, pt dom.Point) bool {
	return d.drag.Over(el, pt)
}

// HandleDrop completes the drag on el at pt. A nil el drops on the last
// accepted target. Drops outside the designer's scope, or without an
// accepted target, change nothing and return nil. A successful drop
// publishes exactly one form-changed notification.
func (d *Designer) HandleDrop(el *dom.Element, pt dom.Point) error {
	if el != nil {
		d.drag.Over(el, pt)
	}
	p, active := d.drag.Payload()
	res, err := d.drag.Drop()
	if !active {
		return nil
	}
	if err != nil {
		d.changed("drop", p.Subject(), p.SourceNodeID, err)
		return err
	}
	if res.Op == drag.OpNone {
		d.logger.Debug("drop without target", "type", p.TypeKey)
		return nil
	}
	d.changed(res.Op.String(), res.Kind, res.NodeID, nil)
	return nil
}

// HandleDragEnd ends a gesture that did not drop.
func (d *Designer) HandleDragEnd() { d.drag.Cancel() }

// ElementAt hit-tests the whole host page the container belongs to.
func (d *Designer) ElementAt(pt dom.Point) *dom.Element {
	top := d.container
	for top.Parent() != nil {
		top = top.Parent()
	}
	return top.ElementAt(pt)
}
