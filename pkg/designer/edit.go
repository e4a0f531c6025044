package designer

import (
	"github.com/matzehuels/formgrid/pkg/engine"
	"github.com/matzehuels/formgrid/pkg/layout"
	"github.com/matzehuels/formgrid/pkg/observability"
)

// CreateRow appends a row with one full-width column.
func (d *Designer) CreateRow() *layout.Row {
	r := d.engine.CreateRow()
	d.changed("create", layout.KindRow, r.ID, nil)
	return r
}

// AddColumn appends a column to a row, redistributing its widths.
func (d *Designer) AddColumn(rowID string) (*layout.Column, error) {
	c, err := d.engine.AddColumn(rowID)
	if err != nil {
		d.changed("create", layout.KindColumn, rowID, err)
		return nil, err
	}
	d.changed("create", layout.KindColumn, c.ID, nil)
	return c, nil
}

// CreateField appends a field of typeKey to a column.
func (d *Designer) CreateField(typeKey, columnID string) (*layout.Field, error) {
	f, err := d.engine.CreateField(typeKey, columnID)
	if err != nil {
		d.changed("create", layout.KindField, columnID, err)
		return nil, err
	}
	d.changed("create", layout.KindField, f.ID, nil)
	return f, nil
}

// CreateRootElement creates the root element.
func (d *Designer) CreateRootElement() (*layout.Field, error) {
	f, err := d.engine.CreateRootElement()
	if err != nil {
		d.changed("create", layout.KindRoot, "", err)
		return nil, err
	}
	d.changed("create", layout.KindRoot, f.ID, nil)
	return f, nil
}

// MoveField relocates a field without a gesture.
func (d *Designer) MoveField(fieldID string, t engine.FieldTarget) error {
	err := d.engine.MoveField(fieldID, t)
	d.changed("move", layout.KindField, fieldID, err)
	return err
}

// MoveRow relocates a row without a gesture.
func (d *Designer) MoveRow(rowID string, t engine.RowTarget) error {
	err := d.engine.MoveRow(rowID, t)
	d.changed("move", layout.KindRow, rowID, err)
	return err
}

// MoveColumn relocates a column without a gesture. Both rows involved are
// redistributed.
func (d *Designer) MoveColumn(columnID string, t engine.ColumnTarget) error {
	err := d.engine.MoveColumn(columnID, t)
	d.changed("move", layout.KindColumn, columnID, err)
	return err
}

// DeleteNode removes a node and reports whether it existed. Unknown ids
// change nothing and publish nothing.
func (d *Designer) DeleteNode(id string) bool {
	kind := d.engine.DeleteNode(id)
	if kind == layout.KindNone {
		return false
	}
	d.changed("delete", kind, id, nil)
	return true
}

// SetProperty edits one attribute of a field or the root element and
// publishes property-changed. See engine.Engine.SetProperty for the
// accepted values.
func (d *Designer) SetProperty(nodeID, section, property string, value any) error {
	if section == "" {
		section = layout.SectionProperties
	}
	if err := d.engine.SetProperty(nodeID, section, property, value); err != nil {
		d.logger.Warn("property edit rejected", "node", nodeID, "property", property, "error", err)
		return err
	}
	observability.Designer().OnPropertyChange(nodeID, section, property)
	d.logger.Debug("property changed", "node", nodeID, "section", section, "property", property)
	d.Render()
	d.emit(Notification{
		Event:  EventPropertyChanged,
		Change: PropertyChange{NodeID: nodeID, Property: property, Value: value, Section: section},
	})
	return nil
}
