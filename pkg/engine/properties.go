package engine

import (
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/layout"
)

// SetProperty edits one attribute of a field or the root element. section
// is one of layout.SectionProperties, SectionMeta or SectionEvents; a nil
// value removes the entry. Event values may be a layout.EventBinding, a
// map with "action", "target" and "params" keys, or a plain action string.
//
// Node identifiers are stable: editing the "id" property changes the
// rendered attribute, not the node's identity.
func (e *Engine) SetProperty(nodeID, section, name string, value any) error {
	f, ok := e.tree.Node(nodeID)
	if !ok {
		return errors.NotFound("no editable node %q", nodeID)
	}
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "property name must not be empty")
	}
	if section != layout.SectionMeta && !layout.ValidName(name) {
		return errors.New(errors.ErrCodeInvalidInput, "%q is not a valid attribute name", name)
	}

	switch section {
	case layout.SectionProperties, "":
		setValue(&f.Properties, name, value)
	case layout.SectionMeta:
		setValue(&f.Meta, name, value)
	case layout.SectionEvents:
		if value == nil {
			delete(f.Events, name)
			return nil
		}
		b, err := toBinding(value)
		if err != nil {
			return err
		}
		if f.Events == nil {
			f.Events = map[string]layout.EventBinding{}
		}
		f.Events[name] = b
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown section %q", section)
	}
	return nil
}

func setValue(m *map[string]any, name string, value any) {
	if value == nil {
		delete(*m, name)
		return
	}
	if *m == nil {
		*m = map[string]any{}
	}
	(*m)[name] = value
}

func toBinding(v any) (layout.EventBinding, error) {
	switch x := v.(type) {
	case layout.EventBinding:
		return x, nil
	case *layout.EventBinding:
		return *x, nil
	case string:
		return layout.EventBinding{Action: x}, nil
	case map[string]any:
		b := layout.EventBinding{}
		b.Action, _ = x["action"].(string)
		b.Target, _ = x["target"].(string)
		if p, ok := x["params"].(map[string]any); ok {
			b.Params = layout.CloneValues(p)
		}
		return b, nil
	default:
		return layout.EventBinding{}, errors.New(errors.ErrCodeInvalidInput, "event binding must be an action or binding object, got %T", v)
	}
}
