package designer

import "github.com/matzehuels/formgrid/pkg/layout"

// Event names a notification.
type Event string

const (
	// EventFormChanged follows every structural change.
	EventFormChanged Event = "form-changed"
	// EventPropertyChanged follows every property edit.
	EventPropertyChanged Event = "property-changed"
)

// PropertyChange describes one edited attribute.
type PropertyChange struct {
	NodeID   string
	Property string
	Value    any // nil when the entry was removed
	Section  string
}

// Notification is delivered to observers. Rows is set for form-changed and
// is the observer's own copy; Change is set for property-changed.
type Notification struct {
	Event  Event
	Rows   []*layout.Row
	Change PropertyChange
}

// Observer receives notifications.
type Observer func(Notification)

type observer struct {
	fn Observer
}

// Subscribe registers fn for event and returns a function removing it
// again. Observers of the same event are called in registration order.
func (d *Designer) Subscribe(event Event, fn Observer) (unsubscribe func()) {
	o := &observer{fn: fn}
	d.observers[event] = append(d.observers[event], o)
	return func() {
		list := d.observers[event]
		for i, x := range list {
			if x == o {
				d.observers[event] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

func (d *Designer) emit(n Notification) {
	// Copy so observers may unsubscribe while being notified.
	list := append([]*observer(nil), d.observers[n.Event]...)
	for _, o := range list {
		o.fn(n)
	}
}
