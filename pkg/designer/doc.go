// Package designer sequences user gestures and property edits over one
// layout tree.
//
// A [Designer] owns the tree (through an [engine.Engine]), the mirrored
// host elements it draws into, a [drag.Controller] for gestures and a
// renderer from a [render.Factory]. Every structural change re-mirrors the
// host elements, re-renders and publishes a notification.
//
// # Host boundary
//
// The container passed to [New] bounds everything the designer touches.
// The canvas is mounted inside it; the property panel is mounted next to
// it and registered as the only exception region. Gestures aimed at
// anything else are logged and ignored.
//
// # Notifications
//
// Observers subscribe per event name. Delivery is synchronous, inside the
// call that caused the change:
//
//	d.Subscribe(designer.EventFormChanged, func(n designer.Notification) {
//	    fmt.Println(len(n.Rows), "rows")
//	})
//
// [EventFormChanged] carries a deep copy of the rows after every structural
// change. [EventPropertyChanged] carries the edited attribute.
//
// # Concurrency
//
// A Designer is not safe for concurrent use.
package designer
