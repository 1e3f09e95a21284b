// Package input turns raw keyboard and pointer events into named,
// deduplicated, scoped callback registrations.
//
// A Document stands in for the native listener surface: it owns the element
// registry and dispatches Events to attached listeners. Bindings sits on top
// of a Target (normally the Document) and guarantees at most one live listener
// per Binding Key. The device subpackage feeds the Document from ebiten once
// per frame.
package input

import "fmt"

// EventType names a kind of raw input event.
type EventType string

const (
	KeyDown   EventType = "keydown"
	KeyUp     EventType = "keyup"
	MouseDown EventType = "mousedown"
	MouseUp   EventType = "mouseup"
	MouseMove EventType = "mousemove"
)

// Pointer reports whether events of this type carry a meaningful position.
func (t EventType) Pointer() bool {
	return t == MouseDown || t == MouseUp || t == MouseMove
}

// Event is a single raw input event.
type Event struct {
	Type EventType
	// Code is the key or button code ("KeyA", "MouseLeft"). Empty for motion.
	Code string
	// X, Y are the cursor position in screen pixels.
	X, Y int
	// Element is the id of the element the event was delivered to, empty for
	// document-level delivery.
	Element string
}

func (e Event) String() string {
	if e.Code == "" {
		return fmt.Sprintf("%s(%d,%d)", e.Type, e.X, e.Y)
	}
	return fmt.Sprintf("%s:%s(%d,%d)", e.Type, e.Code, e.X, e.Y)
}

// Handler is invoked when a binding fires.
type Handler func(Event)

// Mouse button codes.
const (
	MouseLeft   = "MouseLeft"
	MouseRight  = "MouseRight"
	MouseMiddle = "MouseMiddle"
)
