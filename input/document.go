package input

import (
	"image"
	"sync"
)

// ListenerID identifies one attached listener so it can be detached later.
type ListenerID uint64

// Target is the native listener surface bindings attach to.
type Target interface {
	Attach(scope Scope, typ EventType, fn func(Event)) ListenerID
	Detach(scope Scope, typ EventType, id ListenerID)
}

type listener struct {
	id    ListenerID
	scope Scope
	typ   EventType
	fn    func(Event)
}

// Document is an in-process event target. Elements are rectangular screen
// regions; pointer events reach an element's listeners while the cursor is
// inside it, key events while it holds focus.
type Document struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners []listener
	elements  map[string]image.Rectangle
	order     []string
	focus     string
}

func NewDocument() *Document {
	return &Document{elements: make(map[string]image.Rectangle)}
}

// SetElement registers or moves an element.
func (d *Document) SetElement(id string, bounds image.Rectangle) {
	if id == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.elements[id]; !ok {
		d.order = append(d.order, id)
	}
	d.elements[id] = bounds
}

// RemoveElement forgets an element. Listeners attached to it stay attached but
// receive nothing until the element is registered again.
func (d *Document) RemoveElement(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.elements[id]; !ok {
		return
	}
	delete(d.elements, id)
	for i, e := range d.order {
		if e == id {
			d.order = append(d.order[:i:i], d.order[i+1:]...)
			break
		}
	}
	if d.focus == id {
		d.focus = ""
	}
}

// Element returns the bounds of a registered element.
func (d *Document) Element(id string) (image.Rectangle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.elements[id]
	return r, ok
}

// Focus returns the focused element id, if any.
func (d *Document) Focus() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focus
}

// Attach implements Target.
func (d *Document) Attach(scope Scope, typ EventType, fn func(Event)) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.listeners = append(d.listeners, listener{id: d.nextID, scope: scope, typ: typ, fn: fn})
	return d.nextID
}

// Detach implements Target. Unknown ids are ignored.
func (d *Document) Detach(scope Scope, typ EventType, id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l.id == id && l.scope == scope && l.typ == typ {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns how many listeners are attached.
func (d *Document) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Dispatch delivers ev. Document listeners run first, then listeners of every
// element the event reaches, each group in attachment order. Listeners
// detached by an earlier callback in the same dispatch are skipped.
func (d *Document) Dispatch(ev Event) {
	d.mu.Lock()
	if ev.Type == MouseDown {
		d.focus = d.hitLocked(ev.X, ev.Y)
	}
	reached := make(map[string]bool)
	if ev.Type.Pointer() {
		pt := image.Pt(ev.X, ev.Y)
		for id, r := range d.elements {
			if pt.In(r) {
				reached[id] = true
			}
		}
	} else if d.focus != "" {
		reached[d.focus] = true
	}

	var global, scoped []listener
	for _, l := range d.listeners {
		if l.typ != ev.Type {
			continue
		}
		if l.scope.IsGlobal() {
			global = append(global, l)
		} else if reached[l.scope.Element()] {
			scoped = append(scoped, l)
		}
	}
	d.mu.Unlock()

	for _, l := range global {
		if d.attached(l.id) {
			l.fn(ev)
		}
	}
	for _, l := range scoped {
		if d.attached(l.id) {
			e := ev
			e.Element = l.scope.Element()
			l.fn(e)
		}
	}
}

// hitLocked returns the most recently registered element under the point.
func (d *Document) hitLocked(x, y int) string {
	pt := image.Pt(x, y)
	for i := len(d.order) - 1; i >= 0; i-- {
		if pt.In(d.elements[d.order[i]]) {
			return d.order[i]
		}
	}
	return ""
}

func (d *Document) attached(id ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}
