package input

import "sync"

// Context tracks which codes are currently held on one scope. Bindings consult
// it to match chords such as ControlLeft+KeyS.
type Context struct {
	mu     sync.Mutex
	target Target
	scope  Scope
	held   map[string]bool
	ids    map[EventType]attachment
}

type attachment struct {
	scope Scope
	id    ListenerID
}

var heldTypes = []EventType{KeyDown, KeyUp, MouseDown, MouseUp}

// NewContext attaches a held-state tracker to scope on target. Presses are
// observed on the scope; releases are observed document-wide so a button let
// go outside an element does not stay held.
func NewContext(target Target, scope Scope) *Context {
	c := &Context{
		target: target,
		scope:  scope,
		held:   make(map[string]bool),
		ids:    make(map[EventType]attachment, len(heldTypes)),
	}
	for _, typ := range heldTypes {
		s := scope
		if typ == KeyUp || typ == MouseUp {
			s = Global()
		}
		c.ids[typ] = attachment{scope: s, id: target.Attach(s, typ, c.observe)}
	}
	return c
}

// Scope returns the scope the context tracks.
func (c *Context) Scope() Scope { return c.scope }

func (c *Context) observe(ev Event) {
	if ev.Code == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch ev.Type {
	case KeyDown, MouseDown:
		c.held[ev.Code] = true
	case KeyUp, MouseUp:
		delete(c.held, ev.Code)
	}
}

// Held reports whether code is currently down.
func (c *Context) Held(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held[code]
}

// Matches reports whether ev satisfies a binding on codes. A coded event
// matches when its code is one of codes and every other code is held. A
// codeless event (motion) matches when all codes are held.
func (c *Context) Matches(codes []string, ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ev.Code != "" {
		found := false
		for _, code := range codes {
			if code == ev.Code {
				found = true
				continue
			}
			if !c.held[code] {
				return false
			}
		}
		return found
	}
	for _, code := range codes {
		if !c.held[code] {
			return false
		}
	}
	return true
}

// Reset forgets all held codes, e.g. after the window loses focus.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.held = make(map[string]bool)
}

// Close detaches the context's listeners.
func (c *Context) Close() {
	c.mu.Lock()
	ids := c.ids
	c.ids = nil
	c.mu.Unlock()
	for typ, a := range ids {
		c.target.Detach(a.scope, typ, a.id)
	}
}
