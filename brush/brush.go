// Package brush tracks the currently selected paintable unit.
package brush

import (
	"github.com/milk9111/tiledesigner/observable"
)

// Brush identifies one texture inside a tileset group.
type Brush struct {
	ID    string `json:"id" yaml:"id"`
	Group string `json:"group" yaml:"group"`
	Name  string `json:"name" yaml:"name"`
}

// Registry holds the single active brush. Selections overwrite in place.
type Registry struct {
	active *observable.Value[*Brush]
}

// Default is the process-wide registry used by editors that are not given
// their own.
var Default = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{active: observable.New[*Brush](nil)}
}

// Select replaces the active brush. No validation is applied.
func (r *Registry) Select(id, group, name string) Brush {
	b := &Brush{ID: id, Group: group, Name: name}
	r.active.Set(b)
	return *b
}

// Active returns the active brush and whether one has been selected.
func (r *Registry) Active() (Brush, bool) {
	b := r.active.Get()
	if b == nil {
		return Brush{}, false
	}
	return *b, true
}

// Subscribe notifies fn after every selection.
func (r *Registry) Subscribe(fn func(Brush)) func() {
	return r.active.Subscribe(func(_, b *Brush) {
		if b != nil {
			fn(*b)
		}
	})
}

// Reset clears the selection.
func (r *Registry) Reset() {
	r.active.Set(nil)
}
