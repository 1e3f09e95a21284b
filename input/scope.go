package input

// Scope says where a listener is attached: the whole document or a single
// element. The zero value is Global.
type Scope struct {
	element string
}

// Global attaches to the document.
func Global() Scope { return Scope{} }

// ScopedTo attaches to the element with the given id. An empty id yields Global.
func ScopedTo(elementID string) Scope { return Scope{element: elementID} }

// IsGlobal reports whether the scope is document-wide.
func (s Scope) IsGlobal() bool { return s.element == "" }

// Element returns the element id, or "" for Global.
func (s Scope) Element() string { return s.element }

func (s Scope) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return "#" + s.element
}
