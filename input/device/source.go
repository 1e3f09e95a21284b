// Package device feeds ebiten's polled keyboard and mouse state into an
// input.Document as discrete events.
package device

import (
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/tiledesigner/input"
)

var mouseButtons = []struct {
	button ebiten.MouseButton
	code   string
}{
	{ebiten.MouseButtonLeft, input.MouseLeft},
	{ebiten.MouseButtonRight, input.MouseRight},
	{ebiten.MouseButtonMiddle, input.MouseMiddle},
}

// KeyCode converts an ebiten key into its code name. Letter keys get a "Key"
// prefix ("KeyA"); everything else uses ebiten's own name ("Digit1",
// "ControlLeft", "Escape").
func KeyCode(k ebiten.Key) string {
	name := k.String()
	if len(name) == 1 && unicode.IsLetter(rune(name[0])) {
		return "Key" + name
	}
	return name
}

// MouseCode converts an ebiten mouse button into its code name.
func MouseCode(b ebiten.MouseButton) string {
	for _, m := range mouseButtons {
		if m.button == b {
			return m.code
		}
	}
	return ""
}

// Source polls ebiten's input state and dispatches the differences to a
// Document. Call Update once per frame from Game.Update.
type Source struct {
	doc      *input.Document
	keys     []ebiten.Key
	lastX    int
	lastY    int
	hasFocus bool
	started  bool
	// down holds codes dispatched as pressed and not yet released, with the
	// event type to release them with.
	down map[string]input.EventType
}

func NewSource(doc *input.Document) *Source {
	return &Source{doc: doc, down: make(map[string]input.EventType)}
}

// Update dispatches this frame's key, button and motion events.
func (s *Source) Update() {
	mx, my := ebiten.CursorPosition()

	focused := ebiten.IsFocused()
	if s.hasFocus && !focused {
		// releases are lost while unfocused
		s.releaseAll(mx, my)
	}
	s.hasFocus = focused

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.press(input.KeyDown, input.KeyUp, KeyCode(k), mx, my)
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.release(KeyCode(k), mx, my)
	}

	if !s.started || mx != s.lastX || my != s.lastY {
		s.started = true
		s.lastX, s.lastY = mx, my
		s.doc.Dispatch(input.Event{Type: input.MouseMove, X: mx, Y: my})
	}

	for _, m := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(m.button) {
			s.press(input.MouseDown, input.MouseUp, m.code, mx, my)
		}
		if inpututil.IsMouseButtonJustReleased(m.button) {
			s.release(m.code, mx, my)
		}
	}
}

func (s *Source) press(typ, release input.EventType, code string, x, y int) {
	s.down[code] = release
	s.doc.Dispatch(input.Event{Type: typ, Code: code, X: x, Y: y})
}

func (s *Source) release(code string, x, y int) {
	typ, ok := s.down[code]
	if !ok {
		return
	}
	delete(s.down, code)
	s.doc.Dispatch(input.Event{Type: typ, Code: code, X: x, Y: y})
}

func (s *Source) releaseAll(x, y int) {
	for code := range s.down {
		s.release(code, x, y)
	}
}
