package input

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentDispatchOrder(t *testing.T) {
	d := NewDocument()
	d.SetElement("canvas", image.Rect(0, 0, 10, 10))

	var order []string
	d.Attach(ScopedTo("canvas"), MouseDown, func(Event) { order = append(order, "canvas") })
	d.Attach(Global(), MouseDown, func(Event) { order = append(order, "doc1") })
	d.Attach(Global(), MouseDown, func(Event) { order = append(order, "doc2") })
	d.Attach(Global(), MouseUp, func(Event) { order = append(order, "up") })

	d.Dispatch(Event{Type: MouseDown, Code: MouseLeft, X: 5, Y: 5})
	assert.Equal(t, []string{"doc1", "doc2", "canvas"}, order)
}

func TestDocumentPointerScoping(t *testing.T) {
	d := NewDocument()
	d.SetElement("a", image.Rect(0, 0, 10, 10))
	d.SetElement("b", image.Rect(5, 5, 20, 20))

	hits := map[string]int{}
	for _, id := range []string{"a", "b"} {
		d.Attach(ScopedTo(id), MouseMove, func(ev Event) {
			assert.Equal(t, id, ev.Element)
			hits[id]++
		})
	}

	d.Dispatch(Event{Type: MouseMove, X: 7, Y: 7})
	d.Dispatch(Event{Type: MouseMove, X: 15, Y: 15})
	d.Dispatch(Event{Type: MouseMove, X: 50, Y: 50})
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, hits)
}

func TestDocumentKeyEventsFollowFocus(t *testing.T) {
	d := NewDocument()
	d.SetElement("canvas", image.Rect(0, 0, 10, 10))
	d.SetElement("panel", image.Rect(20, 0, 30, 10))

	var got []string
	d.Attach(ScopedTo("canvas"), KeyDown, func(ev Event) { got = append(got, ev.Element) })

	d.Dispatch(Event{Type: KeyDown, Code: "KeyA"})
	assert.Empty(t, got, "nothing focused yet")

	d.Dispatch(Event{Type: MouseDown, Code: MouseLeft, X: 1, Y: 1})
	require.Equal(t, "canvas", d.Focus())
	d.Dispatch(Event{Type: KeyDown, Code: "KeyA"})
	assert.Equal(t, []string{"canvas"}, got)

	d.Dispatch(Event{Type: MouseDown, Code: MouseLeft, X: 25, Y: 1})
	assert.Equal(t, "panel", d.Focus())
	d.Dispatch(Event{Type: KeyDown, Code: "KeyA"})
	assert.Len(t, got, 1)
}

func TestDocumentOverlappingFocusPrefersLatest(t *testing.T) {
	d := NewDocument()
	d.SetElement("canvas", image.Rect(0, 0, 100, 100))
	d.SetElement("dialog", image.Rect(40, 40, 60, 60))

	d.Dispatch(Event{Type: MouseDown, Code: MouseLeft, X: 50, Y: 50})
	assert.Equal(t, "dialog", d.Focus())
}

func TestDocumentDetachDuringDispatch(t *testing.T) {
	d := NewDocument()
	var second ListenerID
	n := 0
	d.Attach(Global(), KeyDown, func(Event) { d.Detach(Global(), KeyDown, second) })
	second = d.Attach(Global(), KeyDown, func(Event) { n++ })

	d.Dispatch(Event{Type: KeyDown, Code: "KeyA"})
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, d.Listeners())
}

func TestDocumentDetachNeedsMatchingScopeAndType(t *testing.T) {
	d := NewDocument()
	id := d.Attach(ScopedTo("canvas"), KeyDown, func(Event) {})

	d.Detach(Global(), KeyDown, id)
	d.Detach(ScopedTo("canvas"), KeyUp, id)
	assert.Equal(t, 1, d.Listeners())

	d.Detach(ScopedTo("canvas"), KeyDown, id)
	assert.Equal(t, 0, d.Listeners())
}

func TestDocumentRemoveElement(t *testing.T) {
	d := NewDocument()
	d.SetElement("canvas", image.Rect(0, 0, 10, 10))
	n := 0
	d.Attach(ScopedTo("canvas"), MouseDown, func(Event) { n++ })

	d.Dispatch(Event{Type: MouseDown, Code: MouseLeft, X: 1, Y: 1})
	d.RemoveElement("canvas")
	d.Dispatch(Event{Type: MouseDown, Code: MouseLeft, X: 1, Y: 1})

	assert.Equal(t, 1, n)
	assert.Equal(t, "", d.Focus())
	_, ok := d.Element("canvas")
	assert.False(t, ok)
}

func TestScope(t *testing.T) {
	assert.True(t, Global().IsGlobal())
	assert.True(t, ScopedTo("").IsGlobal())
	assert.Equal(t, "canvas", ScopedTo("canvas").Element())
	assert.Equal(t, "#canvas", ScopedTo("canvas").String())
	assert.Equal(t, "global", Global().String())
}

func TestContextMatches(t *testing.T) {
	d := NewDocument()
	c := NewContext(d, Global())
	defer c.Close()

	assert.False(t, c.Matches([]string{"KeyA"}, Event{Type: KeyDown, Code: "KeyB"}))
	assert.True(t, c.Matches([]string{"KeyA"}, Event{Type: KeyDown, Code: "KeyA"}))
	assert.False(t, c.Matches([]string{"KeyA"}, Event{Type: MouseMove}))
	assert.False(t, c.Matches(nil, Event{Type: KeyDown, Code: "KeyA"}))

	d.Dispatch(Event{Type: KeyDown, Code: "KeyA"})
	assert.True(t, c.Held("KeyA"))
	assert.True(t, c.Matches([]string{"KeyA"}, Event{Type: MouseMove}))

	c.Reset()
	assert.False(t, c.Held("KeyA"))
}
