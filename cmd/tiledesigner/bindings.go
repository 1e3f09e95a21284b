package main

import (
	"fmt"

	"github.com/milk9111/tiledesigner/config"
	"github.com/milk9111/tiledesigner/design"
	"github.com/milk9111/tiledesigner/input"
)

var actionFlags = map[string]design.Flag{
	config.ActionToggleEdit:   design.FlagEditable,
	config.ActionToggleClip:   design.FlagClipping,
	config.ActionToggleDrag:   design.FlagDrag,
	config.ActionToggleTrash:  design.FlagTrash,
	config.ActionToggleSafety: design.FlagSafety,
}

// bindCanvas installs the pointer bindings scoped to the canvas element.
func (g *Game) bindCanvas() {
	scope := input.InScope(input.ScopedTo(canvasElement))

	g.bindings.AddBinding(func(ev input.Event) {
		x, y := g.local(ev)
		switch ev.Type {
		case input.MouseDown:
			g.designer.Paint(x, y)
		case input.MouseMove:
			g.designer.Stroke(x, y)
		}
	}, []string{input.MouseLeft}, []input.EventType{input.MouseDown, input.MouseMove}, input.Repeat(), scope)

	g.bindings.AddBinding(func(ev input.Event) {
		x, y := g.local(ev)
		g.hover.X, g.hover.Y = x, y
	}, nil, []input.EventType{input.MouseMove}, input.Repeat(), scope)
}

// bindKeymap installs the configured action and macro chords.
func (g *Game) bindKeymap() {
	for _, action := range config.Actions {
		b, ok := g.cfg.Keymap[action]
		if !ok || len(b.Keys) == 0 {
			continue
		}
		g.bindChord(action, g.actionHandler(action), b.Keys, input.EventType(b.Event()), b.Repeats())
	}
	loaded := make(map[string]bool)
	for _, n := range g.runner.Names() {
		loaded[n] = true
	}
	for _, m := range g.cfg.Macros {
		if len(m.Keys) == 0 || !loaded[m.Name] {
			continue
		}
		name := m.Name
		g.bindChord("macro "+name, func(input.Event) { g.runMacro(name) }, m.Keys, input.KeyDown, true)
	}
}

func (g *Game) bindChord(label string, h input.Handler, keys []string, typ input.EventType, repeat bool) {
	key := input.BindingKey(keys, typ, false)
	if g.bindings.Has(key) {
		g.log.WithField("key", key).Warnf("%s replaces an existing binding", label)
	}
	g.bindings.AddBinding(h, keys, []input.EventType{typ}, input.Once(!repeat))
}

func (g *Game) actionHandler(action string) input.Handler {
	if f, ok := actionFlags[action]; ok {
		return func(input.Event) { g.toggle(f) }
	}
	switch action {
	case config.ActionDeleteAll:
		return func(input.Event) { g.requestDeleteAll() }
	case config.ActionSave:
		return func(input.Event) { g.save() }
	case config.ActionCopy:
		return func(input.Event) { g.copyLevel() }
	}
	return func(input.Event) {}
}

func macroStatus(name string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%s: 1 cell", name)
	}
	return fmt.Sprintf("%s: %d cells", name, n)
}
