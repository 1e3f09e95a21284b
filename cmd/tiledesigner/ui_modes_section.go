package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tiledesigner/design"
)

var flagTitles = map[design.Flag]string{
	design.FlagEditable: "Edit",
	design.FlagClipping: "Snap to grid",
	design.FlagDrag:     "Drag paint",
	design.FlagTrash:    "Eraser",
	design.FlagSafety:   "Confirm clear",
}

type modesSection struct {
	buttons map[design.Flag]*widget.Button
}

func addModesSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, onToggle func(f design.Flag)) *modesSection {
	parent.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Modes", fontFace, labelColor),
	))

	m := &modesSection{buttons: make(map[design.Flag]*widget.Button, len(design.Flags))}
	for _, f := range design.Flags {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(modeLabel(f, false), fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onToggle(f)
			}),
		)
		m.buttons[f] = btn
		parent.AddChild(btn)
	}
	return m
}

// set relabels the button for f.
func (m *modesSection) set(f design.Flag, on bool) {
	btn, ok := m.buttons[f]
	if !ok {
		return
	}
	if t := btn.Text(); t != nil {
		t.Label = modeLabel(f, on)
	}
}

func modeLabel(f design.Flag, on bool) string {
	state := "Off"
	if on {
		state = "On"
	}
	return flagTitles[f] + ": " + state
}
