package design

import (
	"fmt"

	"github.com/milk9111/tiledesigner/observable"
)

// Flag names one of the Designer's mode flags.
type Flag string

const (
	FlagEditable Flag = "editable"
	FlagClipping Flag = "clipping"
	FlagDrag     Flag = "drag"
	FlagTrash    Flag = "trash"
	FlagSafety   Flag = "safety"
)

// Flags lists every mode flag in display order.
var Flags = []Flag{FlagEditable, FlagClipping, FlagDrag, FlagTrash, FlagSafety}

// State returns the observable behind a flag.
func (d *Designer) State(f Flag) (*observable.Value[bool], error) {
	switch f {
	case FlagEditable:
		return d.editable, nil
	case FlagClipping:
		return d.clipping, nil
	case FlagDrag:
		return d.drag, nil
	case FlagTrash:
		return d.trash, nil
	case FlagSafety:
		return d.safety, nil
	}
	return nil, fmt.Errorf("design: unknown flag %q", f)
}

// Toggle flips a flag and returns its new value.
func (d *Designer) Toggle(f Flag) (bool, error) {
	v, err := d.State(f)
	if err != nil {
		return false, err
	}
	on := !v.Get()
	v.Set(on)
	return on, nil
}

func (d *Designer) Editable() *observable.Value[bool] { return d.editable }
func (d *Designer) Clipping() *observable.Value[bool] { return d.clipping }
func (d *Designer) Drag() *observable.Value[bool]     { return d.drag }
func (d *Designer) Trash() *observable.Value[bool]    { return d.trash }
func (d *Designer) Safety() *observable.Value[bool]   { return d.safety }

func (d *Designer) IsEditable() bool { return d.editable.Get() }
func (d *Designer) IsClipping() bool { return d.clipping.Get() }
func (d *Designer) IsDrag() bool     { return d.drag.Get() }
func (d *Designer) IsTrash() bool    { return d.trash.Get() }
func (d *Designer) IsSafety() bool   { return d.safety.Get() }

func (d *Designer) SetEditable(on bool) { d.editable.Set(on) }
func (d *Designer) SetClipping(on bool) { d.clipping.Set(on) }
func (d *Designer) SetDrag(on bool)     { d.drag.Set(on) }
func (d *Designer) SetTrash(on bool)    { d.trash.Set(on) }
func (d *Designer) SetSafety(on bool)   { d.safety.Set(on) }
