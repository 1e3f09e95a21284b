// Package design is the editor state machine. It gates placement and removal
// requests on the mode flags and the active brush and forwards them to a
// Renderer.
package design

import (
	"context"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/tiledesigner/brush"
	"github.com/milk9111/tiledesigner/logging"
	"github.com/milk9111/tiledesigner/observable"
)

// DefaultTextureType is the texture layer tiles are painted into.
const DefaultTextureType = "tiles"

// Renderer is the drawing backend the Designer delegates to. Init must have
// returned before any placement call.
type Renderer interface {
	Init(ctx context.Context) error
	AddTexture(clipping bool, textureType, group, id string, x, y int) []image.Point
	RemoveTexture(clipping bool, textureType, group, id string, x, y int) []image.Point
	RemoveAllTexture()
	Render()
}

// Designer owns the five mode flags of one editor instance.
type Designer struct {
	renderer    Renderer
	brushes     *brush.Registry
	textureType string
	log         logrus.FieldLogger

	editable *observable.Value[bool]
	clipping *observable.Value[bool]
	drag     *observable.Value[bool]
	trash    *observable.Value[bool]
	safety   *observable.Value[bool]

	unsubs []func()
}

// Option configures a Designer.
type Option func(*Designer)

// WithBrushes gives the Designer its own brush registry instead of brush.Default.
func WithBrushes(r *brush.Registry) Option {
	return func(d *Designer) {
		if r != nil {
			d.brushes = r
		}
	}
}

// WithTextureType overrides the texture layer tiles are painted into.
func WithTextureType(t string) Option {
	return func(d *Designer) {
		if t != "" {
			d.textureType = t
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Designer) { d.log = l }
}

// New creates a Designer. Flags start with editing off, clipping on, drag and
// trash off and safety on.
func New(r Renderer, opts ...Option) *Designer {
	d := &Designer{
		renderer:    r,
		brushes:     brush.Default,
		textureType: DefaultTextureType,
		editable:    observable.New(false),
		clipping:    observable.New(true),
		drag:        observable.New(false),
		trash:       observable.New(false),
		safety:      observable.New(true),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = logging.Component(d.log, "design")
	d.logToggles()
	return d
}

func (d *Designer) logToggles() {
	for _, f := range []struct {
		v   *observable.Value[bool]
		msg string
	}{
		{d.editable, logging.Editing},
		{d.clipping, logging.Clipping},
		{d.drag, logging.Drag},
		{d.trash, logging.Trash},
		{d.safety, logging.Safety},
	} {
		msg := f.msg
		d.unsubs = append(d.unsubs, f.v.Subscribe(func(_, on bool) {
			d.log.Info(msg, " ", logging.OnOff(on))
		}))
	}
}

// Init waits for the renderer to finish setting up.
func (d *Designer) Init(ctx context.Context) error {
	return d.renderer.Init(ctx)
}

// Close drops the Designer's own flag subscriptions.
func (d *Designer) Close() {
	for _, u := range d.unsubs {
		u()
	}
	d.unsubs = nil
}

// Add places the active brush at (x, y). It returns the affected locations,
// or nothing when editing is off, no brush is selected, or the renderer
// refused the placement.
func (d *Designer) Add(x, y int) []image.Point {
	if !d.editable.Get() {
		return nil
	}
	b, ok := d.brushes.Active()
	if !ok {
		d.log.Warn(logging.BrushNotSet)
		return nil
	}
	locs := d.renderer.AddTexture(d.clipping.Get(), d.textureType, b.Group, b.ID, x, y)
	d.renderer.Render()
	if len(locs) > 0 {
		d.log.WithFields(logrus.Fields{"group": b.Group, "id": b.ID}).Debug(logging.RenderPosition, " ", locs)
	}
	return locs
}

// Remove erases the texture at (x, y). Unlike Add it does not consult the
// editable flag. With no brush selected the identity is passed empty.
func (d *Designer) Remove(x, y int) []image.Point {
	b, _ := d.brushes.Active()
	locs := d.renderer.RemoveTexture(d.clipping.Get(), d.textureType, b.Group, b.ID, x, y)
	if len(locs) > 0 {
		d.renderer.Render()
		d.log.Debug(logging.RemovePosition, " ", locs)
	}
	return locs
}

// RemoveAll clears the surface unconditionally. Callers confirm first when
// Safety is on; see RequestRemoveAll.
func (d *Designer) RemoveAll() {
	d.renderer.RemoveAllTexture()
	d.renderer.Render()
	d.log.Info("surface cleared")
}

// RequestRemoveAll clears the surface, asking confirm first when Safety is
// on. It reports whether the clear happened.
func (d *Designer) RequestRemoveAll(confirm func() bool) bool {
	if d.safety.Get() {
		d.log.Info(logging.SeriousAction)
		if confirm == nil || !confirm() {
			return false
		}
	}
	d.RemoveAll()
	return true
}

// Paint is a single click on the surface: it erases in trash mode and places
// otherwise.
func (d *Designer) Paint(x, y int) []image.Point {
	if d.trash.Get() {
		return d.Remove(x, y)
	}
	return d.Add(x, y)
}

// Stroke is pointer motion with the button held. It paints only in drag mode.
func (d *Designer) Stroke(x, y int) []image.Point {
	if !d.drag.Get() {
		return nil
	}
	return d.Paint(x, y)
}

// SelectBrush replaces the active brush of this Designer's registry.
func (d *Designer) SelectBrush(id, group, name string) {
	d.brushes.Select(id, group, name)
	d.log.Info(logging.BrushSelected, " ", name)
}

// Brushes returns the registry this Designer paints with.
func (d *Designer) Brushes() *brush.Registry { return d.brushes }

// TextureType returns the layer this Designer paints into.
func (d *Designer) TextureType() string { return d.textureType }

// SelectBrush replaces the process-wide active brush.
func SelectBrush(id, group, name string) {
	brush.Default.Select(id, group, name)
	logging.Component(nil, "design").Info(logging.BrushSelected, " ", name)
}
