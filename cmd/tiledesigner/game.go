package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/tiledesigner/brush"
	"github.com/milk9111/tiledesigner/config"
	"github.com/milk9111/tiledesigner/design"
	"github.com/milk9111/tiledesigner/input"
	"github.com/milk9111/tiledesigner/input/device"
	"github.com/milk9111/tiledesigner/level"
	"github.com/milk9111/tiledesigner/render"
	"github.com/milk9111/tiledesigner/render/canvas"
	"github.com/milk9111/tiledesigner/script"
)

const (
	canvasElement = "canvas"
	canvasMargin  = 8
	macroTimeout  = 2 * time.Second
)

var screenColor = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}

// Game wires the input runtime, the designer and the control panel into
// ebiten's update/draw loop.
type Game struct {
	cfg       *config.Config
	log       logrus.FieldLogger
	designer  *design.Designer
	renderer  *canvas.TextureRenderer
	doc       *input.Document
	source    *device.Source
	bindings  *input.Bindings
	runner    *script.Runner
	watcher   *render.Watcher
	ui        *ebitenui.UI
	panel     *leftPanel
	levelPath string

	origin   image.Point
	hover    image.Point
	hovering bool

	unsubs []func()
}

func NewGame(cfg *config.Config, log logrus.FieldLogger, d *design.Designer, r *canvas.TextureRenderer, levelPath string) *Game {
	s := r.Surface()
	g := &Game{
		cfg:       cfg,
		log:       log,
		designer:  d,
		renderer:  r,
		doc:       input.NewDocument(),
		levelPath: levelPath,
		origin:    image.Pt(cfg.Window.PanelWidth+canvasMargin, canvasMargin),
	}
	g.source = device.NewSource(g.doc)
	g.bindings = input.NewBindings(g.doc, log)
	g.runner = script.NewRunner(d, script.Geometry{Width: s.Width(), Height: s.Height(), Cell: s.Cell()}, log)
	g.doc.SetElement(canvasElement, g.canvasBounds())

	g.loadMacros()
	g.ui, g.panel = buildUI(g)
	g.watchState()
	g.bindCanvas()
	g.bindKeymap()
	return g
}

func (g *Game) canvasBounds() image.Rectangle {
	s := g.renderer.Surface()
	return image.Rect(0, 0, s.Width(), s.Height()).Add(g.origin)
}

func (g *Game) local(ev input.Event) (int, int) {
	return ev.X - g.origin.X, ev.Y - g.origin.Y
}

// watchState keeps the panel in step with the designer's flags and the
// selected brush.
func (g *Game) watchState() {
	for _, f := range design.Flags {
		v, _ := g.designer.State(f)
		g.panel.modes.set(f, v.Get())
		g.unsubs = append(g.unsubs, v.Subscribe(func(_, on bool) {
			g.panel.modes.set(f, on)
		}))
	}
	g.unsubs = append(g.unsubs, g.designer.Brushes().Subscribe(func(b brush.Brush) {
		g.panel.setBrush(b)
	}))
	if b, ok := g.designer.Brushes().Active(); ok {
		g.panel.setBrush(b)
	}
	g.unsubs = append(g.unsubs, g.designer.Safety().Subscribe(func(_, on bool) {
		if !on {
			g.panel.confirm.hide()
		}
	}))
}

func (g *Game) loadMacros() {
	for _, m := range g.cfg.Macros {
		if err := g.runner.Load(m.Name, m.File); err != nil {
			g.log.WithField("macro", m.Name).Warnf("Macro not loaded: %v", err)
		}
	}
}

func (g *Game) Update() error {
	now := time.Now()
	g.panel.confirm.tick(now)
	if g.panel.confirm.visible() {
		g.doc.RemoveElement(canvasElement)
	} else {
		g.doc.SetElement(canvasElement, g.canvasBounds())
	}

	g.source.Update()
	g.ui.Update()

	cx, cy := ebiten.CursorPosition()
	bounds, ok := g.doc.Element(canvasElement)
	g.hovering = ok && image.Pt(cx, cy).In(bounds)

	g.pollWatcher()
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		name, ok := g.watcher.Poll()
		if !ok {
			break
		}
		if filepath.Clean(name) != filepath.Clean(g.cfg.Tilesets) {
			continue
		}
		if err := g.renderer.ReloadFrom(g.cfg.Tilesets); err != nil {
			g.log.Warnf("Tileset reload failed: %v", err)
			g.panel.setStatus("Tileset reload failed")
			continue
		}
		g.panel.setCatalog(g.renderer.Catalog())
		g.panel.setStatus("Tilesets reloaded")
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.Warnf("Tileset watcher: %v", err)
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(screenColor)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.origin.X), float64(g.origin.Y))
	g.renderer.Draw(screen, op)

	if g.hovering && g.designer.IsEditable() && !g.designer.IsTrash() {
		if b, ok := g.designer.Brushes().Active(); ok {
			x, y := g.hover.X, g.hover.Y
			g.renderer.DrawShadow(screen, op, g.designer.IsClipping(), b.Group, b.ID, x, y)
		}
	}

	g.ui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// requestDeleteAll clears the surface, going through the confirmation
// overlay while safety is on.
func (g *Game) requestDeleteAll() {
	g.designer.RequestRemoveAll(func() bool {
		g.panel.confirm.open(time.Now())
		return false
	})
}

func (g *Game) confirmDeleteAll() {
	g.designer.RemoveAll()
	g.panel.setStatus("Surface cleared")
}

func (g *Game) save() {
	if g.levelPath == "" {
		g.levelPath = level.NewPath(g.cfg.LevelsDir)
	}
	if err := level.Save(g.levelPath, level.FromSurface(g.renderer.Surface())); err != nil {
		g.log.Errorf("save error: %v", err)
		g.panel.setStatus("Save failed")
		return
	}
	g.log.Infof("saved to %s", g.levelPath)
	g.panel.setStatus("Saved " + filepath.Base(g.levelPath))
}

func (g *Game) copyLevel() {
	err := level.CopyToClipboard(level.FromSurface(g.renderer.Surface()))
	switch {
	case err == nil:
		g.panel.setStatus("Level copied")
	case errors.Is(err, level.ErrClipboardUnavailable):
		g.log.Warn(err)
		g.panel.setStatus("No clipboard available")
	default:
		g.log.Errorf("copy error: %v", err)
		g.panel.setStatus("Copy failed")
	}
}

func (g *Game) runMacro(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), macroTimeout)
	defer cancel()
	n, err := g.runner.Run(ctx, name)
	if err != nil {
		g.log.WithField("macro", name).Errorf("Macro failed: %v", err)
		g.panel.setStatus("Macro " + name + " failed")
		return
	}
	g.panel.setStatus(macroStatus(name, n))
}

func (g *Game) toggle(f design.Flag) {
	if _, err := g.designer.Toggle(f); err != nil {
		g.log.Warn(err)
	}
}

// Close detaches every binding and listener the game installed.
func (g *Game) Close() {
	for _, u := range g.unsubs {
		u()
	}
	g.unsubs = nil
	g.bindings.Close()
	g.designer.Close()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
