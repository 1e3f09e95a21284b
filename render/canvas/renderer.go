// Package canvas draws a render.Surface with ebiten.
package canvas

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/tiledesigner/logging"
	"github.com/milk9111/tiledesigner/render"
)

var (
	backgroundColor = color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff}
	gridColor       = color.RGBA{R: 0x30, G: 0x30, B: 0x3c, A: 0xff}
)

// TextureRenderer draws a Surface into an offscreen image.
type TextureRenderer struct {
	surface     *render.Surface
	catalogPath string
	catalog     *render.Catalog
	log         logrus.FieldLogger

	ready    bool
	canvas   *ebiten.Image
	cellImg  *ebiten.Image
	textures map[string]*ebiten.Image
}

// RendererOption configures a TextureRenderer.
type RendererOption func(*TextureRenderer)

// WithCatalogPath loads tilesets from a yaml file instead of the built-in set.
func WithCatalogPath(path string) RendererOption {
	return func(r *TextureRenderer) { r.catalogPath = path }
}

// WithCatalog uses an already loaded catalog.
func WithCatalog(c *render.Catalog) RendererOption {
	return func(r *TextureRenderer) { r.catalog = c }
}

func WithLogger(l logrus.FieldLogger) RendererOption {
	return func(r *TextureRenderer) { r.log = l }
}

// NewTextureRenderer creates a renderer over s. Call Init before use.
func NewTextureRenderer(s *render.Surface, opts ...RendererOption) *TextureRenderer {
	r := &TextureRenderer{surface: s, textures: make(map[string]*ebiten.Image)}
	for _, opt := range opts {
		opt(r)
	}
	r.log = logging.Component(r.log, "canvas")
	return r
}

// Init loads the tileset catalog and allocates the offscreen canvas.
func (r *TextureRenderer) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.catalog == nil {
		c, err := render.LoadCatalog(r.catalogPath)
		if err != nil {
			return err
		}
		r.catalog = c
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.canvas = ebiten.NewImage(r.surface.Width(), r.surface.Height())
	r.cellImg = ebiten.NewImage(r.surface.Cell(), r.surface.Cell())
	r.cellImg.Fill(gridColor)
	r.ready = true
	r.log.Debug(logging.LoadingTexture)
	r.Render()
	return nil
}

func (r *TextureRenderer) ensureReady(op string) bool {
	if !r.ready {
		r.log.WithField("op", op).Error("renderer used before Init")
		return false
	}
	return true
}

// AddTexture implements design.Renderer.
func (r *TextureRenderer) AddTexture(clipping bool, textureType, group, id string, x, y int) []image.Point {
	if !r.ensureReady("add") {
		return nil
	}
	tex, ok := r.catalog.Texture(group, id)
	if !ok {
		r.log.Warn(logging.FailedTexture, " ", group, "/", id)
		return nil
	}
	r.log.Debug(logging.AddingTexture, " ", tex.Name)
	return r.surface.Add(clipping, textureType, group, id, x, y, tex.W, tex.H)
}

// RemoveTexture implements design.Renderer. The brush identity is not used
// to match; whatever is under the point goes.
func (r *TextureRenderer) RemoveTexture(clipping bool, textureType, group, id string, x, y int) []image.Point {
	if !r.ensureReady("remove") {
		return nil
	}
	return r.surface.Remove(clipping, textureType, x, y)
}

// RemoveAllTexture implements design.Renderer.
func (r *TextureRenderer) RemoveAllTexture() {
	r.surface.Clear()
}

// Render redraws the offscreen canvas from the surface.
func (r *TextureRenderer) Render() {
	if !r.ready {
		return
	}
	r.canvas.Fill(backgroundColor)
	r.drawGrid()
	for _, p := range r.surface.Placements() {
		img, err := r.image(p.Group, p.ID)
		if err != nil {
			r.log.Warn(logging.FailedTexture, " ", err)
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(p.X), float64(p.Y))
		r.canvas.DrawImage(img, op)
	}
}

func (r *TextureRenderer) drawGrid() {
	cell := r.surface.Cell()
	for y := 0; y < r.surface.Rows(); y++ {
		for x := 0; x < r.surface.Cols(); x++ {
			if (x+y)%2 != 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x*cell), float64(y*cell))
			r.canvas.DrawImage(r.cellImg, op)
		}
	}
}

func (r *TextureRenderer) image(group, id string) (*ebiten.Image, error) {
	key := group + "/" + id
	if img, ok := r.textures[key]; ok {
		return img, nil
	}
	tex, ok := r.catalog.Texture(group, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", render.ErrUnknownTileset, key)
	}
	img := ebiten.NewImageFromImage(tex.Image)
	r.textures[key] = img
	return img, nil
}

// Draw blits the canvas onto screen.
func (r *TextureRenderer) Draw(screen *ebiten.Image, op *ebiten.DrawImageOptions) {
	if !r.ready {
		return
	}
	screen.DrawImage(r.canvas, op)
}

// DrawShadow draws a translucent preview of a texture where it would land.
func (r *TextureRenderer) DrawShadow(screen *ebiten.Image, op *ebiten.DrawImageOptions, clipping bool, group, id string, x, y int) {
	if !r.ready || group == "" {
		return
	}
	img, err := r.image(group, id)
	if err != nil {
		return
	}
	if clipping {
		pt := r.surface.Snap(x, y)
		x, y = pt.X, pt.Y
	}
	sop := &ebiten.DrawImageOptions{}
	sop.GeoM.Translate(float64(x), float64(y))
	if op != nil {
		sop.GeoM.Concat(op.GeoM)
	}
	sop.ColorScale.ScaleAlpha(0.5)
	screen.DrawImage(img, sop)
}

// Reload swaps in a new catalog. Placements whose textures vanished are kept
// on the surface but skipped when drawing.
func (r *TextureRenderer) Reload(c *render.Catalog) error {
	if c == nil {
		return errors.New("canvas: reload with nil catalog")
	}
	r.catalog = c
	for k, img := range r.textures {
		img.Deallocate()
		delete(r.textures, k)
	}
	r.log.Info(logging.LoadingTexture)
	r.Render()
	return nil
}

// ReloadFrom loads the catalog at path and swaps it in.
func (r *TextureRenderer) ReloadFrom(path string) error {
	c, err := render.LoadCatalog(path)
	if err != nil {
		return err
	}
	return r.Reload(c)
}

func (r *TextureRenderer) Catalog() *render.Catalog { return r.catalog }
func (r *TextureRenderer) Surface() *render.Surface { return r.surface }
