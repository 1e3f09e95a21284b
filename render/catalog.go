package render

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

//go:embed tilesets.yaml
var defaultTilesets []byte

// ErrUnknownTileset is returned when a tileset name is not in the catalog.
var ErrUnknownTileset = errors.New("render: unknown tileset")

// TilesetSpec is one tileset entry of a tilesets yaml file.
type TilesetSpec struct {
	Name    string            `yaml:"name"`
	TileW   int               `yaml:"tile_w"`
	TileH   int               `yaml:"tile_h"`
	Cols    int               `yaml:"cols"`
	Rows    int               `yaml:"rows"`
	Image   string            `yaml:"image,omitempty"`
	Palette []string          `yaml:"palette"`
	Names   map[string]string `yaml:"names,omitempty"`
}

type catalogFile struct {
	Tilesets []TilesetSpec `yaml:"tilesets"`
}

// Texture is a single tile of a tileset.
type Texture struct {
	Group string
	ID    string
	Name  string
	W, H  int
	Image *image.RGBA
}

// Tileset is a loaded group of textures.
type Tileset struct {
	TilesetSpec
	textures map[string]*Texture
	ids      []string
}

// IDs lists the tileset's texture ids in row-major order.
func (t *Tileset) IDs() []string { return t.ids }

// Texture looks up a texture by id.
func (t *Tileset) Texture(id string) (*Texture, bool) {
	tex, ok := t.textures[id]
	return tex, ok
}

// Catalog holds every tileset available to the renderer.
type Catalog struct {
	sets   []*Tileset
	byName map[string]*Tileset
}

// LoadCatalog reads tilesets from path, or the built-in set when path is empty.
// Image paths are resolved relative to the yaml file.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultTilesets, "")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: load %s: %w", path, err)
	}
	c, err := ParseCatalog(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("render: %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog builds a catalog from tilesets yaml.
func ParseCatalog(data []byte, dir string) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("render: unmarshal tilesets: %w", err)
	}
	if len(f.Tilesets) == 0 {
		return nil, errors.New("render: no tilesets defined")
	}

	c := &Catalog{byName: make(map[string]*Tileset, len(f.Tilesets))}
	for _, spec := range f.Tilesets {
		if spec.Name == "" {
			return nil, errors.New("render: tileset without a name")
		}
		if _, dup := c.byName[spec.Name]; dup {
			return nil, fmt.Errorf("render: duplicate tileset %q", spec.Name)
		}
		if spec.TileW <= 0 || spec.TileH <= 0 || spec.Cols <= 0 || spec.Rows <= 0 {
			return nil, fmt.Errorf("render: tileset %q: sizes must be positive", spec.Name)
		}
		ts, err := buildTileset(spec, dir)
		if err != nil {
			return nil, fmt.Errorf("render: tileset %q: %w", spec.Name, err)
		}
		c.sets = append(c.sets, ts)
		c.byName[spec.Name] = ts
	}
	return c, nil
}

// Tilesets returns the tilesets in file order.
func (c *Catalog) Tilesets() []*Tileset { return c.sets }

// Tileset returns a tileset by name.
func (c *Catalog) Tileset(name string) (*Tileset, error) {
	ts, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTileset, name)
	}
	return ts, nil
}

// Texture looks up the texture id of group.
func (c *Catalog) Texture(group, id string) (*Texture, bool) {
	ts, ok := c.byName[group]
	if !ok {
		return nil, false
	}
	return ts.Texture(id)
}

// TileID formats a 1-based row/column as a texture id.
func TileID(row, col int) string {
	return strconv.Itoa(row) + "-" + strconv.Itoa(col)
}

// ParseTileID splits a texture id into its 1-based row and column.
func ParseTileID(id string) (row, col int, ok bool) {
	r, c, found := strings.Cut(id, "-")
	if !found {
		return 0, 0, false
	}
	row, err := strconv.Atoi(r)
	if err != nil || row < 1 {
		return 0, 0, false
	}
	col, err = strconv.Atoi(c)
	if err != nil || col < 1 {
		return 0, 0, false
	}
	return row, col, true
}

func buildTileset(spec TilesetSpec, dir string) (*Tileset, error) {
	var sheet image.Image
	if spec.Image != "" {
		p := spec.Image
		if !filepath.IsAbs(p) && dir != "" {
			p = filepath.Join(dir, p)
		}
		img, err := loadImage(p)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		if b.Dx() < spec.Cols*spec.TileW || b.Dy() < spec.Rows*spec.TileH {
			return nil, fmt.Errorf("image %s is smaller than %dx%d tiles", spec.Image, spec.Cols, spec.Rows)
		}
		sheet = img
	}

	palette := make([]color.RGBA, 0, len(spec.Palette))
	for _, name := range spec.Palette {
		col, ok := parseColor(name)
		if !ok {
			return nil, fmt.Errorf("unknown colour %q", name)
		}
		palette = append(palette, col)
	}
	if sheet == nil && len(palette) == 0 {
		palette = append(palette, colornames.Magenta)
	}

	ts := &Tileset{TilesetSpec: spec, textures: make(map[string]*Texture, spec.Cols*spec.Rows)}
	for row := 1; row <= spec.Rows; row++ {
		for col := 1; col <= spec.Cols; col++ {
			id := TileID(row, col)
			tex := &Texture{Group: spec.Name, ID: id, Name: spec.Names[id], W: spec.TileW, H: spec.TileH}
			if tex.Name == "" {
				tex.Name = spec.Name + " " + id
			}
			if sheet != nil {
				tex.Image = cropTile(sheet, spec, row, col)
			} else {
				tex.Image = proceduralTile(spec.TileW, spec.TileH, palette, row, col)
			}
			ts.textures[id] = tex
			ts.ids = append(ts.ids, id)
		}
	}
	return ts, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func cropTile(sheet image.Image, spec TilesetSpec, row, col int) *image.RGBA {
	origin := sheet.Bounds().Min
	src := image.Rect(0, 0, spec.TileW, spec.TileH).
		Add(image.Pt((col-1)*spec.TileW, (row-1)*spec.TileH)).
		Add(origin)
	dst := image.NewRGBA(image.Rect(0, 0, spec.TileW, spec.TileH))
	draw.Draw(dst, dst.Bounds(), sheet, src.Min, draw.Src)
	return dst
}

// proceduralTile fills a tile with a palette colour picked by position and a
// one pixel darker border so neighbouring tiles stay distinguishable.
func proceduralTile(w, h int, palette []color.RGBA, row, col int) *image.RGBA {
	base := palette[(row-1+col-1)%len(palette)]
	edge := shade(base, 0.6)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				img.SetRGBA(x, y, edge)
			} else {
				img.SetRGBA(x, y, base)
			}
		}
	}
	// mark the row with a short diagonal so same-colour tiles differ
	for i := 0; i < row && i+1 < min(w, h)-1; i++ {
		img.SetRGBA(1+i, 1+i, edge)
	}
	return img
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

// parseColor accepts a colornames name or #rrggbb.
func parseColor(s string) (color.RGBA, bool) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, true
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
	}
	return color.RGBA{}, false
}
