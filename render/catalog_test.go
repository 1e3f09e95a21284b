package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	var names []string
	for _, ts := range c.Tilesets() {
		names = append(names, ts.Name)
	}
	assert.Equal(t, []string{"dungeon", "grassland"}, names)

	tex, ok := c.Texture("dungeon", "1-1")
	require.True(t, ok)
	assert.Equal(t, "floor", tex.Name)
	assert.Equal(t, 16, tex.W)
	assert.Equal(t, image.Rect(0, 0, 16, 16), tex.Image.Bounds())

	tall, ok := c.Texture("grassland", "2-1")
	require.True(t, ok)
	assert.Equal(t, 32, tall.H)

	unnamed, ok := c.Texture("dungeon", "3-3")
	require.True(t, ok)
	assert.Equal(t, "dungeon 3-3", unnamed.Name)

	_, ok = c.Texture("dungeon", "9-9")
	assert.False(t, ok)
	_, ok = c.Texture("volcano", "1-1")
	assert.False(t, ok)
}

func TestCatalogTilesetLookup(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	ts, err := c.Tileset("dungeon")
	require.NoError(t, err)
	assert.Len(t, ts.IDs(), 16)
	assert.Equal(t, "1-1", ts.IDs()[0])
	assert.Equal(t, "1-2", ts.IDs()[1])
	assert.Equal(t, "4-4", ts.IDs()[15])

	_, err = c.Tileset("volcano")
	assert.ErrorIs(t, err, ErrUnknownTileset)
}

func TestProceduralTilesUsePalette(t *testing.T) {
	c, err := ParseCatalog([]byte(`
tilesets:
  - name: test
    tile_w: 4
    tile_h: 4
    cols: 2
    rows: 1
    palette: [red, "#00ff00"]
`), "")
	require.NoError(t, err)

	a, _ := c.Texture("test", "1-1")
	b, _ := c.Texture("test", "1-2")
	assert.Equal(t, colornames.Red, a.Image.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, b.Image.RGBAAt(2, 1))
	assert.NotEqual(t, a.Image.RGBAAt(2, 1), a.Image.RGBAAt(0, 0), "border is darker")
}

func TestParseCatalogErrors(t *testing.T) {
	cases := map[string]string{
		"empty":     `tilesets: []`,
		"no_name":   "tilesets:\n  - tile_w: 1\n    tile_h: 1\n    cols: 1\n    rows: 1\n",
		"bad_size":  "tilesets:\n  - name: a\n    tile_w: 0\n    tile_h: 1\n    cols: 1\n    rows: 1\n",
		"duplicate": "tilesets:\n  - {name: a, tile_w: 1, tile_h: 1, cols: 1, rows: 1}\n  - {name: a, tile_w: 1, tile_h: 1, cols: 1, rows: 1}\n",
		"colour":    "tilesets:\n  - {name: a, tile_w: 1, tile_h: 1, cols: 1, rows: 1, palette: [notacolour]}\n",
		"yaml":      "tilesets: [",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(src), "")
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogFromDiskWithImage(t *testing.T) {
	dir := t.TempDir()

	sheet := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		for y := 0; y < 4; y++ {
			if x < 4 {
				sheet.SetRGBA(x, y, colornames.Blue)
			} else {
				sheet.SetRGBA(x, y, colornames.Yellow)
			}
		}
	}
	f, err := os.Create(filepath.Join(dir, "sheet.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, sheet))
	require.NoError(t, f.Close())

	yml := "tilesets:\n  - {name: sheet, tile_w: 4, tile_h: 4, cols: 2, rows: 1, image: sheet.png}\n"
	path := filepath.Join(dir, "tilesets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	left, _ := c.Texture("sheet", "1-1")
	right, _ := c.Texture("sheet", "1-2")
	assert.Equal(t, colornames.Blue, left.Image.RGBAAt(1, 1))
	assert.Equal(t, colornames.Yellow, right.Image.RGBAAt(1, 1))

	_, err = LoadCatalog(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	tooBig := "tilesets:\n  - {name: sheet, tile_w: 4, tile_h: 4, cols: 3, rows: 1, image: sheet.png}\n"
	require.NoError(t, os.WriteFile(path, []byte(tooBig), 0o644))
	_, err = LoadCatalog(path)
	assert.Error(t, err)
}

func TestTileID(t *testing.T) {
	assert.Equal(t, "1-1", TileID(1, 1))
	assert.Equal(t, "3-12", TileID(3, 12))

	row, col, ok := ParseTileID("3-12")
	assert.True(t, ok)
	assert.Equal(t, 3, row)
	assert.Equal(t, 12, col)

	for _, bad := range []string{"", "1", "a-1", "1-b", "0-1", "1-0"} {
		_, _, ok := ParseTileID(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseColor(t *testing.T) {
	c, ok := parseColor("SlateGray")
	assert.True(t, ok)
	assert.Equal(t, colornames.Slategray, c)

	c, ok = parseColor("#102030")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	_, ok = parseColor("#zzzzzz")
	assert.False(t, ok)
}
