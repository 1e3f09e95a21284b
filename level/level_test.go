package level

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tiledesigner/render"
)

func paintedSurface() *render.Surface {
	s := render.NewSurface(64, 48, 16)
	s.Add(true, "tiles", "dungeon", "1-1", 0, 0, 16, 16)
	s.Add(true, "tiles", "grassland", "2-1", 16, 0, 16, 32)
	s.Add(false, "tiles", "dungeon", "4-4", 35, 20, 16, 16)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := paintedSurface()
	path := filepath.Join(t.TempDir(), "nested", "dir", "one.json")

	require.NoError(t, Save(path, FromSurface(src)))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, l.Width)
	assert.Equal(t, 48, l.Height)
	assert.Equal(t, 16, l.Cell)
	assert.Equal(t, src.Placements(), l.Placements)

	dst := l.Surface()
	assert.Equal(t, src.Placements(), dst.Placements())
	assert.Nil(t, dst.Add(true, "tiles", "dungeon", "1-1", 20, 20, 16, 16), "restored cells are occupied again")
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, l.Width)
	assert.Equal(t, DefaultHeight, l.Height)
	assert.Equal(t, DefaultCell, l.Cell)
	assert.NotNil(t, l.Placements)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"width":`), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "level: unmarshal")
}

func TestApplyReplacesContents(t *testing.T) {
	l := FromSurface(paintedSurface())
	s := render.NewSurface(64, 48, 16)
	s.Add(true, "decor", "dungeon", "1-2", 48, 32, 16, 16)

	assert.Equal(t, 3, l.Apply(s))
	assert.Equal(t, l.Placements, s.Placements())
}

func TestMarshalShape(t *testing.T) {
	data, err := Marshal(&Level{Width: 32, Height: 32, Cell: 16})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(32), raw["width"])
	assert.Equal(t, []any{}, raw["placements"])
	assert.True(t, strings.Contains(string(data), "\n  \"cell\": 16"), "indented")
}

func TestNewPath(t *testing.T) {
	p := NewPath("levels")
	assert.Equal(t, "levels", filepath.Dir(p))
	assert.True(t, strings.HasPrefix(filepath.Base(p), "level_"))
	assert.Equal(t, ".json", filepath.Ext(p))
}

type fakeClipboard struct {
	data []byte
	err  error
}

func (f *fakeClipboard) WriteText(data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.data = data
	return nil
}

func TestCopyTo(t *testing.T) {
	cb := &fakeClipboard{}
	l := FromSurface(paintedSurface())
	require.NoError(t, CopyTo(cb, l))

	var got Level
	require.NoError(t, json.Unmarshal(cb.data, &got))
	assert.Equal(t, l.Placements, got.Placements)

	cb.err = ErrClipboardUnavailable
	assert.True(t, errors.Is(CopyTo(cb, l), ErrClipboardUnavailable))
}
