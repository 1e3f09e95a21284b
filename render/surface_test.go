package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceClippedSnapsToCell(t *testing.T) {
	s := NewSurface(64, 64, 16)

	got := s.Add(true, "tiles", "dungeon", "1-1", 5, 5, 16, 16)
	assert.Equal(t, []image.Point{{X: 0, Y: 0}}, got)

	got = s.Add(true, "tiles", "dungeon", "1-1", 20, 37, 16, 16)
	assert.Equal(t, []image.Point{{X: 16, Y: 32}}, got)

	ps := s.Placements()
	require.Len(t, ps, 2)
	assert.Equal(t, Placement{Type: "tiles", Group: "dungeon", ID: "1-1", X: 16, Y: 32, W: 16, H: 16, Clipped: true}, ps[1])
}

func TestSurfaceClippedRefusals(t *testing.T) {
	cases := []struct {
		name string
		x, y int
		w, h int
	}{
		{"occupied", 3, 3, 16, 16},
		{"negative", -1, 0, 16, 16},
		{"past_right", 64, 0, 16, 16},
		{"span_past_bottom", 0, 48, 16, 32},
		{"span_into_occupied", 0, 0, 32, 16},
		{"zero_size", 32, 32, 0, 16},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSurface(64, 64, 16)
			require.NotEmpty(t, s.Add(true, "tiles", "g", "1-1", 0, 0, 16, 16))
			assert.Nil(t, s.Add(true, "tiles", "g", "1-2", c.x, c.y, c.w, c.h))
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestSurfaceTallBrushSpansCells(t *testing.T) {
	s := NewSurface(64, 64, 16)

	got := s.Add(true, "tiles", "grassland", "2-1", 17, 1, 16, 32)
	assert.Equal(t, []image.Point{{X: 16, Y: 0}, {X: 16, Y: 16}}, got)

	assert.Nil(t, s.Add(true, "tiles", "dungeon", "1-1", 20, 20, 16, 16), "lower cell is taken")

	p, ok := s.At("tiles", 18, 30)
	require.True(t, ok)
	assert.Equal(t, "2-1", p.ID)

	removed := s.Remove(true, "tiles", 20, 20)
	assert.Equal(t, got, removed, "removing any spanned cell frees them all")
	assert.Zero(t, s.Len())
	assert.NotNil(t, s.Add(true, "tiles", "dungeon", "1-1", 16, 0, 16, 16))
}

func TestSurfaceSpan(t *testing.T) {
	s := NewSurface(64, 64, 16)
	for _, c := range []struct{ w, h, cols, rows int }{
		{16, 16, 1, 1},
		{1, 1, 1, 1},
		{17, 16, 2, 1},
		{16, 32, 1, 2},
		{40, 40, 3, 3},
	} {
		cols, rows := s.Span(c.w, c.h)
		assert.Equal(t, c.cols, cols, "%dx%d", c.w, c.h)
		assert.Equal(t, c.rows, rows, "%dx%d", c.w, c.h)
	}
}

func TestSurfaceLayersAreIndependent(t *testing.T) {
	s := NewSurface(32, 32, 16)
	assert.NotNil(t, s.Add(true, "tiles", "g", "1-1", 0, 0, 16, 16))
	assert.NotNil(t, s.Add(true, "decor", "g", "1-1", 0, 0, 16, 16))
	assert.Equal(t, 2, s.Len())

	assert.NotNil(t, s.Remove(true, "decor", 0, 0))
	assert.Nil(t, s.Remove(true, "decor", 0, 0))
	_, ok := s.At("tiles", 0, 0)
	assert.True(t, ok)
	assert.Nil(t, s.Remove(true, "missing", 0, 0))
}

func TestSurfaceFreeForm(t *testing.T) {
	s := NewSurface(64, 64, 16)

	assert.Equal(t, []image.Point{{X: 5, Y: 7}}, s.Add(false, "tiles", "g", "1-1", 5, 7, 16, 16))
	assert.Equal(t, []image.Point{{X: 10, Y: 10}}, s.Add(false, "tiles", "g", "1-2", 10, 10, 16, 16), "overlap allowed")
	assert.Nil(t, s.Add(false, "tiles", "g", "1-1", 50, 50, 16, 16), "must fit inside")
	assert.NotNil(t, s.Add(false, "tiles", "g", "1-1", 48, 48, 16, 16), "flush with the edge fits")

	assert.Equal(t, []image.Point{{X: 10, Y: 10}}, s.Remove(false, "tiles", 12, 12), "topmost first")
	assert.Equal(t, []image.Point{{X: 5, Y: 7}}, s.Remove(false, "tiles", 12, 12))
	assert.Nil(t, s.Remove(false, "tiles", 12, 12))
	assert.Nil(t, s.Remove(false, "tiles", 0, 0), "outside every placement")
}

func TestSurfaceClippedAndFreeFormDoNotMix(t *testing.T) {
	s := NewSurface(64, 64, 16)
	s.Add(false, "tiles", "g", "1-1", 3, 3, 8, 8)

	assert.NotNil(t, s.Add(true, "tiles", "g", "1-1", 0, 0, 16, 16), "free-form does not occupy cells")
	assert.Nil(t, s.Remove(false, "tiles", 14, 14))
	assert.Equal(t, []image.Point{{X: 3, Y: 3}}, s.Remove(false, "tiles", 4, 4))
}

func TestSurfaceClearAndRestore(t *testing.T) {
	s := NewSurface(64, 64, 16)
	s.Add(true, "tiles", "g", "1-1", 0, 0, 16, 16)
	s.Add(false, "tiles", "g", "1-2", 20, 20, 8, 8)
	s.Add(true, "decor", "g", "1-3", 32, 0, 16, 32)
	saved := s.Placements()
	require.Len(t, saved, 3)
	assert.Equal(t, "decor", saved[0].Type, "ordered by type first")

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Placements())

	assert.Equal(t, 3, s.Restore(saved))
	assert.Equal(t, saved, s.Placements())

	small := NewSurface(16, 16, 16)
	assert.Equal(t, 1, small.Restore(saved), "placements that no longer fit are dropped")
}

func TestSurfaceSnap(t *testing.T) {
	s := NewSurface(64, 64, 16)
	assert.Equal(t, image.Pt(16, 0), s.Snap(31, 15))
	assert.Equal(t, image.Pt(-16, 0), s.Snap(-1, 0))
}

func TestNewSurfaceClampsSizes(t *testing.T) {
	s := NewSurface(0, -5, 0)
	assert.Equal(t, 1, s.Width())
	assert.Equal(t, 1, s.Height())
	assert.Equal(t, 1, s.Cell())
}
