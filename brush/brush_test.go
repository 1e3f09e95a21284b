package brush

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySelectOverwrites(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Active()
	require.False(t, ok)

	r.Select("1-1", "dungeon", "floor")
	r.Select("1-2", "dungeon", "wall")

	b, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, Brush{ID: "1-2", Group: "dungeon", Name: "wall"}, b)
}

func TestRegistrySubscribe(t *testing.T) {
	r := NewRegistry()
	var got []string
	unsub := r.Subscribe(func(b Brush) { got = append(got, b.ID) })

	r.Select("1-1", "grassland", "grass")
	r.Select("2-1", "grassland", "dirt")
	unsub()
	r.Select("3-1", "grassland", "rock")

	assert.Equal(t, []string{"1-1", "2-1"}, got)
}

func TestRegistryReselectSameBrushNotifies(t *testing.T) {
	r := NewRegistry()
	n := 0
	r.Subscribe(func(Brush) { n++ })

	r.Select("1-1", "dungeon", "floor")
	r.Select("1-1", "dungeon", "floor")
	assert.Equal(t, 2, n)
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry()
	r.Select("1-1", "dungeon", "floor")
	r.Reset()
	_, ok := r.Active()
	assert.False(t, ok)
}

func TestDefaultIsShared(t *testing.T) {
	t.Cleanup(Default.Reset)
	Default.Select("4-4", "dungeon", "torch")
	b, ok := Default.Active()
	require.True(t, ok)
	assert.Equal(t, "torch", b.Name)
}
