package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tiledesigner/design"
	"github.com/milk9111/tiledesigner/render"
)

type tilesSection struct {
	sets  *widget.List
	tiles *widget.List
}

func addTilesSection(parent *widget.Container, fontFace *text.Face, catalog *render.Catalog) *tilesSection {
	t := &tilesSection{}

	parent.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Tilesets", fontFace, labelColor),
	))
	t.sets = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if ts, ok := e.(*render.Tileset); ok {
				return ts.Name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if ts, ok := args.Entry.(*render.Tileset); ok {
				t.showTileset(ts)
			}
		}),
	)
	t.sets.GetWidget().MinHeight = 80
	parent.AddChild(t.sets)

	parent.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Tiles", fontFace, labelColor),
	))
	t.tiles = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			tex, ok := e.(*render.Texture)
			if !ok {
				return ""
			}
			if tex.Name == "" {
				return tex.ID
			}
			return tex.ID + " " + tex.Name
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if tex, ok := args.Entry.(*render.Texture); ok {
				design.SelectBrush(tex.ID, tex.Group, tex.Name)
			}
		}),
	)
	t.tiles.GetWidget().MinHeight = 160
	parent.AddChild(t.tiles)

	t.setCatalog(catalog)
	return t
}

// setCatalog replaces the tileset entries, e.g. after a hot reload.
func (t *tilesSection) setCatalog(c *render.Catalog) {
	if c == nil {
		t.sets.SetEntries([]any{})
		t.tiles.SetEntries([]any{})
		return
	}
	sets := c.Tilesets()
	entries := make([]any, 0, len(sets))
	for _, ts := range sets {
		entries = append(entries, ts)
	}
	t.sets.SetEntries(entries)
	if len(sets) > 0 {
		t.showTileset(sets[0])
	} else {
		t.tiles.SetEntries([]any{})
	}
}

func (t *tilesSection) showTileset(ts *render.Tileset) {
	ids := ts.IDs()
	entries := make([]any, 0, len(ids))
	for _, id := range ids {
		if tex, ok := ts.Texture(id); ok {
			entries = append(entries, tex)
		}
	}
	t.tiles.SetEntries(entries)
}
