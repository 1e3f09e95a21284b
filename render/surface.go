// Package render tracks tile placements on the drawing surface and loads the
// tilesets they are painted from.
package render

import (
	"cmp"
	"image"
	"slices"

	"github.com/jakecoffman/cp"
)

// Placement is one texture instance on the surface. Clipped placements are
// anchored to a cell origin; free-form ones sit at an arbitrary pixel.
type Placement struct {
	Type    string `json:"type"`
	Group   string `json:"group"`
	ID      string `json:"id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	Clipped bool   `json:"clipped"`
}

// BB returns the placement's bounding box.
func (p Placement) BB() cp.BB {
	return cp.BB{L: float64(p.X), B: float64(p.Y), R: float64(p.X + p.W), T: float64(p.Y + p.H)}
}

type entry struct {
	Placement
	seq   uint64
	cells []image.Point
}

type layer struct {
	cells map[image.Point]*entry
	free  []*entry
}

// Surface tracks what is placed where, one layer per texture type. It knows
// nothing about pixels.
type Surface struct {
	width, height, cell int
	layers              map[string]*layer
	seq                 uint64
}

// NewSurface creates an empty surface of width×height pixels divided into
// square cells. Non-positive sizes fall back to 1.
func NewSurface(width, height, cell int) *Surface {
	return &Surface{
		width:  max(width, 1),
		height: max(height, 1),
		cell:   max(cell, 1),
		layers: make(map[string]*layer),
	}
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }
func (s *Surface) Cell() int   { return s.cell }

// Cols and Rows count whole cells only.
func (s *Surface) Cols() int { return s.width / s.cell }
func (s *Surface) Rows() int { return s.height / s.cell }

func (s *Surface) bb() cp.BB {
	return cp.BB{L: 0, B: 0, R: float64(s.width), T: float64(s.height)}
}

func (s *Surface) layer(typ string) *layer {
	l, ok := s.layers[typ]
	if !ok {
		l = &layer{cells: make(map[image.Point]*entry)}
		s.layers[typ] = l
	}
	return l
}

// Snap returns the pixel origin of the cell containing (x, y).
func (s *Surface) Snap(x, y int) image.Point {
	c := s.cellAt(x, y)
	return image.Pt(c.X*s.cell, c.Y*s.cell)
}

func (s *Surface) cellAt(x, y int) image.Point {
	return image.Pt(floorDiv(x, s.cell), floorDiv(y, s.cell))
}

func (s *Surface) cellInBounds(c image.Point) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.Cols() && c.Y < s.Rows()
}

// Span returns how many cells a w×h texture covers when clipped.
func (s *Surface) Span(w, h int) (cols, rows int) {
	cols = max((w+s.cell-1)/s.cell, 1)
	rows = max((h+s.cell-1)/s.cell, 1)
	return cols, rows
}

// Add places a w×h texture. Clipped placements snap to the cell under
// (x, y), need every spanned cell in bounds and free, and return each spanned
// cell's origin. Free-form placements land at (x, y) exactly, may overlap,
// and must fit inside the surface. A refused placement returns nil.
func (s *Surface) Add(clipped bool, typ, group, id string, x, y, w, h int) []image.Point {
	if w <= 0 || h <= 0 {
		return nil
	}
	if clipped {
		return s.addClipped(typ, group, id, x, y, w, h)
	}

	p := Placement{Type: typ, Group: group, ID: id, X: x, Y: y, W: w, H: h}
	if !s.bb().Contains(p.BB()) {
		return nil
	}
	l := s.layer(typ)
	s.seq++
	l.free = append(l.free, &entry{Placement: p, seq: s.seq})
	return []image.Point{{X: x, Y: y}}
}

func (s *Surface) addClipped(typ, group, id string, x, y, w, h int) []image.Point {
	origin := s.cellAt(x, y)
	cols, rows := s.Span(w, h)
	l := s.layer(typ)

	cells := make([]image.Point, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := origin.Add(image.Pt(c, r))
			if !s.cellInBounds(cell) {
				return nil
			}
			if _, taken := l.cells[cell]; taken {
				return nil
			}
			cells = append(cells, cell)
		}
	}

	s.seq++
	e := &entry{
		Placement: Placement{
			Type: typ, Group: group, ID: id,
			X: origin.X * s.cell, Y: origin.Y * s.cell, W: w, H: h,
			Clipped: true,
		},
		seq:   s.seq,
		cells: cells,
	}
	for _, cell := range cells {
		l.cells[cell] = e
	}
	return s.origins(cells)
}

func (s *Surface) origins(cells []image.Point) []image.Point {
	out := make([]image.Point, len(cells))
	for i, c := range cells {
		out[i] = image.Pt(c.X*s.cell, c.Y*s.cell)
	}
	return out
}

// Remove erases one placement at (x, y). Clipped removal takes whatever
// occupies the snapped cell and returns all of its cells. Free-form removal
// takes the topmost free-form placement under the point and returns its
// origin.
func (s *Surface) Remove(clipped bool, typ string, x, y int) []image.Point {
	l, ok := s.layers[typ]
	if !ok {
		return nil
	}
	if clipped {
		e, ok := l.cells[s.cellAt(x, y)]
		if !ok {
			return nil
		}
		for _, c := range e.cells {
			delete(l.cells, c)
		}
		return s.origins(e.cells)
	}

	pt := cp.Vector{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	for i := len(l.free) - 1; i >= 0; i-- {
		e := l.free[i]
		if e.BB().ContainsVect(pt) {
			l.free = slices.Delete(l.free, i, i+1)
			return []image.Point{{X: e.X, Y: e.Y}}
		}
	}
	return nil
}

// At reports the topmost placement of typ covering (x, y), clipped or not.
func (s *Surface) At(typ string, x, y int) (Placement, bool) {
	l, ok := s.layers[typ]
	if !ok {
		return Placement{}, false
	}
	var best *entry
	if e, ok := l.cells[s.cellAt(x, y)]; ok {
		best = e
	}
	pt := cp.Vector{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	for _, e := range l.free {
		if e.BB().ContainsVect(pt) && (best == nil || e.seq > best.seq) {
			best = e
		}
	}
	if best == nil {
		return Placement{}, false
	}
	return best.Placement, true
}

// Clear removes every placement on every layer.
func (s *Surface) Clear() {
	clear(s.layers)
}

// Len counts placements across all layers.
func (s *Surface) Len() int {
	n := 0
	for _, l := range s.layers {
		n += len(l.free) + len(uniqueEntries(l.cells))
	}
	return n
}

// Placements lists every placement ordered by texture type, then by the order
// they were added.
func (s *Surface) Placements() []Placement {
	var all []*entry
	for _, l := range s.layers {
		all = append(all, uniqueEntries(l.cells)...)
		all = append(all, l.free...)
	}
	slices.SortFunc(all, func(a, b *entry) int {
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]Placement, len(all))
	for i, e := range all {
		out[i] = e.Placement
	}
	return out
}

// Restore replaces the surface contents with ps, in order. Placements that
// no longer fit are dropped. It returns how many were restored.
func (s *Surface) Restore(ps []Placement) int {
	s.Clear()
	n := 0
	for _, p := range ps {
		if len(s.Add(p.Clipped, p.Type, p.Group, p.ID, p.X, p.Y, p.W, p.H)) > 0 {
			n++
		}
	}
	return n
}

func uniqueEntries(cells map[image.Point]*entry) []*entry {
	seen := make(map[*entry]struct{}, len(cells))
	out := make([]*entry, 0, len(cells))
	for _, e := range cells {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
