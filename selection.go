package grid

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Selection remembers selected tiles by coordinate, so the selection
// survives rebuilds that replace the tiles themselves.
type Selection struct {
	coords mapset.Set[Coord]
	tiles  []*Tile
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{coords: mapset.New[Coord]()}
}

// Watch restores the selection after every rebuild of g.
func (s *Selection) Watch(g *Grid) {
	g.OnTilesCreated(s.restore)
}

// Select adds t.
func (s *Selection) Select(t *Tile) {
	if s.coords.Has(t.ID()) {
		return
	}
	s.coords.Put(t.ID())
	s.tiles = append(s.tiles, t)
}

// Deselect removes whatever is selected at id.
func (s *Selection) Deselect(id Coord) {
	s.coords.Remove(id)
	kept := s.tiles[:0]
	for _, t := range s.tiles {
		if t.ID() != id {
			kept = append(kept, t)
		}
	}
	s.tiles = kept
}

// Clear the selection
func (s *Selection) Clear() {
	s.coords = mapset.New[Coord]()
	s.tiles = nil
}

// Contains returns if id is selected.
func (s *Selection) Contains(id Coord) bool {
	return s.coords.Has(id)
}

// Len is the number of selected coordinates.
func (s *Selection) Len() int {
	return s.coords.Size()
}

// Coords returns the selected coordinates in row-major order.
func (s *Selection) Coords() []Coord {
	out := make([]Coord, 0, s.coords.Size())
	s.coords.Each(func(id Coord) {
		out = append(out, id)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Selected returns the selected tiles as of the last rebuild or Select.
func (s *Selection) Selected() []*Tile {
	return append([]*Tile{}, s.tiles...)
}

// SetProperty sets property `index` on every selected cell of g. Writes go
// through the grid by coordinate, so a rebuild triggered by one write can't
// strand the others on detached tiles.
func (s *Selection) SetProperty(g *Grid, index int, value bool) {
	for _, id := range s.Coords() {
		g.SetProperty(id, index, value)
	}
	s.refresh(g)
}

// SetNeighbourProperty overrides property `index` of neighbour n in the cache
// of every selected tile. A negative n means the tiles themselves.
func (s *Selection) SetNeighbourProperty(g *Grid, n, index int, value bool) {
	if n < 0 {
		s.SetProperty(g, index, value)
		return
	}
	s.refresh(g)
	for _, t := range s.tiles {
		t.SetNeighbourProperty(n, index, value)
	}
}

// Mixed reports whether the selected tiles disagree on property `index` of
// neighbour n (negative n: the tiles themselves).
func (s *Selection) Mixed(n, index int) bool {
	for _, t := range s.tiles[min(1, len(s.tiles)):] {
		if t.NeighbourProperty(n, index) != s.tiles[0].NeighbourProperty(n, index) {
			return true
		}
	}
	return false
}

// refresh picks up the tiles g currently has at the selected coordinates.
func (s *Selection) refresh(g *Grid) {
	s.tiles = s.tiles[:0]
	for _, id := range s.Coords() {
		if t, ok := g.Tile(id); ok {
			s.tiles = append(s.tiles, t)
		}
	}
}

// restore swaps in the new tiles at selected coordinates.
func (s *Selection) restore(tiles []*Tile) {
	s.tiles = s.tiles[:0]
	for _, t := range tiles {
		if s.coords.Has(t.ID()) {
			s.tiles = append(s.tiles, t)
		}
	}
}
