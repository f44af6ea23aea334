package grid

// Cell is the grid's authoritative state for one coordinate.
type Cell struct {
	Properties Bitset  `yaml:"properties"`
	Data       *string `yaml:"data,omitempty"` // nil when absent
}

// cellStore holds cells in row-major order for a grid `stride` cells wide.
// Capacity only ever grows; cells outside the current size stay allocated
// but are never reached through the bounds-checked grid accessors.
type cellStore struct {
	cells  []Cell
	stride int
}

// ensure there is room for every cell of `size`.
// The first call allocates exactly size.Area() cells, later growth copies the
// old contents into the prefix of the new array.
func (s *cellStore) ensure(size Size) {
	n := size.Area()
	if s.cells == nil {
		s.cells = make([]Cell, n)
		s.stride = size.X
		return
	}
	if len(s.cells) >= n {
		return
	}

	grown := make([]Cell, n)
	copy(grown, s.cells)
	s.cells = grown
}

// relayout moves cells laid out for `from` so each keeps its coordinate in
// `to`. Only needed when the row width changes; height changes keep the
// row-major prefix intact. Columns beyond the new width are dropped.
func (s *cellStore) relayout(from, to Size) {
	if s.cells == nil || from.X == to.X {
		// nothing laid out yet, or rows keep their width: ensure grows the prefix
		return
	}

	n := max(len(s.cells), to.Area())
	moved := make([]Cell, n)

	rows := min(from.Y, to.Y)
	cols := min(from.X, to.X)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			src := y*from.X + x
			if src >= len(s.cells) {
				continue
			}
			moved[y*to.X+x] = s.cells[src]
		}
	}

	s.cells = moved
	s.stride = to.X
}

// at returns the cell for a coordinate already checked against the grid size.
func (s *cellStore) at(id Coord) *Cell {
	return &s.cells[id.Y*s.stride+id.X]
}

// snapshot copies the first n cells.
func (s *cellStore) snapshot(n int) []Cell {
	out := make([]Cell, n)
	copy(out, s.cells)
	for i := range out {
		if out[i].Data != nil {
			d := *out[i].Data
			out[i].Data = &d
		}
	}
	return out
}

// load replaces every cell with the given row-major cells for a grid `size`.
// Old contents are cleared, capacity is kept.
func (s *cellStore) load(cells []Cell, size Size) {
	s.cells = make([]Cell, max(len(s.cells), len(cells), size.Area()))
	copy(s.cells, cells)
	s.stride = size.X
}
