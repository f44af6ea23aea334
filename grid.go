package grid

import (
	"sort"

	"gopkg.in/yaml.v2"
)

// Grid owns a rectangle of cells, each a property bitset plus an optional
// data blob, and keeps one attached Tile per cell in its scene graph.
//
// Grid is not safe for concurrent use. All edits, rebuilds and ticks are
// expected to come from one goroutine.
type Grid struct {
	size  Size
	names []string
	mode  Mode

	cells cellStore
	scene SceneGraph

	tiles         map[Coord]*Tile
	created       []func([]*Tile)
	attached      []func(*Tile)
	rebuildNeeded bool

	stats Stats
}

// Stats counts the work done by rebuilds.
type Stats struct {
	Rebuilds       int
	TilesCreated   int
	TilesDestroyed int
}

// New returns an empty grid. A nil scene is allowed; tiles then have no handle.
// No tiles exist until the grid is initialized (see Initialize).
func New(cfg *Config, scene SceneGraph) *Grid {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if scene == nil {
		scene = nopScene{}
	}

	mode := cfg.Mode
	if mode == "" {
		mode = Immediate
	}

	return &Grid{
		size:  cfg.size(),
		names: cloneNames(cfg.PropertyNames),
		mode:  mode,
		scene: scene,
		tiles: map[Coord]*Tile{},
	}
}

// Mode returns the grid's update mode
func (g *Grid) Mode() Mode {
	return g.mode
}

// Size returns the current size in cells.
func (g *Grid) Size() Size {
	return g.size
}

// Resize changes the grid size. Existing cells keep their coordinates; the
// backing store never shrinks. A negative size panics.
func (g *Grid) Resize(size Size) {
	if size.X < 0 || size.Y < 0 {
		panic("grid: negative size")
	}
	if size == g.size {
		return
	}

	g.cells.relayout(g.size, size)
	g.size = size
	g.OnConfigChanged()
}

// PropertyNames returns the display labels for property bits.
func (g *Grid) PropertyNames() []string {
	return cloneNames(g.names)
}

// SetPropertyNames replaces the display labels. Labels never affect the
// stored properties, so nothing is rebuilt.
func (g *Grid) SetPropertyNames(names []string) {
	g.names = cloneNames(names)
}

// IsInside returns if id is a cell of the grid.
func (g *Grid) IsInside(id Coord) bool {
	return g.size.Contains(id)
}

// Properties returns the bitset for id, or the empty bitset if id is outside
// the grid.
func (g *Grid) Properties(id Coord) Bitset {
	if !g.IsInside(id) {
		return 0
	}
	g.cells.ensure(g.size)
	return g.cells.at(id).Properties
}

// SetProperties writes the bitset for id. Writes outside the grid are ignored.
// The write is always treated as a change, even if the value is the same.
func (g *Grid) SetProperties(id Coord, b Bitset) {
	if !g.IsInside(id) {
		return
	}
	g.cells.ensure(g.size)
	g.cells.at(id).Properties = b
	g.invalidate(id)
}

// Property returns property `index` of the cell at id.
func (g *Grid) Property(id Coord, index int) bool {
	return g.Properties(id).Get(index)
}

// SetProperty sets a single property of the cell at id. Nothing happens if the
// property already has that value.
func (g *Grid) SetProperty(id Coord, index int, value bool) {
	current := g.Properties(id)
	if current.Get(index) == value {
		return
	}
	g.SetProperties(id, current.Set(index, value))
}

// Data returns the data blob of the cell at id. The second return is false
// outside the grid or when no data is set.
func (g *Grid) Data(id Coord) (string, bool) {
	if !g.IsInside(id) {
		return "", false
	}
	g.cells.ensure(g.size)
	d := g.cells.at(id).Data
	if d == nil {
		return "", false
	}
	return *d, true
}

// SetData overwrites the data blob of the cell at id. Ignored outside the grid.
func (g *Grid) SetData(id Coord, blob string) {
	g.writeData(id, &blob)
}

// ClearData removes the data blob of the cell at id.
func (g *Grid) ClearData(id Coord) {
	g.writeData(id, nil)
}

func (g *Grid) writeData(id Coord, blob *string) {
	if !g.IsInside(id) {
		return
	}
	g.cells.ensure(g.size)
	g.cells.at(id).Data = blob
	g.invalidate(id)
}

// DataAs decodes the data blob at id into a T. A missing or malformed blob
// gives the zero T and false.
func DataAs[T any](g *Grid, id Coord) (T, bool) {
	var out T
	blob, ok := g.Data(id)
	if !ok {
		return out, false
	}
	if err := yaml.Unmarshal([]byte(blob), &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// SetDataAs encodes v as the data blob at id.
func SetDataAs[T any](g *Grid, id Coord, v T) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	g.SetData(id, string(raw))
	return nil
}

// Tile returns the attached tile at id.
func (g *Grid) Tile(id Coord) (*Tile, bool) {
	t, ok := g.tiles[id]
	return t, ok
}

// Tiles returns all attached tiles in row-major order.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, 0, len(g.tiles))
	for _, t := range g.tiles {
		out = append(out, t)
	}
	sortTiles(out)
	return out
}

// OnTilesCreated registers fn to be called after every rebuild with the full
// list of attached tiles (not only the rebuilt ones).
func (g *Grid) OnTilesCreated(fn func([]*Tile)) {
	g.created = append(g.created, fn)
}

// OnTileAttached registers fn to be called for each tile as a rebuild
// attaches it.
func (g *Grid) OnTileAttached(fn func(*Tile)) {
	g.attached = append(g.attached, fn)
}

// Stats returns rebuild counters since the grid was made.
func (g *Grid) Stats() Stats {
	return g.stats
}

// RebuildNeeded reports whether a deferred rebuild is waiting for Tick.
func (g *Grid) RebuildNeeded() bool {
	return g.rebuildNeeded
}

// invalidate applies the update mode after a cell write.
func (g *Grid) invalidate(id Coord) {
	if g.mode == Deferred {
		g.rebuildNeeded = true
		return
	}
	g.Rebuild(RegionAround(id))
}

func cloneNames(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string{}, in...)
}

// sortTiles orders tiles row-major (y, then x)
func sortTiles(tiles []*Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		a, b := tiles[i].id, tiles[j].id
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}
