package grid

// Neighbour indices, clockwise from Right. "Up" is +Y.
const (
	Self      = -1
	Right     = 0
	UpRight   = 1
	Up        = 2
	UpLeft    = 3
	Left      = 4
	DownLeft  = 5
	Down      = 6
	DownRight = 7

	numNeighbours = 8
)

// neighbourOffsets are built by rotating (1,0) and (1,1) a quarter turn at
// a time, interleaving the straight and the diagonal step.
var neighbourOffsets = func() [numNeighbours]Coord {
	var out [numNeighbours]Coord
	step := Coord{X: 1}
	diag := Coord{X: 1, Y: 1}
	for i := 0; i < 4; i++ {
		out[i*2] = step
		out[i*2+1] = diag
		step = Coord{X: -step.Y, Y: step.X}
		diag = Coord{X: -diag.Y, Y: diag.X}
	}
	return out
}()

// NeighbourOffset returns the coordinate offset of neighbour n (0..7).
// It panics for any other n; tile methods ignore such indices instead.
func NeighbourOffset(n int) Coord {
	return neighbourOffsets[n]
}

// Tile is the external handle for one cell. It holds its own bitset and a
// cached copy of its 8 neighbours' bitsets.
//
// A Tile built with NewTile is unattached: edits stay local. Tiles created by
// a Grid rebuild are attached, and property edits are sent up to the Grid,
// which stays the source of truth. A rebuild covering an attached Tile's
// coordinate detaches it and creates a fresh Tile in its place.
type Tile struct {
	id         Coord
	bitset     Bitset
	neighbours [numNeighbours]Bitset
	data       *string

	attached bool
	grid     *Grid // owning grid while attached, never owned by the tile
	handle   Handle
}

// NewTile returns an unattached tile with an empty bitset.
func NewTile() *Tile {
	return &Tile{}
}

// ID is the coordinate this tile represents.
func (t *Tile) ID() Coord { return t.id }

// IsAttached reports whether edits are forwarded to a Grid.
func (t *Tile) IsAttached() bool { return t.attached }

// Bitset is the tile's own property bitset.
func (t *Tile) Bitset() Bitset { return t.bitset }

// Neighbours returns the cached neighbour bitsets, indexed Right..DownRight.
func (t *Tile) Neighbours() [numNeighbours]Bitset { return t.neighbours }

// Handle is the scene graph child created for this tile (nil if unattached).
func (t *Tile) Handle() Handle { return t.handle }

// Data returns the cell data blob captured when the tile was attached.
func (t *Tile) Data() (string, bool) {
	if t.data == nil {
		return "", false
	}
	return *t.data, true
}

// Property returns property `index` of this tile.
func (t *Tile) Property(index int) bool {
	return t.bitset.Get(index)
}

// SetProperty sets property `index`. If the tile is attached the new bitset is
// written to the grid, which then rebuilds according to its update mode.
func (t *Tile) SetProperty(index int, value bool) {
	if t.Property(index) == value {
		return
	}

	t.bitset = t.bitset.Set(index, value)

	if t.attached && t.grid != nil {
		t.grid.SetProperties(t.id, t.bitset)
	}
}

// NeighbourProperty returns property `index` of cached neighbour n.
// A negative n means the tile itself; n past DownRight is always false.
func (t *Tile) NeighbourProperty(n, index int) bool {
	if n < 0 {
		return t.Property(index)
	}
	if n >= numNeighbours {
		return false
	}
	return t.neighbours[n].Get(index)
}

// SetNeighbourProperty overrides property `index` in the neighbour cache only.
// The override is never sent to the grid and is lost on the next rebuild.
// A negative n means the tile itself (see SetProperty); n past DownRight is
// ignored.
func (t *Tile) SetNeighbourProperty(n, index int, value bool) {
	if n < 0 {
		t.SetProperty(index, value)
		return
	}
	if n >= numNeighbours {
		return
	}
	t.neighbours[n] = t.neighbours[n].Set(index, value)
}

// attach is called by the owning grid during a rebuild.
func (t *Tile) attach(g *Grid, id Coord, h Handle, cell Cell, neighbours [numNeighbours]Bitset) {
	t.id = id
	t.handle = h
	t.bitset = cell.Properties
	t.neighbours = neighbours
	t.data = nil
	if cell.Data != nil {
		d := *cell.Data
		t.data = &d
	}
	t.grid = g
	t.attached = true
}

// detach is called by the owning grid when the tile is destroyed.
// The tile keeps its last values.
func (t *Tile) detach() {
	t.attached = false
	t.grid = nil
	t.handle = nil
}
