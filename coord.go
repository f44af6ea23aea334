package grid

import (
	"fmt"
	"math"
)

// Coord identifies a cell by its column (X) and row (Y).
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Add returns c offset by o
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Size of a grid in cells.
type Size struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Area is the number of cells covered by the size.
func (s Size) Area() int {
	return s.X * s.Y
}

// Contains returns if id lies in [0,X) x [0,Y).
func (s Size) Contains(id Coord) bool {
	return id.X >= 0 && id.X < s.X && id.Y >= 0 && id.Y < s.Y
}

// Region is the half-open rectangle [From, To).
type Region struct {
	From Coord
	To   Coord
}

// WholeGrid covers any grid; it is clamped to the grid bounds on use.
var WholeGrid = Region{To: Coord{X: math.MaxInt, Y: math.MaxInt}}

// RegionAround returns the 3x3 block centred on id. A cell's neighbour cache
// only reads its direct neighbours, so this is everything an edit of id can
// invalidate.
func RegionAround(id Coord) Region {
	return Region{
		From: Coord{X: id.X - 1, Y: id.Y - 1},
		To:   Coord{X: id.X + 2, Y: id.Y + 2},
	}
}

// Contains returns if id is within [From, To).
func (r Region) Contains(id Coord) bool {
	return id.X >= r.From.X && id.X < r.To.X && id.Y >= r.From.Y && id.Y < r.To.Y
}

// clamp the region to [0,size.X) x [0,size.Y)
func (r Region) clamp(size Size) Region {
	return Region{
		From: Coord{X: max(0, r.From.X), Y: max(0, r.From.Y)},
		To:   Coord{X: min(size.X, r.To.X), Y: min(size.Y, r.To.Y)},
	}
}
