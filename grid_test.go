package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid(w, h uint, mode Mode) (*Grid, *Scene) {
	scene := NewScene()
	g := New(&Config{Width: w, Height: h, Mode: mode}, scene)
	return g, scene
}

func TestIsInside(t *testing.T) {
	g, _ := newTestGrid(3, 2, Immediate)

	assert.True(t, g.IsInside(Coord{X: 0, Y: 0}))
	assert.True(t, g.IsInside(Coord{X: 2, Y: 1}))
	assert.False(t, g.IsInside(Coord{X: 3, Y: 1}))
	assert.False(t, g.IsInside(Coord{X: 2, Y: 2}))
	assert.False(t, g.IsInside(Coord{X: -1, Y: 0}))
	assert.False(t, g.IsInside(Coord{X: 0, Y: -1}))
}

func TestOutOfBoundsIsIgnored(t *testing.T) {
	g, _ := newTestGrid(3, 3, Immediate)
	g.SetProperties(Coord{X: 1, Y: 1}, 5)
	before := g.State()
	stats := g.Stats()

	for _, id := range []Coord{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}, {X: 10, Y: -10}} {
		g.SetProperties(id, 0xFF)
		g.SetProperty(id, 2, true)
		g.SetData(id, "x")
		g.ClearData(id)

		assert.Equal(t, Bitset(0), g.Properties(id))
		assert.False(t, g.Property(id, 2))
		_, ok := g.Data(id)
		assert.False(t, ok)
	}

	assert.Equal(t, before, g.State())
	assert.Equal(t, stats, g.Stats())
}

func TestSetPropertyShortCircuits(t *testing.T) {
	g, _ := newTestGrid(3, 3, Immediate)
	id := Coord{X: 1, Y: 1}

	g.SetProperty(id, 2, false)
	assert.Equal(t, 0, g.Stats().Rebuilds)

	g.SetProperty(id, 2, true)
	assert.True(t, g.Property(id, 2))
	assert.Equal(t, 1, g.Stats().Rebuilds)

	g.SetProperty(id, 2, true)
	assert.Equal(t, 1, g.Stats().Rebuilds)
}

func TestSetPropertiesAlwaysInvalidates(t *testing.T) {
	g, _ := newTestGrid(3, 3, Immediate)
	id := Coord{X: 1, Y: 1}

	g.SetProperties(id, 0)
	g.SetProperties(id, 0)

	assert.Equal(t, 2, g.Stats().Rebuilds)
}

func TestData(t *testing.T) {
	g, _ := newTestGrid(2, 2, Deferred)
	id := Coord{X: 1, Y: 0}

	_, ok := g.Data(id)
	assert.False(t, ok)

	g.SetData(id, "hello")
	d, ok := g.Data(id)
	assert.True(t, ok)
	assert.Equal(t, "hello", d)
	assert.True(t, g.RebuildNeeded())

	g.SetData(id, "")
	d, ok = g.Data(id)
	assert.True(t, ok)
	assert.Equal(t, "", d)

	g.ClearData(id)
	_, ok = g.Data(id)
	assert.False(t, ok)
}

type spawn struct {
	Kind  string
	Count int
}

func TestTypedData(t *testing.T) {
	g, _ := newTestGrid(2, 2, Deferred)
	id := Coord{X: 0, Y: 1}

	require.NoError(t, SetDataAs(g, id, spawn{Kind: "goblin", Count: 3}))

	got, ok := DataAs[spawn](g, id)
	assert.True(t, ok)
	assert.Equal(t, spawn{Kind: "goblin", Count: 3}, got)

	_, ok = DataAs[spawn](g, Coord{X: 1, Y: 1})
	assert.False(t, ok)
}

func TestTypedDataMalformed(t *testing.T) {
	g, _ := newTestGrid(2, 2, Deferred)
	id := Coord{X: 0, Y: 0}
	g.SetData(id, "kind: [unclosed")

	got, ok := DataAs[spawn](g, id)

	assert.False(t, ok)
	assert.Equal(t, spawn{}, got)
}

func TestResizeGrowKeepsCells(t *testing.T) {
	g, _ := newTestGrid(3, 2, Deferred)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			id := Coord{X: x, Y: y}
			g.SetProperties(id, Bitset(y*3+x+1))
			g.SetData(id, id.String())
		}
	}

	g.Resize(Size{X: 5, Y: 4})

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			id := Coord{X: x, Y: y}
			assert.Equal(t, Bitset(y*3+x+1), g.Properties(id), "cell %v", id)
			d, ok := g.Data(id)
			assert.True(t, ok)
			assert.Equal(t, id.String(), d)
		}
	}
	assert.Equal(t, Bitset(0), g.Properties(Coord{X: 4, Y: 3}))
	assert.Equal(t, Bitset(0), g.Properties(Coord{X: 3, Y: 0}))
}

func TestResizeShrinkKeepsCapacity(t *testing.T) {
	g, _ := newTestGrid(4, 4, Deferred)
	g.SetProperties(Coord{X: 1, Y: 3}, 9)

	g.Resize(Size{X: 4, Y: 2})
	assert.Equal(t, Bitset(0), g.Properties(Coord{X: 1, Y: 3}))
	assert.Equal(t, 16, len(g.cells.cells))

	// rows beyond the bounds were never dropped
	g.Resize(Size{X: 4, Y: 4})
	assert.Equal(t, Bitset(9), g.Properties(Coord{X: 1, Y: 3}))
}

func TestResizeNegativePanics(t *testing.T) {
	g, _ := newTestGrid(2, 2, Immediate)

	assert.Panics(t, func() { g.Resize(Size{X: -1, Y: 2}) })
	assert.Panics(t, func() { g.Resize(Size{X: 2, Y: -1}) })
}

func TestPropertyNamesDoNotRebuild(t *testing.T) {
	g, _ := newTestGrid(2, 2, Deferred)

	g.SetPropertyNames([]string{"Walkable", "WallNorth"})

	assert.Equal(t, []string{"Walkable", "WallNorth"}, g.PropertyNames())
	assert.False(t, g.RebuildNeeded())
}

func TestNewDefaults(t *testing.T) {
	g := New(nil, nil)

	assert.Equal(t, Size{X: 5, Y: 5}, g.Size())
	assert.Equal(t, Immediate, g.Mode())

	g.Initialize()
	assert.Equal(t, 25, len(g.Tiles()))
	assert.Nil(t, g.Tiles()[0].Handle())
}
