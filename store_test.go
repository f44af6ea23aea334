package grid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	s, err := OpenStore(filepath.Join(t.TempDir(), "grids.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveLoad(t *testing.T) {
	s := openTestStore(t)

	g := New(&Config{Width: 4, Height: 3, Mode: Deferred, PropertyNames: []string{"Walkable", "WallNorth"}}, nil)
	g.SetProperties(Coord{X: 3, Y: 2}, 0x80000001)
	g.SetData(Coord{X: 1, Y: 1}, "door: locked")
	g.SetData(Coord{X: 2, Y: 1}, "")

	require.NoError(t, s.Save("dungeon", g.State()))

	st, err := s.Load("dungeon")
	require.NoError(t, err)
	assert.Equal(t, g.State(), st)

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"dungeon"}, names)
}

func TestStoreSaveReplaces(t *testing.T) {
	s := openTestStore(t)

	big := New(&Config{Width: 3, Height: 3}, nil)
	big.SetProperties(Coord{X: 2, Y: 2}, 1)
	require.NoError(t, s.Save("g", big.State()))

	small := New(&Config{Width: 1, Height: 1}, nil)
	require.NoError(t, s.Save("g", small.State()))

	st, err := s.Load("g")
	require.NoError(t, err)
	assert.Equal(t, Size{X: 1, Y: 1}, st.Size)
	assert.Equal(t, 1, len(st.Cells))
}

func TestStoreManyCells(t *testing.T) {
	s := openTestStore(t)

	g := New(&Config{Width: 40, Height: 30}, nil)
	g.SetProperties(Coord{X: 39, Y: 29}, 42)
	require.NoError(t, s.Save("big", g.State()))

	st, err := s.Load("big")
	require.NoError(t, err)
	require.Equal(t, 1200, len(st.Cells))
	assert.Equal(t, Bitset(42), st.Cells[1199].Properties)
}

func TestStoreNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load("nope")

	assert.Error(t, err)
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save("a", New(nil, nil).State()))
	require.NoError(t, s.Save("b", New(nil, nil).State()))

	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("missing"))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestStoreMigratesLegacyRows(t *testing.T) {
	s := openTestStore(t)

	_, err := s.db.Exec(`INSERT INTO grids (name, version, width, height, names) VALUES ('old', 1, 2, 2, '');`)
	require.NoError(t, err)
	for i, props := range []uint32{5, 0, 0, 9} {
		_, err := s.db.Exec(`INSERT INTO tile_data (grid, idx, properties) VALUES ('old', ?, ?);`, i, props)
		require.NoError(t, err)
	}

	st, err := s.Load("old")
	require.NoError(t, err)
	assert.Equal(t, StateVersion, st.Version)
	assert.Equal(t, []Cell{{Properties: 5}, {}, {}, {Properties: 9}}, st.Cells)

	var legacy, cells, version int
	require.NoError(t, s.db.Get(&legacy, `SELECT count(*) FROM tile_data WHERE grid='old';`))
	require.NoError(t, s.db.Get(&cells, `SELECT count(*) FROM cells WHERE grid='old';`))
	require.NoError(t, s.db.Get(&version, `SELECT version FROM grids WHERE name='old';`))
	assert.Equal(t, 0, legacy)
	assert.Equal(t, 4, cells)
	assert.Equal(t, StateVersion, version)

	again, err := s.Load("old")
	require.NoError(t, err)
	assert.Equal(t, st, again)
}

func TestCellsFromRowsIgnoresBadIndices(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, []Cell{{}, {}}, cellsFromRows([]dbCell{{Idx: -3}, {Idx: -2}}, 2))
	})

	cells := cellsFromRows([]dbCell{{Idx: 1, Properties: 4}, {Idx: 1 << 40, Properties: 9}}, 2)
	assert.Equal(t, []Cell{{}, {Properties: 4}}, cells)

	legacy := legacyFromRows([]dbLegacyCell{{Idx: -1, Properties: 3}, {Idx: 0, Properties: 5}, {Idx: 99, Properties: 7}}, 2)
	assert.Equal(t, []uint32{5, 0}, legacy)
}

func TestStoreLoadSizesCellsFromGrid(t *testing.T) {
	s := openTestStore(t)

	_, err := s.db.Exec(`INSERT INTO grids (name, version, width, height, names) VALUES ('bad', 2, 2, 1, 'null');`)
	require.NoError(t, err)
	for _, idx := range []int{-5, 1, 1000000} {
		_, err := s.db.Exec(`INSERT INTO cells (grid, idx, properties) VALUES ('bad', ?, 3);`, idx)
		require.NoError(t, err)
	}

	st, err := s.Load("bad")
	require.NoError(t, err)
	assert.Equal(t, []Cell{{}, {Properties: 3}}, st.Cells)
}
