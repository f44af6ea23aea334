package grid

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	sqlUpsertGrid = `INSERT INTO grids (name, version, width, height, names) VALUES (:name, :version, :width, :height, :names)
		ON CONFLICT (name) DO UPDATE SET version=EXCLUDED.version, width=EXCLUDED.width, height=EXCLUDED.height, names=EXCLUDED.names;`
	sqlInsertCells = `INSERT INTO cells (grid, idx, properties, data) VALUES (:grid, :idx, :properties, :data)`
	sqlGetGrid     = `SELECT name, version, width, height, names FROM grids WHERE name=?;`
	sqlGetCells    = `SELECT grid, idx, properties, data FROM cells WHERE grid=? ORDER BY idx;`
	sqlGetLegacy   = `SELECT grid, idx, properties FROM tile_data WHERE grid=? ORDER BY idx;`

	// rows per insert, keeps us well under sqlite's bound parameter limit
	cellBatch = 500
)

// namedExec allows us to use either a transaction.NamedExec or DB.NamedExec
// in our sub functions.
type namedExec func(string, interface{}) (sql.Result, error)

// Store keeps any number of named grid states in a sqlite database.
type Store struct {
	filename string
	db       *sqlx.DB
}

// OpenStore given it's filename (database file) on disk.
// Will create if it doesn't exist.
func OpenStore(fname string) (*Store, error) {
	path, err := expandPath(fname)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}

	s := &Store{db: db, filename: path}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Filename returns the path to the database on disk
func (s *Store) Filename() string {
	return s.filename
}

// Close the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Names returns the names of all stored grids, sorted.
func (s *Store) Names() ([]string, error) {
	names := []string{}
	err := s.db.Select(&names, `SELECT name FROM grids ORDER BY name;`)
	return names, errors.Wrap(err, "listing grids")
}

// Save the state under the given name, replacing anything saved before.
func (s *Store) Save(name string, st *State) error {
	if err := st.validate(); err != nil {
		return err
	}
	st.Migrate()

	txn, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "starting save")
	}

	if err := saveState(txn, name, st); err != nil {
		txn.Rollback()
		return errors.Wrapf(err, "saving grid %q", name)
	}

	return errors.Wrap(txn.Commit(), "committing save")
}

// Load the named grid. Grids saved in the legacy shape (rows in tile_data and
// no cells) are migrated and written back as cells in the same transaction.
func (s *Store) Load(name string) (*State, error) {
	txn, err := s.db.Beginx()
	if err != nil {
		return nil, errors.Wrap(err, "starting load")
	}

	st, migrated, err := loadState(txn, name)
	if err != nil {
		txn.Rollback()
		return nil, err
	}

	if migrated {
		if err := saveState(txn, name, st); err != nil {
			txn.Rollback()
			return nil, errors.Wrapf(err, "writing back migrated grid %q", name)
		}
	}

	return st, errors.Wrap(txn.Commit(), "committing load")
}

// Delete the named grid. Deleting a grid that doesn't exist is not an error.
func (s *Store) Delete(name string) error {
	txn, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "starting delete")
	}

	for _, q := range []string{
		`DELETE FROM cells WHERE grid=?;`,
		`DELETE FROM tile_data WHERE grid=?;`,
		`DELETE FROM grids WHERE name=?;`,
	} {
		if _, err := txn.Exec(q, name); err != nil {
			txn.Rollback()
			return errors.Wrapf(err, "deleting grid %q", name)
		}
	}

	return errors.Wrap(txn.Commit(), "committing delete")
}

// saveState writes the grid row and replaces all its cells.
func saveState(txn *sqlx.Tx, name string, st *State) error {
	labels, err := json.Marshal(st.PropertyNames)
	if err != nil {
		return err
	}

	_, err = txn.NamedExec(sqlUpsertGrid, dbGrid{
		Name:    name,
		Version: st.Version,
		Width:   st.Size.X,
		Height:  st.Size.Y,
		Names:   string(labels),
	})
	if err != nil {
		return err
	}

	if _, err := txn.Exec(`DELETE FROM cells WHERE grid=?;`, name); err != nil {
		return err
	}
	if _, err := txn.Exec(`DELETE FROM tile_data WHERE grid=?;`, name); err != nil {
		return err
	}

	return insertCells(txn.NamedExec, name, st.Cells)
}

// insertCells writes cells in batches
func insertCells(do namedExec, name string, cells []Cell) error {
	for start := 0; start < len(cells); start += cellBatch {
		end := min(start+cellBatch, len(cells))

		rows := make([]dbCell, 0, end-start)
		for i := start; i < end; i++ {
			rows = append(rows, newDBCell(name, i, cells[i]))
		}

		if _, err := do(sqlInsertCells, rows); err != nil {
			return err
		}
	}
	return nil
}

// loadState reads a grid and its cells, migrating legacy rows if needed.
func loadState(txn *sqlx.Tx, name string) (*State, bool, error) {
	g := dbGrid{}
	if err := txn.Get(&g, sqlGetGrid, name); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, errors.Errorf("grid %q not found", name)
		}
		return nil, false, errors.Wrapf(err, "reading grid %q", name)
	}

	st := &State{
		Version: g.Version,
		Size:    Size{X: g.Width, Y: g.Height},
	}
	if g.Names != "" {
		if err := json.Unmarshal([]byte(g.Names), &st.PropertyNames); err != nil {
			return nil, false, errors.Wrapf(err, "decoding labels of grid %q", name)
		}
	}

	if err := st.validate(); err != nil {
		return nil, false, err
	}

	rows := []dbCell{}
	if err := txn.Select(&rows, sqlGetCells, name); err != nil {
		return nil, false, errors.Wrapf(err, "reading cells of grid %q", name)
	}
	st.Cells = cellsFromRows(rows, st.Size.Area())

	if len(st.Cells) == 0 && st.Version < StateVersion {
		legacy := []dbLegacyCell{}
		if err := txn.Select(&legacy, sqlGetLegacy, name); err != nil {
			return nil, false, errors.Wrapf(err, "reading legacy cells of grid %q", name)
		}
		st.TileData = legacyFromRows(legacy, st.Size.Area())
	}

	migrated := st.Migrate()
	return st, migrated, nil
}

// init creates some DB tables for us if they don't exist
func (s *Store) init() error {
	createGrids := `CREATE TABLE IF NOT EXISTS grids(
		name TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		names TEXT
	    );`
	createCells := `CREATE TABLE IF NOT EXISTS cells(
		grid TEXT NOT NULL,
		idx INTEGER NOT NULL,
		properties INTEGER NOT NULL,
		data TEXT,
		PRIMARY KEY (grid, idx)
	    );`
	createLegacy := `CREATE TABLE IF NOT EXISTS tile_data(
		grid TEXT NOT NULL,
		idx INTEGER NOT NULL,
		properties INTEGER NOT NULL,
		PRIMARY KEY (grid, idx)
	    );`

	for _, q := range []string{createGrids, createCells, createLegacy} {
		if _, err := s.db.Exec(q); err != nil {
			return errors.Wrap(err, "creating tables")
		}
	}
	return nil
}

// dbGrid is one row of the grids table.
// Property labels are encoded into JSON.
type dbGrid struct {
	Name    string `db:"name"`
	Version int    `db:"version"`
	Width   int    `db:"width"`
	Height  int    `db:"height"`
	Names   string `db:"names"`
}

// dbCell is one row of the cells table, keyed by grid & row-major index.
type dbCell struct {
	Grid       string         `db:"grid"`
	Idx        int            `db:"idx"`
	Properties int64          `db:"properties"`
	Data       sql.NullString `db:"data"`
}

// newDBCell crafts a dbCell struct given it's inputs
func newDBCell(name string, idx int, c Cell) dbCell {
	row := dbCell{Grid: name, Idx: idx, Properties: int64(c.Properties)}
	if c.Data != nil {
		row.Data = sql.NullString{String: *c.Data, Valid: true}
	}
	return row
}

// dbLegacyCell is one row of the version 1 tile_data table.
type dbLegacyCell struct {
	Grid       string `db:"grid"`
	Idx        int    `db:"idx"`
	Properties int64  `db:"properties"`
}

// cellsFromRows places rows at their index in a grid of n cells; gaps are
// empty cells and rows outside [0,n) are ignored.
func cellsFromRows(rows []dbCell, n int) []Cell {
	if len(rows) == 0 || n <= 0 {
		return nil
	}
	cells := make([]Cell, n)
	for _, r := range rows {
		if r.Idx < 0 || r.Idx >= n {
			continue
		}
		c := Cell{Properties: Bitset(uint32(r.Properties))}
		if r.Data.Valid {
			d := r.Data.String
			c.Data = &d
		}
		cells[r.Idx] = c
	}
	return cells
}

// legacyFromRows flattens tile_data rows into the version 1 shape for a grid
// of n cells. Rows outside [0,n) are ignored.
func legacyFromRows(rows []dbLegacyCell, n int) []uint32 {
	if len(rows) == 0 || n <= 0 {
		return nil
	}
	out := make([]uint32, n)
	for _, r := range rows {
		if r.Idx < 0 || r.Idx >= n {
			continue
		}
		out[r.Idx] = uint32(r.Properties)
	}
	return out
}
