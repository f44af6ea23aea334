/* file holds the persisted shape of a grid and its YAML codec.

Two shapes exist on disk:
  - version 1 stored a flat `tile_data` list of property bitsets, one per cell
  - version 2 stores `cells`, each with properties and an optional data blob

Version 1 data is migrated to version 2 once, on load (see State.Migrate).
*/
package grid

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	legacyStateVersion = 1

	// StateVersion is the version written by State
	StateVersion = 2
)

// State is everything a grid persists: its size, property labels and cells
// in row-major order.
type State struct {
	Version       int      `yaml:"version"`
	Size          Size     `yaml:"size"`
	PropertyNames []string `yaml:"property_names,omitempty"`
	Cells         []Cell   `yaml:"cells,omitempty"`

	// legacy (version 1) per-cell properties
	TileData []uint32 `yaml:"tile_data,omitempty"`
}

// Migrate brings a version 1 state forward by copying each tile_data entry
// into the properties of a fresh cell. It returns whether anything was
// migrated. States already at StateVersion are left alone, so a migrated
// state that has been saved is never migrated again.
func (s *State) Migrate() bool {
	if s.Version >= StateVersion {
		s.TileData = nil
		return false
	}

	migrated := false
	if len(s.Cells) == 0 && len(s.TileData) > 0 {
		s.Cells = make([]Cell, len(s.TileData))
		for i, props := range s.TileData {
			s.Cells[i].Properties = Bitset(props)
		}
		migrated = true
	}

	s.TileData = nil
	s.Version = StateVersion
	return migrated
}

// validate checks decoded input
func (s *State) validate() error {
	if s.Size.X < 0 || s.Size.Y < 0 {
		return errors.Errorf("invalid grid size %dx%d", s.Size.X, s.Size.Y)
	}
	return nil
}

// State returns a copy of everything the grid persists.
func (g *Grid) State() *State {
	g.cells.ensure(g.size)
	return &State{
		Version:       StateVersion,
		Size:          g.size,
		PropertyNames: g.PropertyNames(),
		Cells:         g.cells.snapshot(g.size.Area()),
	}
}

// Load replaces the grid's size, labels and cells with s, migrating s first if
// it is in the legacy shape. Tiles are rebuilt per the grid's mode.
func (g *Grid) Load(s *State) error {
	if err := s.validate(); err != nil {
		return err
	}
	s.Migrate()

	g.size = s.Size
	g.names = cloneNames(s.PropertyNames)
	g.cells.load(s.Cells, s.Size)
	g.OnConfigChanged()
	return nil
}

// Encode the grid state as YAML to a io.Writer stream
func (s *State) Encode(w io.Writer) error {
	raw, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding grid state")
	}
	_, err = w.Write(raw)
	return err
}

// Decode an input YAML grid state. Legacy states are migrated.
func Decode(r io.Reader) (*State, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s := &State{}
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, errors.Wrap(err, "decoding grid state")
	}
	if s.Version == 0 {
		s.Version = legacyStateVersion
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	s.Migrate()
	return s, nil
}

// Open reads a grid state file
func Open(fname string) (*State, error) {
	path, err := expandPath(fname)
	if err != nil {
		return nil, err
	}

	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading grid state")
	}
	return Decode(bytes.NewReader(raw))
}

// WriteFile writes the state to a file, replacing it if it exists.
func (s *State) WriteFile(fname string) error {
	path, err := expandPath(fname)
	if err != nil {
		return err
	}

	buff := bytes.Buffer{}
	if err := s.Encode(&buff); err != nil {
		return err
	}
	return errors.Wrapf(ioutil.WriteFile(path, buff.Bytes(), 0644), "writing %s", path)
}
