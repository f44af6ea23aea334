package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/voidshard/grid"
)

const desc = `Edits grid files: rectangles of cells, each holding a set of boolean properties
and an optional data blob.

Grid files are YAML. Old files that only store a flat 'tile_data' list of properties
are migrated to the current shape when read and written back in the current shape.`

type globals struct {
	Config string
	Debug  bool
}

var cli struct {
	// optional config file: size, mode & property labels
	Config string `short:"c" help:"grid config file (yaml)"`

	Debug bool `help:"log rebuild statistics"`

	New     newCmd     `cmd:"" help:"create a grid file"`
	Set     setCmd     `cmd:"" help:"set a property on a cell"`
	Data    dataCmd    `cmd:"" help:"set or clear a cell's data blob"`
	Inspect inspectCmd `cmd:"" help:"print a cell's properties and those of its neighbours"`
	Resize  resizeCmd  `cmd:"" help:"change the grid size, keeping cells at their coordinates"`
	Migrate migrateCmd `cmd:"" help:"rewrite a grid file in the current format"`
}

type newCmd struct {
	File      string `arg:"" help:"grid file to write"`
	Width     uint   `short:"W" help:"width in cells (overrides config)"`
	Height    uint   `short:"H" help:"height in cells (overrides config)"`
	Overwrite bool   `help:"overwrite an existing file"`
}

func (c *newCmd) Run(g *globals) error {
	if fileExists(c.File) && !c.Overwrite {
		return fmt.Errorf("%s exists, pass --overwrite to replace it", c.File)
	}

	cfg, err := config(g)
	if err != nil {
		return err
	}
	if c.Width > 0 {
		cfg.Width = c.Width
	}
	if c.Height > 0 {
		cfg.Height = c.Height
	}

	m := grid.New(cfg, nil)
	fmt.Printf("new %dx%d grid -> %s\n", cfg.Width, cfg.Height, c.File)
	return m.State().WriteFile(c.File)
}

type setCmd struct {
	File     string `arg:"" help:"grid file"`
	X        int    `arg:"" help:"cell x"`
	Y        int    `arg:"" help:"cell y"`
	Property string `arg:"" help:"property index or label"`
	Value    string `arg:"" help:"true or false"`
}

func (c *setCmd) Run(g *globals) error {
	return edit(g, c.File, func(m *grid.Grid) error {
		id := grid.Coord{X: c.X, Y: c.Y}
		if !m.IsInside(id) {
			return fmt.Errorf("%v is outside the %dx%d grid", id, m.Size().X, m.Size().Y)
		}

		index, err := property(m, c.Property)
		if err != nil {
			return err
		}

		value, err := strconv.ParseBool(c.Value)
		if err != nil {
			return fmt.Errorf("value must be true or false, got %q", c.Value)
		}

		m.SetProperty(id, index, value)
		fmt.Printf("%v %s = %v\n", id, m.PropertyName(index), value)
		return nil
	})
}

type dataCmd struct {
	File  string `arg:"" help:"grid file"`
	X     int    `arg:"" help:"cell x"`
	Y     int    `arg:"" help:"cell y"`
	Value string `short:"v" help:"blob to store"`
	Input string `short:"i" help:"read the blob from a file"`
	Clear bool   `help:"remove the blob"`
}

func (c *dataCmd) Run(g *globals) error {
	return edit(g, c.File, func(m *grid.Grid) error {
		id := grid.Coord{X: c.X, Y: c.Y}
		if !m.IsInside(id) {
			return fmt.Errorf("%v is outside the %dx%d grid", id, m.Size().X, m.Size().Y)
		}

		if c.Clear {
			m.ClearData(id)
			fmt.Printf("%v data cleared\n", id)
			return nil
		}

		blob := c.Value
		if c.Input != "" {
			raw, err := ioutil.ReadFile(c.Input)
			if err != nil {
				return err
			}
			blob = string(raw)
		}

		m.SetData(id, blob)
		fmt.Printf("%v data set (%d bytes)\n", id, len(blob))
		return nil
	})
}

type resizeCmd struct {
	File   string `arg:"" help:"grid file"`
	Width  int    `arg:"" help:"new width in cells"`
	Height int    `arg:"" help:"new height in cells"`
}

func (c *resizeCmd) Run(g *globals) error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("size must not be negative")
	}
	return edit(g, c.File, func(m *grid.Grid) error {
		old := m.Size()
		m.Resize(grid.Size{X: c.Width, Y: c.Height})
		fmt.Printf("resized %dx%d -> %dx%d\n", old.X, old.Y, c.Width, c.Height)
		return nil
	})
}

type migrateCmd struct {
	File   string `arg:"" help:"grid file, old or current format"`
	Output string `short:"o" help:"where to write (defaults to overwriting the input)"`
}

func (c *migrateCmd) Run(g *globals) error {
	st, err := grid.Open(c.File)
	if err != nil {
		return err
	}

	out := c.Output
	if out == "" {
		out = c.File
	}

	fmt.Printf("%s: %dx%d grid, version %d -> %s\n", c.File, st.Size.X, st.Size.Y, st.Version, out)
	return st.WriteFile(out)
}

// config returns the --config file if given, or defaults
func config(g *globals) (*grid.Config, error) {
	if g.Config == "" {
		return grid.DefaultConfig(), nil
	}
	return grid.LoadConfig(g.Config)
}

// edit loads a grid file, applies fn and writes the file back
func edit(g *globals, fname string, fn func(*grid.Grid) error) error {
	st, err := grid.Open(fname)
	if err != nil {
		return err
	}

	cfg, err := config(g)
	if err != nil {
		return err
	}
	cfg.Mode = grid.Deferred

	scene := grid.NewScene()
	m := grid.New(cfg, scene)
	if err := m.Load(st); err != nil {
		return err
	}
	if len(cfg.PropertyNames) > 0 {
		m.SetPropertyNames(cfg.PropertyNames)
	}
	m.Initialize()

	if err := fn(m); err != nil {
		return err
	}

	if m.Tick() && g.Debug {
		stats := m.Stats()
		log.Printf("rebuilds=%d created=%d destroyed=%d live=%d", stats.Rebuilds, stats.TilesCreated, stats.TilesDestroyed, scene.Len())
	}

	return m.State().WriteFile(fname)
}

// property reads either a property index or a property label
func property(m *grid.Grid, in string) (int, error) {
	i, err := strconv.ParseInt(in, 10, 64)
	if err == nil {
		if i < 0 || i >= grid.BitWidth {
			return 0, fmt.Errorf("property index %d out of range [0,%d)", i, grid.BitWidth)
		}
		return int(i), nil
	}

	index, ok := m.PropertyIndex(in)
	if !ok {
		return 0, fmt.Errorf("unknown property %q", in)
	}
	return index, nil
}

// fileExists checks if file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("grid"),
		kong.Description(desc),
		kong.UsageOnError(),
	)

	err := ctx.Run(&globals{Config: cli.Config, Debug: cli.Debug})
	ctx.FatalIfErrorf(err)
}
