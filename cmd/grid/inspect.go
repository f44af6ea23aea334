package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/voidshard/grid"
)

type inspectCmd struct {
	File string `arg:"" help:"grid file"`
	X    int    `arg:"" help:"cell x"`
	Y    int    `arg:"" help:"cell y"`
}

func (c *inspectCmd) Run(g *globals) error {
	st, err := grid.Open(c.File)
	if err != nil {
		return err
	}

	cfg, err := config(g)
	if err != nil {
		return err
	}

	m := grid.New(cfg, nil)
	if err := m.Load(st); err != nil {
		return err
	}
	if len(cfg.PropertyNames) > 0 {
		m.SetPropertyNames(cfg.PropertyNames)
	}
	m.Initialize()

	id := grid.Coord{X: c.X, Y: c.Y}
	tile, ok := m.Tile(id)
	if !ok {
		return fmt.Errorf("%v is outside the %dx%d grid", id, m.Size().X, m.Size().Y)
	}

	fmt.Printf("tile %v\n", id)
	if err := printTable(m, tile); err != nil {
		return err
	}

	if blob, ok := tile.Data(); ok {
		fmt.Printf("data:\n%s\n", blob)
	}
	return nil
}

// printTable lays out one row for the tile and each neighbour, one column
// per property.
func printTable(m *grid.Grid, tile *grid.Tile) error {
	n := columns(m, tile)

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)

	header := []string{""}
	for i := 0; i < n; i++ {
		header = append(header, m.PropertyName(i))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	row := func(label string, neighbour int) {
		cells := []string{label}
		for i := 0; i < n; i++ {
			mark := "."
			if tile.NeighbourProperty(neighbour, i) {
				mark = "x"
			}
			cells = append(cells, mark)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	row("Center", grid.Self)
	for i, name := range grid.NeighbourNames {
		row(name, i)
	}

	return w.Flush()
}

// columns is the number of property columns worth showing: every labelled
// property plus any higher bit that is set.
func columns(m *grid.Grid, tile *grid.Tile) int {
	n := len(m.PropertyNames())

	bits := []grid.Bitset{tile.Bitset()}
	for _, b := range tile.Neighbours() {
		bits = append(bits, b)
	}
	for _, b := range bits {
		for i := grid.BitWidth - 1; i >= n; i-- {
			if b.Get(i) {
				n = i + 1
				break
			}
		}
	}

	if n == 0 {
		n = 1
	}
	return n
}
