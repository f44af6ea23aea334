package main

import (
	"fmt"
	"os"

	"github.com/voidshard/grid"

	"github.com/alecthomas/kong"
)

const desc = `Copies grids between a grid database (sqlite) and grid files (yaml).

Grids stored in the old format are migrated when read, in both the database
and in files.`

var cli struct {
	// where to find the database file
	DB string `short:"d" required:"" help:"grid database file (created if missing)"`

	List listCmd `cmd:"" help:"list grids in the database"`
	Dump dumpCmd `cmd:"" help:"write a grid from the database to a file"`
	Load loadCmd `cmd:"" help:"store a grid file in the database"`
	Drop dropCmd `cmd:"" help:"delete a grid from the database"`
}

type listCmd struct{}

func (c *listCmd) Run(s *grid.Store) error {
	names, err := s.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

type dumpCmd struct {
	Name   string `arg:"" help:"grid name"`
	Output string `short:"o" help:"where to write the grid file. Defaults to <name>.yaml. Overwrites output file if it exists."`
}

func (c *dumpCmd) Run(s *grid.Store) error {
	if c.Output == "" {
		c.Output = fmt.Sprintf("%s.yaml", c.Name)
	}

	st, err := s.Load(c.Name)
	if err != nil {
		return err
	}

	if err := st.WriteFile(c.Output); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%dx%d)\n", c.Output, st.Size.X, st.Size.Y)
	return nil
}

type loadCmd struct {
	Input string `arg:"" help:"grid file to read"`
	Name  string `short:"n" help:"name to store the grid under. Defaults to the input file name."`
}

func (c *loadCmd) Run(s *grid.Store) error {
	if !fileExists(c.Input) {
		return fmt.Errorf("input file not found: %s", c.Input)
	}
	if c.Name == "" {
		c.Name = c.Input
	}

	st, err := grid.Open(c.Input)
	if err != nil {
		return err
	}

	if err := s.Save(c.Name, st); err != nil {
		return err
	}

	fmt.Printf("stored %s as %q (%dx%d)\n", c.Input, c.Name, st.Size.X, st.Size.Y)
	return nil
}

type dropCmd struct {
	Name string `arg:"" help:"grid name"`
}

func (c *dropCmd) Run(s *grid.Store) error {
	return s.Delete(c.Name)
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("grid-export"), kong.Description(desc), kong.UsageOnError())

	s, err := grid.OpenStore(cli.DB)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	ctx.FatalIfErrorf(ctx.Run(s))
}

// fileExists checks if file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}
