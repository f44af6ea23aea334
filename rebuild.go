package grid

// Rebuild destroys the attached tiles inside region r and creates fresh ones
// for every cell of r that lies in the grid, each with its neighbour cache
// read from the current cell properties. Listeners registered with
// OnTilesCreated are then given every attached tile.
//
// r is half-open. Tiles are matched against the unclamped region, so tiles
// left outside a shrunk grid are destroyed by a WholeGrid rebuild; new tiles
// are only created inside the grid.
func (g *Grid) Rebuild(r Region) {
	doomed := []*Tile{}
	for id, t := range g.tiles {
		if t.attached && r.Contains(id) {
			doomed = append(doomed, t)
		}
	}
	sortTiles(doomed)

	area := r.clamp(g.size)

	g.cells.ensure(g.size)

	for _, t := range doomed {
		g.destroy(t)
	}

	for y := area.From.Y; y < area.To.Y; y++ {
		for x := area.From.X; x < area.To.X; x++ {
			g.create(Coord{X: x, Y: y})
		}
	}

	g.stats.Rebuilds++

	if len(g.created) == 0 {
		return
	}
	all := g.Tiles()
	for _, fn := range g.created {
		fn(all)
	}
}

// create a new attached tile at id
func (g *Grid) create(id Coord) {
	t := NewTile()
	h := g.scene.CreateChild(id)
	t.attach(g, id, h, *g.cells.at(id), g.neighboursOf(id))
	g.tiles[id] = t
	g.stats.TilesCreated++

	for _, fn := range g.attached {
		fn(t)
	}
}

// destroy detaches t and removes its scene child
func (g *Grid) destroy(t *Tile) {
	g.scene.DestroyChild(t.handle)
	if g.tiles[t.id] == t {
		delete(g.tiles, t.id)
	}
	t.detach()
	g.stats.TilesDestroyed++
}

// neighboursOf reads the 8 neighbour bitsets of id; off-grid neighbours are 0.
func (g *Grid) neighboursOf(id Coord) [numNeighbours]Bitset {
	var out [numNeighbours]Bitset
	for n, off := range neighbourOffsets {
		out[n] = g.Properties(id.Add(off))
	}
	return out
}
