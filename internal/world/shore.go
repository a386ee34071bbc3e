package world

// DeriveShores scans the map row by row. Every unclaimed cell that touches
// water in any of its eight neighbors gets a shore tile, and so does the
// touching water cell. Cells that already hold a shore tile are not
// repainted. Returns the number of tiles painted. Occupancy is unchanged.
func (g *Generator) DeriveShores() int {
	painted := 0
	for y := 0; y < g.grid.Height; y++ {
		for x := 0; x < g.grid.Width; x++ {
			c := Coord{X: x, Y: y}
			if g.grid.Occupied(c) {
				continue
			}
			for _, n := range c.Neighbors() {
				if !g.grid.Occupied(n) {
					continue
				}
				if g.paintShore(c) {
					painted++
				}
				if g.paintShore(n) {
					painted++
				}
			}
		}
	}
	return painted
}

func (g *Generator) paintShore(c Coord) bool {
	if _, ok := g.surface.GetTile(LayerShore, c); ok {
		return false
	}
	g.surface.SetTile(LayerShore, c, g.cfg.ShoreTile)
	return true
}
