package world

// FillGround paints a weighted-random ground tile on every unclaimed cell.
// Water cells are left bare on the ground layer. Returns the tiles painted.
func (g *Generator) FillGround() int {
	painted := 0
	for y := 0; y < g.grid.Height; y++ {
		for x := 0; x < g.grid.Width; x++ {
			c := Coord{X: x, Y: y}
			if g.grid.Occupied(c) {
				continue
			}
			g.surface.SetTile(LayerGround, c, g.ground.Pick(g.rng))
			painted++
		}
	}
	return painted
}
