package world

// riverEdgeMargin keeps river endpoints away from the map corners.
const riverEdgeMargin = 4

// RiverEndpoints picks a start and end on opposite edges. Either both lie on
// the bottom/top edges or both on the left/right edges, chosen with equal odds.
// The far endpoint sits one past the last row or column, so the river runs
// off the map and the terminal cell is never painted.
func (g *Generator) RiverEndpoints() (Coord, Coord) {
	w, h := g.cfg.Width, g.cfg.Height
	if g.rng.Intn(2) == 0 {
		start := Coord{X: rangeInt(g.rng, riverEdgeMargin, w-riverEdgeMargin), Y: 0}
		end := Coord{X: rangeInt(g.rng, riverEdgeMargin, w-riverEdgeMargin), Y: h}
		return start, end
	}
	start := Coord{X: 0, Y: rangeInt(g.rng, riverEdgeMargin, h-riverEdgeMargin)}
	end := Coord{X: w, Y: rangeInt(g.rng, riverEdgeMargin, h-riverEdgeMargin)}
	return start, end
}

// CarveRiver walks from start towards end one cell at a time. Each step
// moves horizontally with probability remainingX/(remainingX+remainingY),
// so the walk always arrives after exactly |dx|+|dy| steps. Every visited
// cell is painted and widened perpendicular to the step direction.
func (g *Generator) CarveRiver(start, end Coord) RiverReport {
	rep := RiverReport{Start: start, End: end}

	hStep, vStep := 1, 1
	dx := end.X - start.X
	if dx < 0 {
		dx = -dx
		hStep = -1
	}
	dy := end.Y - start.Y
	if dy < 0 {
		dy = -dy
		vStep = -1
	}

	half := (g.cfg.RiverWidth - 1) / 2
	cursor := start
	for dx+dy > 0 {
		rep.Path = append(rep.Path, cursor)
		horizontal := g.rng.Intn(dx+dy) < dx

		g.paintWater(cursor)
		for i := 1; i <= half; i++ {
			if horizontal {
				g.paintWater(cursor.Add(0, i))
				g.paintWater(cursor.Add(0, -i))
			} else {
				g.paintWater(cursor.Add(i, 0))
				g.paintWater(cursor.Add(-i, 0))
			}
		}

		if horizontal {
			cursor.X += hStep
			dx--
		} else {
			cursor.Y += vStep
			dy--
		}
	}
	return rep
}

// paintWater paints a random water tile at c and claims it. Cells outside
// the map are skipped without drawing a tile.
func (g *Generator) paintWater(c Coord) {
	if !g.grid.InBounds(c) {
		return
	}
	g.surface.SetTile(LayerWater, c, pickTile(g.rng, g.cfg.WaterTiles))
	g.grid.Occupy(c)
}
