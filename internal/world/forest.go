package world

import "log/slog"

// GrowForest places a cluster of trees by walking a cursor around the map.
// Each iteration picks a random tree and tries to claim its footprint at the
// cursor; a blocked or off-map footprint counts as a failed attempt and the
// iteration is retried. After every attempt the cursor hops one footprint in
// a random cardinal direction, staying put if the hop would leave the map.
// More than ForestAttemptLimit failures returns a *StalledError.
func (g *Generator) GrowForest(index int) (ForestReport, error) {
	size := rangeInt(g.rng, g.cfg.ForestMin, g.cfg.ForestMax)
	cursor := g.siteForest()
	rep := ForestReport{Index: index, Size: size, Start: cursor}

	for placed := 0; placed < size; {
		tree := g.cfg.TreeTiles[g.rng.Intn(len(g.cfg.TreeTiles))]

		if g.grid.RectFree(cursor, tree.Width, tree.Height) {
			g.grid.OccupyRect(cursor, tree.Width, tree.Height)
			g.surface.SetTile(LayerDecoration, cursor, tree.Tile)
			rep.Trees = append(rep.Trees, Placement{
				Tile:   tree.Tile,
				Origin: cursor,
				Width:  tree.Width,
				Height: tree.Height,
			})
			placed++
		} else {
			rep.Attempts++
			if rep.Attempts > g.cfg.ForestAttemptLimit {
				slog.Warn("forest stalled",
					"forest", index,
					"placed", placed,
					"size", size,
					"cursor", cursor.String(),
				)
				return rep, &StalledError{Forest: index, Placed: placed, Target: size, Attempts: rep.Attempts}
			}
		}

		cursor = g.stepCursor(cursor, tree)
	}
	return rep, nil
}

// stepCursor moves the cursor one footprint up, right, down or left.
func (g *Generator) stepCursor(cursor Coord, tree Footprint) Coord {
	var next Coord
	switch g.rng.Intn(4) {
	case 0:
		next = cursor.Add(0, tree.Height)
	case 1:
		next = cursor.Add(tree.Width, 0)
	case 2:
		next = cursor.Add(0, -tree.Height)
	default:
		next = cursor.Add(-tree.Width, 0)
	}
	if !g.grid.InBounds(next) {
		return cursor
	}
	return next
}

// forestSiteCandidates is how many starts noise siting scores.
const forestSiteCandidates = 8

// siteForest picks the cursor a forest starts from.
func (g *Generator) siteForest() Coord {
	best := Coord{X: g.rng.Intn(g.cfg.Width), Y: g.rng.Intn(g.cfg.Height)}
	if g.noise == nil {
		return best
	}
	bestScore := octaveNoise(g.noise, float64(best.X), float64(best.Y), 3, 0.08, 0.5)
	for i := 1; i < forestSiteCandidates; i++ {
		c := Coord{X: g.rng.Intn(g.cfg.Width), Y: g.rng.Intn(g.cfg.Height)}
		if g.grid.Occupied(c) {
			continue
		}
		if s := octaveNoise(g.noise, float64(c.X), float64(c.Y), 3, 0.08, 0.5); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}
