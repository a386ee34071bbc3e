package world

// ScatterDecorations tries SpawnCount random anchors for each decoration
// type. An anchor whose footprint touches a claimed cell is skipped, not
// retried, so fewer than SpawnCount instances may appear.
func (g *Generator) ScatterDecorations() []DecorationReport {
	reports := make([]DecorationReport, 0, len(g.cfg.Decorations))
	for _, d := range g.cfg.Decorations {
		rep := DecorationReport{Tile: d.Tile, Requested: d.SpawnCount}
		for i := 0; i < d.SpawnCount; i++ {
			origin := Coord{
				X: rangeInt(g.rng, d.Width, g.cfg.Width-d.Width),
				Y: rangeInt(g.rng, d.Height, g.cfg.Height-d.Height),
			}
			if !g.grid.RectFree(origin, d.Width, d.Height) {
				rep.Skipped++
				continue
			}
			g.grid.OccupyRect(origin, d.Width, d.Height)
			g.surface.SetTile(LayerDecoration, origin, d.Tile)
			rep.Placed = append(rep.Placed, Placement{
				Tile:   d.Tile,
				Origin: origin,
				Width:  d.Width,
				Height: d.Height,
			})
		}
		reports = append(reports, rep)
	}
	return reports
}
