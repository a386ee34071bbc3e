package world

import "fmt"

// Map is the result of one generation run: the painted layers, the final
// occupancy grid, and a report of what was placed.
type Map struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Seed   int64   `json:"seed"`
	Grid   *Grid   `json:"-"`
	Layers *Layers `json:"-"`
	Report *Report `json:"report"`
}

// Cell describes everything painted at one coordinate.
type Cell struct {
	Coord      Coord  `json:"coord"`
	Occupied   bool   `json:"occupied"`
	Water      TileID `json:"water,omitempty"`
	Shore      TileID `json:"shore,omitempty"`
	Ground     TileID `json:"ground,omitempty"`
	Decoration TileID `json:"decoration,omitempty"`
}

// Cell returns the tiles at c, or false if c is outside the map.
func (m *Map) Cell(c Coord) (Cell, bool) {
	if !m.Grid.InBounds(c) {
		return Cell{}, false
	}
	cell := Cell{Coord: c, Occupied: m.Grid.Occupied(c)}
	cell.Water, _ = m.Layers.GetTile(LayerWater, c)
	cell.Shore, _ = m.Layers.GetTile(LayerShore, c)
	cell.Ground, _ = m.Layers.GetTile(LayerGround, c)
	cell.Decoration, _ = m.Layers.GetTile(LayerDecoration, c)
	return cell, true
}

// TileCounts returns per-tile counts for every layer.
func (m *Map) TileCounts() map[Layer]map[TileID]int {
	counts := make(map[Layer]map[TileID]int, len(AllLayers))
	for _, l := range AllLayers {
		counts[l] = m.Layers.Counts(l)
	}
	return counts
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, seed=%d, occupied=%d)", m.Width, m.Height, m.Seed, m.Grid.Count())
}
