package world

// Surface is the paint target for generated tiles. Generation only reads
// back from the shore layer (to avoid repainting a bank twice).
type Surface interface {
	SetTile(layer Layer, c Coord, tile TileID)
	GetTile(layer Layer, c Coord) (TileID, bool)
}

// Layers is an in-memory Surface holding all four layers for a
// width×height map, row-major.
type Layers struct {
	Width  int
	Height int
	tiles  [layerCount][]TileID
}

// NewLayers allocates empty layers for a width×height map.
func NewLayers(width, height int) *Layers {
	width, height = max(width, 0), max(height, 0)
	l := &Layers{Width: width, Height: height}
	for i := range l.tiles {
		l.tiles[i] = make([]TileID, width*height)
	}
	return l
}

func (l *Layers) index(layer Layer, c Coord) (int, bool) {
	if layer >= layerCount || c.X < 0 || c.X >= l.Width || c.Y < 0 || c.Y >= l.Height {
		return 0, false
	}
	return c.Y*l.Width + c.X, true
}

// SetTile paints tile at c. Writes outside the map are dropped.
func (l *Layers) SetTile(layer Layer, c Coord, tile TileID) {
	if i, ok := l.index(layer, c); ok {
		l.tiles[layer][i] = tile
	}
}

// GetTile returns the tile at c and whether one is painted there.
func (l *Layers) GetTile(layer Layer, c Coord) (TileID, bool) {
	i, ok := l.index(layer, c)
	if !ok {
		return "", false
	}
	t := l.tiles[layer][i]
	return t, t != ""
}

// Rows returns the layer as a slice of rows, row 0 first.
func (l *Layers) Rows(layer Layer) [][]TileID {
	rows := make([][]TileID, l.Height)
	for y := 0; y < l.Height; y++ {
		row := make([]TileID, l.Width)
		copy(row, l.tiles[layer][y*l.Width:(y+1)*l.Width])
		rows[y] = row
	}
	return rows
}

// Counts returns how many cells hold each tile on the given layer.
func (l *Layers) Counts(layer Layer) map[TileID]int {
	counts := make(map[TileID]int)
	if layer >= layerCount {
		return counts
	}
	for _, t := range l.tiles[layer] {
		if t != "" {
			counts[t]++
		}
	}
	return counts
}

// Painted returns the number of non-empty cells on a layer.
func (l *Layers) Painted(layer Layer) int {
	n := 0
	for _, c := range l.Counts(layer) {
		n += c
	}
	return n
}
