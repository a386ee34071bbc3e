package world

// TileID identifies a tile asset. The empty string means "no tile".
type TileID string

// Layer is one of the four independent paint surfaces.
type Layer uint8

const (
	LayerWater      Layer = iota // Rivers, bottom-most
	LayerShore                   // Banks drawn over water edges
	LayerGround                  // Grass and other biome tiles
	LayerDecoration              // Trees and props, top-most

	layerCount
)

// AllLayers lists every layer in paint order.
var AllLayers = [layerCount]Layer{LayerWater, LayerShore, LayerGround, LayerDecoration}

// String returns a human-readable name for a layer.
func (l Layer) String() string {
	switch l {
	case LayerWater:
		return "water"
	case LayerShore:
		return "shore"
	case LayerGround:
		return "ground"
	case LayerDecoration:
		return "decoration"
	default:
		return "unknown"
	}
}

// ParseLayer maps a layer name back to its Layer.
func ParseLayer(name string) (Layer, bool) {
	for _, l := range AllLayers {
		if l.String() == name {
			return l, true
		}
	}
	return 0, false
}

// WeightedTile is a palette entry: a tile and its relative spawn weight.
type WeightedTile struct {
	Tile   TileID  `json:"tile"`
	Weight float64 `json:"weight"`
}

// Footprint is a tile that claims a rectangle of cells, anchored at its
// bottom-left corner.
type Footprint struct {
	Tile   TileID `json:"tile"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Decoration is a footprint tile scattered SpawnCount times across the map.
type Decoration struct {
	Footprint
	SpawnCount int `json:"spawn_count"`
}

// Placement records a footprint tile painted on the decoration layer.
type Placement struct {
	Tile   TileID `json:"tile"`
	Origin Coord  `json:"origin"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Contains reports whether c is one of the cells the placement claims.
func (p Placement) Contains(c Coord) bool {
	return c.X >= p.Origin.X && c.X < p.Origin.X+p.Width &&
		c.Y >= p.Origin.Y && c.Y < p.Origin.Y+p.Height
}

// Overlaps reports whether two placements share any cell.
func (p Placement) Overlaps(o Placement) bool {
	return p.Origin.X < o.Origin.X+o.Width && o.Origin.X < p.Origin.X+p.Width &&
		p.Origin.Y < o.Origin.Y+o.Height && o.Origin.Y < p.Origin.Y+p.Height
}
