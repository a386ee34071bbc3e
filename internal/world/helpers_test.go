package world

import "math/rand"

// scriptedRand replays fixed Intn results, then defers to a seeded source.
type scriptedRand struct {
	ints     []int
	fallback *rand.Rand
}

func newScriptedRand(seed int64, ints ...int) *scriptedRand {
	return &scriptedRand{ints: ints, fallback: rand.New(rand.NewSource(seed))}
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) > 0 {
		v := s.ints[0]
		s.ints = s.ints[1:]
		return v
	}
	return s.fallback.Intn(n)
}

func (s *scriptedRand) Float64() float64 {
	return s.fallback.Float64()
}

// fixedFloat returns the same Float64 forever.
type fixedFloat float64

func (f fixedFloat) Intn(n int) int { return 0 }
func (f fixedFloat) Float64() float64 { return float64(f) }

// countingSurface records how many writes hit each layer.
type countingSurface struct {
	*Layers
	writes [layerCount]int
}

func (s *countingSurface) SetTile(layer Layer, c Coord, tile TileID) {
	s.writes[layer]++
	s.Layers.SetTile(layer, c, tile)
}

// bareConfig is a map with nothing but a single-tile ground palette.
func bareConfig(width, height int) GenConfig {
	return GenConfig{
		Width:              width,
		Height:             height,
		Seed:               7,
		RiverWidth:         5,
		WaterTiles:         []TileID{"water"},
		ShoreTile:          "shore",
		GroundPalette:      Palette{{Tile: "grass", Weight: 1}},
		ForestMin:          15,
		ForestMax:          31,
		ForestAttemptLimit: 2000,
		TreeTiles:          []Footprint{{Tile: "tree", Width: 1, Height: 1}},
	}
}

func newTestGenerator(cfg GenConfig, rng Rand) (*Generator, *Layers) {
	layers := NewLayers(cfg.Width, cfg.Height)
	g, err := NewGenerator(cfg, rng, layers)
	if err != nil {
		panic(err)
	}
	return g, layers
}
