// Terrain generation: rivers, shores, ground, forests, decorations, in that order.
// Each stage reads the occupancy left by the previous ones.
package world

import (
	"fmt"
	"log/slog"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Forest siting modes.
const (
	SitingUniform = "uniform" // Forest start drawn uniformly over the map
	SitingNoise   = "noise"   // Best of several draws, scored by simplex noise
)

// GenConfig holds map generation parameters and tile palettes.
type GenConfig struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed"` // 0 = random

	Rivers     int      `json:"rivers"`
	RiverWidth int      `json:"river_width"` // Odd, cells across
	WaterTiles []TileID `json:"water_tiles"` // Picked uniformly
	ShoreTile  TileID   `json:"shore_tile"`

	GroundPalette Palette `json:"ground_palette"`

	Forests            int         `json:"forests"`
	ForestMin          int         `json:"forest_min"`           // Inclusive
	ForestMax          int         `json:"forest_max"`           // Exclusive
	ForestAttemptLimit int         `json:"forest_attempt_limit"` // Failed placements allowed per forest
	ForestSiting       string      `json:"forest_siting"`
	TreeTiles          []Footprint `json:"tree_tiles"`

	Decorations []Decoration `json:"decorations"`
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:      100,
		Height:     100,
		Seed:       0,
		Rivers:     2,
		RiverWidth: 5,
		WaterTiles: []TileID{"water_0", "water_1", "water_2"},
		ShoreTile:  "shore",
		GroundPalette: Palette{
			{Tile: "grass_plain", Weight: 70},
			{Tile: "grass_tall", Weight: 20},
			{Tile: "grass_flowers", Weight: 8},
			{Tile: "dirt", Weight: 2},
		},
		Forests:            4,
		ForestMin:          15,
		ForestMax:          31,
		ForestAttemptLimit: 2000,
		ForestSiting:       SitingUniform,
		TreeTiles: []Footprint{
			{Tile: "tree_oak", Width: 2, Height: 2},
			{Tile: "tree_pine", Width: 1, Height: 2},
			{Tile: "tree_birch", Width: 1, Height: 1},
		},
		Decorations: []Decoration{
			{Footprint: Footprint{Tile: "rock", Width: 1, Height: 1}, SpawnCount: 40},
			{Footprint: Footprint{Tile: "boulder", Width: 2, Height: 2}, SpawnCount: 10},
			{Footprint: Footprint{Tile: "bush", Width: 1, Height: 1}, SpawnCount: 60},
			{Footprint: Footprint{Tile: "cabin", Width: 3, Height: 2}, SpawnCount: 2},
		},
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() GenConfig {
	cfg := DefaultGenConfig()
	cfg.Width = 32
	cfg.Height = 32
	cfg.Seed = 42
	cfg.Rivers = 1
	cfg.Forests = 2
	cfg.Decorations = []Decoration{
		{Footprint: Footprint{Tile: "rock", Width: 1, Height: 1}, SpawnCount: 10},
		{Footprint: Footprint{Tile: "boulder", Width: 2, Height: 2}, SpawnCount: 3},
	}
	return cfg
}

// Validate reports the first misconfigured field as a *ConfigError.
func (cfg GenConfig) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return &ConfigError{Field: "width/height", Reason: fmt.Sprintf("must be positive, got %dx%d", cfg.Width, cfg.Height)}
	}
	if cfg.Rivers < 0 {
		return &ConfigError{Field: "rivers", Reason: "must not be negative"}
	}
	if cfg.Forests < 0 {
		return &ConfigError{Field: "forests", Reason: "must not be negative"}
	}
	if cfg.Rivers > 0 {
		if cfg.RiverWidth < 1 || cfg.RiverWidth%2 == 0 {
			return &ConfigError{Field: "river_width", Reason: fmt.Sprintf("must be an odd positive integer, got %d", cfg.RiverWidth)}
		}
		if err := validateTiles("water_tiles", cfg.WaterTiles); err != nil {
			return err
		}
		if cfg.ShoreTile == "" {
			return &ConfigError{Field: "shore_tile", Reason: "is empty"}
		}
	}
	if err := cfg.GroundPalette.Validate("ground_palette"); err != nil {
		return err
	}
	if cfg.Forests > 0 {
		if len(cfg.TreeTiles) == 0 {
			return &ConfigError{Field: "tree_tiles", Reason: "list is empty"}
		}
		for _, t := range cfg.TreeTiles {
			if err := validateFootprint("tree_tiles", t); err != nil {
				return err
			}
		}
		if cfg.ForestMin < 0 || cfg.ForestMax < cfg.ForestMin {
			return &ConfigError{Field: "forest_min/forest_max", Reason: fmt.Sprintf("bad range [%d, %d)", cfg.ForestMin, cfg.ForestMax)}
		}
		if cfg.ForestAttemptLimit <= 0 {
			return &ConfigError{Field: "forest_attempt_limit", Reason: "must be positive"}
		}
	}
	switch cfg.ForestSiting {
	case "", SitingUniform, SitingNoise:
	default:
		return &ConfigError{Field: "forest_siting", Reason: fmt.Sprintf("unknown mode %q", cfg.ForestSiting)}
	}
	for _, d := range cfg.Decorations {
		if err := validateFootprint("decorations", d.Footprint); err != nil {
			return err
		}
		if d.SpawnCount < 0 {
			return &ConfigError{Field: "decorations", Reason: fmt.Sprintf("negative spawn count for %s", d.Tile)}
		}
	}
	return nil
}

func validateTiles(field string, tiles []TileID) error {
	if len(tiles) == 0 {
		return &ConfigError{Field: field, Reason: "list is empty"}
	}
	for _, t := range tiles {
		if t == "" {
			return &ConfigError{Field: field, Reason: "contains an empty tile"}
		}
	}
	return nil
}

func validateFootprint(field string, f Footprint) error {
	if f.Tile == "" {
		return &ConfigError{Field: field, Reason: "contains an empty tile"}
	}
	if f.Width < 1 || f.Height < 1 {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("footprint of %s must be at least 1x1, got %dx%d", f.Tile, f.Width, f.Height)}
	}
	return nil
}

// Generator runs one generation pass against a Surface.
// It is single-use and not safe for concurrent use.
type Generator struct {
	cfg     GenConfig
	rng     Rand
	surface Surface
	grid    *Grid
	ground  *Selector
	noise   opensimplex.Noise // nil unless SitingNoise
}

// NewGenerator validates cfg and prepares an empty occupancy grid.
func NewGenerator(cfg GenConfig, rng Rand, surface Surface) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ground, err := newSelector(cfg.GroundPalette, "ground_palette")
	if err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:     cfg,
		rng:     rng,
		surface: surface,
		grid:    NewGrid(cfg.Width, cfg.Height),
		ground:  ground,
	}
	if cfg.ForestSiting == SitingNoise {
		g.noise = opensimplex.NewNormalized(cfg.Seed + 1)
	}
	return g, nil
}

// Grid returns the occupancy grid being filled.
func (g *Generator) Grid() *Grid {
	return g.grid
}

// Run executes every stage in order: rivers, shores, ground, forests, decorations.
func (g *Generator) Run() (*Report, error) {
	rep := &Report{}

	for i := 0; i < g.cfg.Rivers; i++ {
		start, end := g.RiverEndpoints()
		rep.Rivers = append(rep.Rivers, g.CarveRiver(start, end))
	}
	slog.Debug("rivers carved", "rivers", len(rep.Rivers), "water_cells", g.grid.Count())

	rep.ShoreTiles = g.DeriveShores()
	slog.Debug("shores derived", "tiles", rep.ShoreTiles)

	rep.GroundTiles = g.FillGround()
	slog.Debug("ground filled", "tiles", rep.GroundTiles)

	for i := 0; i < g.cfg.Forests; i++ {
		forest, err := g.GrowForest(i)
		rep.Forests = append(rep.Forests, forest)
		if err != nil {
			return rep, fmt.Errorf("grow forests: %w", err)
		}
	}
	slog.Debug("forests grown", "forests", len(rep.Forests), "trees", rep.TreeCount())

	rep.Decorations = g.ScatterDecorations()
	slog.Debug("decorations scattered", "placed", rep.DecorationCount())

	return rep, nil
}

// Generate creates a complete map in memory. A zero seed picks a random one;
// the seed actually used is recorded on the returned Map.
func Generate(cfg GenConfig) (*Map, error) {
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	return GenerateWith(cfg, rng)
}

// GenerateWith creates a complete map in memory using the given random source.
func GenerateWith(cfg GenConfig, rng Rand) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layers := NewLayers(cfg.Width, cfg.Height)
	g, err := NewGenerator(cfg, rng, layers)
	if err != nil {
		return nil, err
	}
	rep, err := g.Run()
	if err != nil {
		return nil, err
	}
	return &Map{
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   cfg.Seed,
		Grid:   g.grid,
		Layers: layers,
		Report: rep,
	}, nil
}
