package world

import (
	"math/rand"
	"testing"
)

func TestShoreMarksNeighbors(t *testing.T) {
	cfg := bareConfig(12, 12)
	g, layers := newTestGenerator(cfg, rand.New(rand.NewSource(1)))

	water := []Coord{{5, 5}, {6, 5}, {6, 6}, {9, 2}}
	for _, c := range water {
		g.paintWater(c)
	}
	before := g.grid.Count()

	g.DeriveShores()

	if got := g.grid.Count(); got != before {
		t.Errorf("shore derivation changed occupancy: %d -> %d", before, got)
	}

	expected := make(map[Coord]bool)
	for _, w := range water {
		for _, n := range w.Neighbors() {
			if g.grid.InBounds(n) && !g.grid.Occupied(n) {
				expected[n] = true
				expected[w] = true
			}
		}
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			c := Coord{x, y}
			tile, ok := layers.GetTile(LayerShore, c)
			if ok != expected[c] {
				t.Errorf("shore at %v = %v, want %v", c, ok, expected[c])
			}
			if ok && tile != "shore" {
				t.Errorf("shore tile at %v = %q, want shore", c, tile)
			}
		}
	}
}

func TestShoreReachesMapEdge(t *testing.T) {
	cfg := bareConfig(5, 5)
	g, layers := newTestGenerator(cfg, rand.New(rand.NewSource(1)))
	g.paintWater(Coord{1, 1})

	g.DeriveShores()

	// Row and column zero are tested like any other cell.
	for _, c := range []Coord{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {0, 2}, {1, 1}} {
		if _, ok := layers.GetTile(LayerShore, c); !ok {
			t.Errorf("expected shore at %v", c)
		}
	}
	if _, ok := layers.GetTile(LayerShore, Coord{3, 3}); ok {
		t.Error("unexpected shore two cells from water")
	}
}

func TestShoreWaterInterior(t *testing.T) {
	cfg := bareConfig(20, 20)
	g, layers := newTestGenerator(cfg, rand.New(rand.NewSource(1)))
	g.CarveRiver(Coord{10, 0}, Coord{10, 20})

	g.DeriveShores()

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			_, ok := layers.GetTile(LayerShore, Coord{x, y})
			want := x == 7 || x == 8 || x == 12 || x == 13
			if ok != want {
				t.Fatalf("shore at (%d,%d) = %v, want %v", x, y, ok, want)
			}
		}
	}
}

func TestShoreIdempotent(t *testing.T) {
	cfg := bareConfig(16, 16)
	layers := NewLayers(cfg.Width, cfg.Height)
	surface := &countingSurface{Layers: layers}
	g, err := NewGenerator(cfg, rand.New(rand.NewSource(2)), surface)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	g.CarveRiver(Coord{0, 4}, Coord{16, 11})

	first := g.DeriveShores()
	if first == 0 {
		t.Fatal("first pass painted no shore")
	}
	if surface.writes[LayerShore] != first {
		t.Errorf("shore writes = %d, want %d (one per painted cell)", surface.writes[LayerShore], first)
	}
	if got := layers.Painted(LayerShore); got != first {
		t.Errorf("painted shore cells = %d, want %d", got, first)
	}

	if second := g.DeriveShores(); second != 0 {
		t.Errorf("second pass painted %d tiles, want 0", second)
	}
	if surface.writes[LayerShore] != first {
		t.Errorf("second pass wrote to the shore layer (%d writes total)", surface.writes[LayerShore])
	}
}
