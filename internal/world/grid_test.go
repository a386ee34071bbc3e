package world

import "testing"

func TestGridBounds(t *testing.T) {
	g := NewGrid(3, 2)

	cases := []struct {
		c    Coord
		want bool
	}{
		{Coord{0, 0}, true},
		{Coord{2, 1}, true},
		{Coord{3, 0}, false},
		{Coord{0, 2}, false},
		{Coord{-1, 0}, false},
		{Coord{0, -1}, false},
	}
	for _, tc := range cases {
		if got := g.InBounds(tc.c); got != tc.want {
			t.Errorf("InBounds(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}

	if g.Occupy(Coord{5, 5}) {
		t.Error("Occupy out of bounds reported a write")
	}
	if g.Occupied(Coord{-1, -1}) {
		t.Error("out-of-bounds cell reported occupied")
	}
	if !g.Occupy(Coord{1, 1}) || !g.Occupied(Coord{1, 1}) {
		t.Error("in-bounds cell not occupied after Occupy")
	}
	if got := g.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestGridRect(t *testing.T) {
	g := NewGrid(4, 4)

	if !g.RectFree(Coord{0, 0}, 4, 4) {
		t.Fatal("empty grid should have the full rect free")
	}
	if g.RectFree(Coord{3, 3}, 2, 1) {
		t.Error("rect hanging off the right edge reported free")
	}
	if g.RectFree(Coord{-1, 0}, 1, 1) {
		t.Error("rect left of the map reported free")
	}

	g.OccupyRect(Coord{1, 1}, 2, 2)
	if got := g.Count(); got != 4 {
		t.Errorf("Count() after 2x2 rect = %d, want 4", got)
	}
	if g.RectFree(Coord{0, 0}, 2, 2) {
		t.Error("rect overlapping a claimed cell reported free")
	}
	if !g.RectFree(Coord{3, 0}, 1, 4) {
		t.Error("untouched column reported blocked")
	}

	// Partially off-map rects only claim the in-bounds part.
	g.OccupyRect(Coord{3, 3}, 3, 3)
	if got := g.Count(); got != 5 {
		t.Errorf("Count() after clipped rect = %d, want 5", got)
	}
}

func TestCoordNeighbors(t *testing.T) {
	n := Coord{5, 5}.Neighbors()
	seen := make(map[Coord]bool)
	for _, c := range n {
		dx, dy := c.X-5, c.Y-5
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Errorf("unexpected neighbor %v", c)
		}
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Errorf("got %d distinct neighbors, want 8", len(seen))
	}
}

func TestPlacementOverlaps(t *testing.T) {
	a := Placement{Origin: Coord{0, 0}, Width: 2, Height: 2}
	b := Placement{Origin: Coord{2, 0}, Width: 1, Height: 1}
	c := Placement{Origin: Coord{1, 1}, Width: 3, Height: 1}

	if a.Overlaps(b) || b.Overlaps(a) {
		t.Error("touching placements reported as overlapping")
	}
	if !a.Overlaps(c) || !c.Overlaps(a) {
		t.Error("overlapping placements not detected")
	}
	if !a.Contains(Coord{1, 1}) || a.Contains(Coord{2, 1}) {
		t.Error("Contains disagrees with footprint bounds")
	}
}
