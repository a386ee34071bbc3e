// Package world provides the tile grid, occupancy tracking, and the
// procedural terrain generator (rivers, shores, ground, forests, decorations).
package world

import "fmt"

// Coord is a cell position. X grows to the right, Y grows upward.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns c offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// neighborOffsets are the eight surrounding cells, scanned bottom row first.
var neighborOffsets = [8]Coord{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Neighbors returns the eight adjacent coordinates. Some may be out of bounds.
func (c Coord) Neighbors() [8]Coord {
	var result [8]Coord
	for i, d := range neighborOffsets {
		result[i] = c.Add(d.X, d.Y)
	}
	return result
}

// Grid is the occupancy grid: one flag per cell, set when the cell is
// claimed by water, a tree, or a decoration footprint.
// Cells are stored row-major. All accessors are bounds-checked.
type Grid struct {
	Width  int
	Height int
	cells  []bool
}

// NewGrid allocates an empty grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{Width: width, Height: height, cells: make([]bool, width*height)}
}

// InBounds reports whether c lies within [0,Width)×[0,Height).
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Occupied reports whether c is claimed. Out-of-bounds cells are never occupied.
func (g *Grid) Occupied(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.cells[c.Y*g.Width+c.X]
}

// Occupy claims c. Out-of-bounds coordinates are ignored; the return value
// reports whether the cell was written.
func (g *Grid) Occupy(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	g.cells[c.Y*g.Width+c.X] = true
	return true
}

// RectFree reports whether every cell of the w×h rectangle anchored at
// origin is in bounds and unclaimed.
func (g *Grid) RectFree(origin Coord, w, h int) bool {
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < h; dy++ {
			c := origin.Add(dx, dy)
			if !g.InBounds(c) || g.Occupied(c) {
				return false
			}
		}
	}
	return true
}

// OccupyRect claims every in-bounds cell of the w×h rectangle anchored at origin.
func (g *Grid) OccupyRect(origin Coord, w, h int) {
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < h; dy++ {
			g.Occupy(origin.Add(dx, dy))
		}
	}
}

// Count returns the number of claimed cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, occupied=%d)", g.Width, g.Height, g.Count())
}
