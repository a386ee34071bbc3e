package world

// Report records what a generation run placed.
type Report struct {
	Rivers      []RiverReport      `json:"rivers"`
	ShoreTiles  int                `json:"shore_tiles"`
	GroundTiles int                `json:"ground_tiles"`
	Forests     []ForestReport     `json:"forests"`
	Decorations []DecorationReport `json:"decorations"`
}

// RiverReport describes one carved river.
type RiverReport struct {
	Start Coord `json:"start"`
	End   Coord `json:"end"`
	// Path holds the cursor position at each step, start first. The end
	// point itself is never visited.
	Path []Coord `json:"-"`
}

// Steps returns the number of cursor moves the river took.
func (r RiverReport) Steps() int {
	return len(r.Path)
}

// ForestReport describes one grown forest.
type ForestReport struct {
	Index    int         `json:"index"`
	Size     int         `json:"size"` // Trees requested
	Start    Coord       `json:"start"`
	Trees    []Placement `json:"trees"`
	Attempts int         `json:"failed_attempts"`
}

// DecorationReport describes one scattered decoration type.
type DecorationReport struct {
	Tile      TileID      `json:"tile"`
	Requested int         `json:"requested"`
	Skipped   int         `json:"skipped"`
	Placed    []Placement `json:"placed"`
}

// TreeCount returns the number of trees placed across all forests.
func (r *Report) TreeCount() int {
	n := 0
	for _, f := range r.Forests {
		n += len(f.Trees)
	}
	return n
}

// DecorationCount returns the number of decorations placed.
func (r *Report) DecorationCount() int {
	n := 0
	for _, d := range r.Decorations {
		n += len(d.Placed)
	}
	return n
}

// Placements returns every footprint on the decoration layer, trees first.
func (r *Report) Placements() []Placement {
	var all []Placement
	for _, f := range r.Forests {
		all = append(all, f.Trees...)
	}
	for _, d := range r.Decorations {
		all = append(all, d.Placed...)
	}
	return all
}
