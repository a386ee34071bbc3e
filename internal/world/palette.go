package world

// Palette is an ordered list of weighted tiles.
type Palette []WeightedTile

// Total returns the sum of all weights.
func (p Palette) Total() float64 {
	total := 0.0
	for _, wt := range p {
		total += wt.Weight
	}
	return total
}

// Validate checks that the palette can be sampled.
func (p Palette) Validate(field string) error {
	if len(p) == 0 {
		return &ConfigError{Field: field, Reason: "palette is empty"}
	}
	for _, wt := range p {
		if wt.Weight < 0 {
			return &ConfigError{Field: field, Reason: "negative weight for tile " + string(wt.Tile)}
		}
		if wt.Tile == "" && wt.Weight > 0 {
			return &ConfigError{Field: field, Reason: "weighted entry has no tile"}
		}
	}
	if p.Total() <= 0 {
		return &ConfigError{Field: field, Reason: "total weight is zero"}
	}
	return nil
}

// Selector draws tiles from a palette with probability weight/total.
type Selector struct {
	palette Palette
	total   float64
	last    TileID // last entry with positive weight
}

// NewSelector validates the palette and precomputes its total weight.
func NewSelector(p Palette) (*Selector, error) {
	return newSelector(p, "palette")
}

func newSelector(p Palette, field string) (*Selector, error) {
	if err := p.Validate(field); err != nil {
		return nil, err
	}
	s := &Selector{palette: p, total: p.Total()}
	for _, wt := range p {
		if wt.Weight > 0 {
			s.last = wt.Tile
		}
	}
	return s, nil
}

// Pick draws a uniform value in [0, total) and walks the palette subtracting
// weights until the remainder drops to zero or below.
func (s *Selector) Pick(rng Rand) TileID {
	remaining := rng.Float64() * s.total
	for _, wt := range s.palette {
		if wt.Weight <= 0 {
			continue
		}
		remaining -= wt.Weight
		if remaining <= 0 {
			return wt.Tile
		}
	}
	// Float rounding can leave a sliver above zero.
	return s.last
}

// Pick is a one-shot convenience for Selector.Pick.
func (p Palette) Pick(rng Rand) (TileID, error) {
	s, err := NewSelector(p)
	if err != nil {
		return "", err
	}
	return s.Pick(rng), nil
}
