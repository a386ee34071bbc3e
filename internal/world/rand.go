package world

// Rand is the pseudo-random source consumed by generation, in strict call
// order. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// rangeInt returns a uniform integer in [lo, hi). An empty range yields lo.
func rangeInt(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

func pickTile(rng Rand, tiles []TileID) TileID {
	return tiles[rng.Intn(len(tiles))]
}
