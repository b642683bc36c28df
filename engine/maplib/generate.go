package maplib

import "math/rand"

// Generate builds a w x h chunk map with walls along every chunk seam, broken
// by gaps, plus scattered blocked tiles and ramps. The same seed always
// produces the same map.
func Generate(name string, w, h, chunkTilesW, chunkTilesH int, seed int64) *TileMap {
	tm := NewTileMap(name, w, h, chunkTilesW, chunkTilesH)
	rng := rand.New(rand.NewSource(seed))
	tx, ty := tm.TilesWide(), tm.TilesHigh()

	block := func(x, y int) {
		if t := tm.At(tm.Desc(x, y)); t != nil {
			t.Pathable = false
		}
	}

	// Vertical walls just left of each seam, one gap per chunk row
	for c := 1; c < w; c++ {
		x := c*chunkTilesW - 1
		for r := 0; r < h; r++ {
			gap := r*chunkTilesH + rng.Intn(chunkTilesH)
			for y := r * chunkTilesH; y < (r+1)*chunkTilesH; y++ {
				if y != gap {
					block(x, y)
				}
			}
		}
	}
	// Horizontal walls with wider gaps
	for r := 1; r < h; r++ {
		y := r*chunkTilesH - 1
		for x := 0; x < tx; x++ {
			if rng.Intn(4) != 0 {
				block(x, y)
			}
		}
	}

	for i := 0; i < tx*ty/20; i++ {
		block(rng.Intn(tx), rng.Intn(ty))
	}
	for i := 0; i < tx*ty/40; i++ {
		if t := tm.At(tm.Desc(rng.Intn(tx), rng.Intn(ty))); t != nil {
			t.Type = TileRampEW
			t.RampHeight = 1 + rng.Intn(2)
		}
	}
	return tm
}
