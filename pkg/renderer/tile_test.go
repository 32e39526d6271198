package renderer

import (
	"testing"

	"pgregory.net/rapid"
)

// TestTileDisjointness implements spec.md §8 property 4: for every tile
// partition at every tile size, the union of tile rectangles exactly
// covers the image and pairwise intersections are empty.
func TestTileDisjointness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(1, 200).Draw(t, "width")
		height := rapid.IntRange(1, 200).Draw(t, "height")
		tileSize := rapid.IntRange(1, 300).Draw(t, "tileSize")

		tiles := BuildTiles(width, height, tileSize)

		covered := make([]bool, width*height)
		for _, tile := range tiles {
			for y := tile.Y0; y < tile.Y0+tile.H; y++ {
				for x := tile.X0; x < tile.X0+tile.W; x++ {
					i := y*width + x
					if covered[i] {
						t.Fatalf("pixel (%d,%d) covered by more than one tile", x, y)
					}
					covered[i] = true
				}
			}
		}
		for i, c := range covered {
			if !c {
				t.Fatalf("pixel index %d never covered by any tile", i)
			}
		}
	})
}

func TestBuildTilesClampsTileSize(t *testing.T) {
	tiles := BuildTiles(10, 10, 1000)
	if len(tiles) != 1 {
		t.Fatalf("expected a single tile when tileSize exceeds width, got %d", len(tiles))
	}
	if tiles[0].W != 10 || tiles[0].H != 10 {
		t.Errorf("tile = %+v, want full 10x10 coverage", tiles[0])
	}
}

func TestPixelIndexFlipsY(t *testing.T) {
	// Top-left render-space pixel (y=H-1) must land at bitmap index 0
	// (spec.md §4.7: "image origin at top-left; rendering y counts from
	// bottom-up, flipped at write time").
	if got := PixelIndex(0, 9, 10, 10); got != 0 {
		t.Errorf("PixelIndex(0,9,10,10) = %d, want 0", got)
	}
	if got := PixelIndex(0, 0, 10, 10); got != 90 {
		t.Errorf("PixelIndex(0,0,10,10) = %d, want 90", got)
	}
}

func TestTileSeedIsDeterministicFunctionOfIndex(t *testing.T) {
	if TileSeed(5) != TileSeed(5) {
		t.Error("TileSeed must be a pure function of its index")
	}
	if TileSeed(5) == TileSeed(6) {
		t.Error("distinct tile indices should (overwhelmingly likely) yield distinct seeds")
	}
}
