// Terrain generation: cellular-automaton water bodies on the surface
// layer plus a simplex-noise elevation field for rendering collaborators.
package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/voxhall/gridcity/internal/entropy"
	"github.com/voxhall/gridcity/internal/tile"
)

const smoothingPasses = 3

// generateTerrain seeds water cells at the given probability, smooths the
// result with a cellular automaton, and guarantees at least one lake.
func (g *Grid) generateTerrain(waterThreshold float64, src *entropy.Source) {
	surface := g.layers[LayerSurface]

	// Independent Bernoulli draw per cell.
	for i := range surface {
		if src.Float() < waterThreshold {
			surface[i] = tile.Water
		}
	}

	// Smooth: isolated water dies, enclosed dirt floods. Neighbor counts
	// are taken from the grid as it stood before the pass.
	for pass := 0; pass < smoothingPasses; pass++ {
		prev := make([]tile.Type, len(surface))
		copy(prev, surface)

		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				n := countWaterNeighbors(prev, g.Width, g.Height, x, y)
				i := y*g.Width + x
				if prev[i] == tile.Water {
					if n < 2 {
						surface[i] = tile.Dirt
					}
				} else if n >= 5 {
					surface[i] = tile.Water
				}
			}
		}
	}

	// Every map needs navigable water for pumps to reference. If smoothing
	// killed it all, force a small lake in the center.
	if g.CountSurface(tile.Water) == 0 {
		cx, cy := g.Width/2, g.Height/2
		for y := cy - 2; y <= cy+2; y++ {
			for x := cx - 2; x <= cx+2; x++ {
				g.SetTile(x, y, tile.Water, LayerSurface)
			}
		}
	}
}

// countWaterNeighbors counts water cells in the 8-neighborhood of (x, y).
func countWaterNeighbors(surface []tile.Type, width, height, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			if surface[ny*width+nx] == tile.Water {
				n++
			}
		}
	}
	return n
}

// generateElevation fills the elevation field with multi-octave simplex
// noise. Purely cosmetic data; water placement does not consult it.
func (g *Grid) generateElevation(seed int64) {
	noise := opensimplex.NewNormalized(seed)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.elevation[y*g.Width+x] = octaveNoise(noise, float64(x), float64(y), 4, 0.08, 0.5)
		}
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
