// Package world owns the layered tile grid: a stack of same-sized 2D
// tile arrays representing vertically separated infrastructure.
package world

import (
	"fmt"

	"github.com/voxhall/gridcity/internal/entropy"
	"github.com/voxhall/gridcity/internal/tile"
)

// Layer ids. Reads from any other layer return tile.Empty unless a write
// has allocated it.
const (
	LayerAir        = 1  // power lines
	LayerSurface    = 0  // roads, zones, buildings
	LayerWaterPipes = -1 // water pipes
	LayerSewerPipes = -2 // sewer pipes
)

// Grid holds the complete layered city map. It is the sole mutable source
// of truth for tile occupancy; all cross-component access goes through
// Tile and SetTile.
type Grid struct {
	Width  int
	Height int

	layers    map[int][]tile.Type
	elevation []float64
}

// NewGrid creates a grid with the standard layers, generates water bodies
// on the surface at the given threshold, and fills the elevation field.
// Terrain generation runs exactly once, here.
func NewGrid(width, height int, waterThreshold float64, src *entropy.Source) *Grid {
	g := newBlankGrid(width, height)
	g.generateTerrain(waterThreshold, src)
	g.generateElevation(src.Int63())
	return g
}

// newBlankGrid allocates the standard layers without terrain. The surface
// starts as dirt, everything else empty.
func newBlankGrid(width, height int) *Grid {
	g := &Grid{
		Width:     width,
		Height:    height,
		layers:    make(map[int][]tile.Type, 4),
		elevation: make([]float64, width*height),
	}
	g.layers[LayerAir] = newLayer(width, height, tile.Empty)
	g.layers[LayerSurface] = newLayer(width, height, tile.Dirt)
	g.layers[LayerWaterPipes] = newLayer(width, height, tile.Empty)
	g.layers[LayerSewerPipes] = newLayer(width, height, tile.Empty)
	return g
}

func newLayer(width, height int, fill tile.Type) []tile.Type {
	l := make([]tile.Type, width*height)
	if fill != tile.Empty {
		for i := range l {
			l[i] = fill
		}
	}
	return l
}

// InBounds reports whether the coordinate lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Tile returns the tile at (x, y) on the given layer. Out-of-range
// coordinates and undefined layers yield tile.Empty, never an error: the
// grid is read from hot loops and favors sentinel values over failures.
func (g *Grid) Tile(x, y, layer int) tile.Type {
	l, ok := g.layers[layer]
	if !ok || !g.InBounds(x, y) {
		return tile.Empty
	}
	return l[y*g.Width+x]
}

// Surface returns the tile at (x, y) on the surface layer.
func (g *Grid) Surface(x, y int) tile.Type {
	return g.Tile(x, y, LayerSurface)
}

// SetTile places a tile at (x, y) on the given layer. An undefined layer
// is allocated on first write, filled with tile.Empty. Out-of-range
// writes are silently dropped.
func (g *Grid) SetTile(x, y int, t tile.Type, layer int) {
	l, ok := g.layers[layer]
	if !ok {
		l = newLayer(g.Width, g.Height, tile.Empty)
		g.layers[layer] = l
	}
	if !g.InBounds(x, y) {
		return
	}
	l[y*g.Width+x] = t
}

// Elevation returns the terrain elevation in [0, 1] at (x, y), 0 when out
// of range. Rendering collaborators use it for height shading; the
// simulation itself never reads it.
func (g *Grid) Elevation(x, y int) float64 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.elevation[y*g.Width+x]
}

// Layers returns the defined layer ids in no particular order.
func (g *Grid) Layers() []int {
	ids := make([]int, 0, len(g.layers))
	for id := range g.layers {
		ids = append(ids, id)
	}
	return ids
}

// CountSurface returns how many surface tiles are of the given type.
func (g *Grid) CountSurface(t tile.Type) int {
	n := 0
	for _, v := range g.layers[LayerSurface] {
		if v == t {
			n++
		}
	}
	return n
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, layers=%d)", g.Width, g.Height, len(g.layers))
}
