// Grid serialization. The snapshot form carries every defined layer as a
// flat tile-id list; a legacy single-layer payload (bare "grid" key) is
// still accepted and mapped to the surface layer.
package world

import (
	"fmt"
	"strconv"

	"github.com/voxhall/gridcity/internal/tile"
)

// Snapshot is the serialized form of a Grid.
type Snapshot struct {
	Width  int                    `json:"width"`
	Height int                    `json:"height"`
	Layers map[string][]tile.Type `json:"layers,omitempty"`

	// Grid is the legacy single-layer payload, pre multi-layer saves.
	Grid []tile.Type `json:"grid,omitempty"`
}

// Snapshot serializes every defined layer plus dimensions. Elevation is
// cosmetic and not carried; restore regenerates it.
func (g *Grid) Snapshot() *Snapshot {
	layers := make(map[string][]tile.Type, len(g.layers))
	for id, l := range g.layers {
		out := make([]tile.Type, len(l))
		copy(out, l)
		layers[strconv.Itoa(id)] = out
	}
	return &Snapshot{
		Width:  g.Width,
		Height: g.Height,
		Layers: layers,
	}
}

// FromSnapshot rebuilds a grid from serialized data. No terrain generation
// runs; the snapshot is the complete tile content. The elevation field
// starts zeroed — callers that want height shading after a restore use
// RegenerateElevation.
func FromSnapshot(s *Snapshot) (*Grid, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("snapshot: bad dimensions %dx%d", s.Width, s.Height)
	}
	g := newBlankGrid(s.Width, s.Height)
	size := s.Width * s.Height

	if len(s.Layers) > 0 {
		g.layers = make(map[int][]tile.Type, len(s.Layers))
		for key, data := range s.Layers {
			id, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("snapshot: bad layer key %q: %w", key, err)
			}
			if len(data) != size {
				return nil, fmt.Errorf("snapshot: layer %d has %d tiles, want %d", id, len(data), size)
			}
			l := make([]tile.Type, size)
			copy(l, data)
			g.layers[id] = l
		}
		return g, nil
	}

	if s.Grid != nil {
		if len(s.Grid) != size {
			return nil, fmt.Errorf("snapshot: legacy grid has %d tiles, want %d", len(s.Grid), size)
		}
		copy(g.layers[LayerSurface], s.Grid)
		return g, nil
	}

	return nil, fmt.Errorf("snapshot: no layer data")
}

// RegenerateElevation refills the cosmetic elevation field from the given
// seed, typically after a snapshot restore.
func (g *Grid) RegenerateElevation(seed int64) {
	g.generateElevation(seed)
}
