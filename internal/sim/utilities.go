// Utility propagation: three independent flood-fills computing the sets
// of tiles serviced by power, water, and sewage. Each pass rebuilds its
// set from scratch on every invocation; for a fixed grid the result is
// deterministic regardless of traversal order.
package sim

import (
	"github.com/voxhall/gridcity/internal/tile"
	"github.com/voxhall/gridcity/internal/world"
)

// UpdatePowerGrid recomputes the powered set. Sources are surface tiles
// with a power source capability (always active; fuel and capacity limits
// live outside this core). Power spreads through conductors on the air or
// surface layer; a consumer adjacent to powered conductors is marked
// powered but does not propagate further.
func (s *Simulation) UpdatePowerGrid() {
	s.Powered = make(map[Coord]struct{})

	var queue []Coord
	for x := 0; x < s.World.Width; x++ {
		for y := 0; y < s.World.Height; y++ {
			if tile.Has(s.World.Surface(x, y), tile.KindPowerSource) {
				c := Coord{x, y}
				queue = append(queue, c)
				s.Powered[c] = struct{}{}
			}
		}
	}

	visited := make(map[Coord]struct{}, len(queue))
	for _, c := range queue {
		visited[c] = struct{}{}
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, n := range neighbors4(cur.X, cur.Y) {
			if !s.World.InBounds(n.X, n.Y) {
				continue
			}
			if _, seen := visited[n]; seen {
				continue
			}

			conducts := tile.Has(s.World.Tile(n.X, n.Y, world.LayerAir), tile.KindPowerConductor) ||
				tile.Has(s.World.Surface(n.X, n.Y), tile.KindPowerConductor)

			if conducts {
				s.Powered[n] = struct{}{}
				visited[n] = struct{}{}
				queue = append(queue, n)
			} else if tile.Has(s.World.Surface(n.X, n.Y), tile.KindPowerConsumer) {
				// A bare consumer touching the grid gets service without
				// extending it.
				s.Powered[n] = struct{}{}
			}
		}
	}
}

// UpdateWaterGrid recomputes the watered set. Pumps always produce, as if
// drawing from the groundwater table; no surface-water adjacency is
// required. Water spreads through pipes underground or conducting
// buildings on the surface.
func (s *Simulation) UpdateWaterGrid() {
	s.Watered = make(map[Coord]struct{})

	var queue []Coord
	for x := 0; x < s.World.Width; x++ {
		for y := 0; y < s.World.Height; y++ {
			if tile.Has(s.World.Surface(x, y), tile.KindWaterSource) {
				c := Coord{x, y}
				queue = append(queue, c)
				s.Watered[c] = struct{}{}
			}
		}
	}

	visited := make(map[Coord]struct{}, len(queue))
	for _, c := range queue {
		visited[c] = struct{}{}
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, n := range neighbors4(cur.X, cur.Y) {
			if !s.World.InBounds(n.X, n.Y) {
				continue
			}
			if _, seen := visited[n]; seen {
				continue
			}

			conducts := tile.Has(s.World.Tile(n.X, n.Y, world.LayerWaterPipes), tile.KindWaterConductor) ||
				tile.Has(s.World.Surface(n.X, n.Y), tile.KindWaterConductor)

			if conducts {
				s.Watered[n] = struct{}{}
				visited[n] = struct{}{}
				queue = append(queue, n)
			}
		}
	}
}

// UpdateSewerGrid recomputes the drained set. The map edges act as
// implicit drainage sinks: any boundary sewer pipe drains, and drainage
// spreads inward through connected pipes on the sewer layer.
func (s *Simulation) UpdateSewerGrid() {
	s.Drained = make(map[Coord]struct{})

	sewerAt := func(x, y int) bool {
		return tile.Has(s.World.Tile(x, y, world.LayerSewerPipes), tile.KindSewerConductor)
	}

	var queue []Coord
	for x := 0; x < s.World.Width; x++ {
		for _, y := range []int{0, s.World.Height - 1} {
			if sewerAt(x, y) {
				c := Coord{x, y}
				queue = append(queue, c)
				s.Drained[c] = struct{}{}
			}
		}
	}
	for y := 0; y < s.World.Height; y++ {
		for _, x := range []int{0, s.World.Width - 1} {
			c := Coord{x, y}
			if _, ok := s.Drained[c]; ok {
				continue // corners already collected by the row scan
			}
			if sewerAt(x, y) {
				queue = append(queue, c)
				s.Drained[c] = struct{}{}
			}
		}
	}

	visited := make(map[Coord]struct{}, len(queue))
	for _, c := range queue {
		visited[c] = struct{}{}
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, n := range neighbors4(cur.X, cur.Y) {
			if !s.World.InBounds(n.X, n.Y) {
				continue
			}
			if _, seen := visited[n]; seen {
				continue
			}
			if sewerAt(n.X, n.Y) {
				s.Drained[n] = struct{}{}
				visited[n] = struct{}{}
				queue = append(queue, n)
			}
		}
	}
}
