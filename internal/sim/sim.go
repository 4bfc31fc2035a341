// Package sim runs the city simulation: zone growth, utility
// propagation, and the daily labor exchange that feeds road usage.
package sim

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/voxhall/gridcity/internal/entropy"
	"github.com/voxhall/gridcity/internal/tile"
	"github.com/voxhall/gridcity/internal/world"
)

// growthBaseChance is the per-tick promotion probability multiplier for a
// road-connected zone.
const growthBaseChance = 0.1

// Coord addresses a tile on the surface plane. Layers share coordinates.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Instance is the mutable per-tile state created lazily on first census.
// The map holding these only grows during a session; residents and filled
// jobs only move toward capacity in this model.
type Instance struct {
	Residents  int `json:"residents"`
	Workers    int `json:"workers"`
	FilledJobs int `json:"filled_jobs"`
}

// Simulation owns the grid and all derived state. Single-threaded by
// contract: concurrent readers must be serialized by the caller at tick
// boundaries.
type Simulation struct {
	World   *world.Grid
	Session uuid.UUID

	// TickSeconds is the accumulated wall time needed before one step runs.
	TickSeconds float64

	Day        int
	Population int

	// Serviced-tile sets, rebuilt from scratch by every propagation pass.
	Powered map[Coord]struct{}
	Watered map[Coord]struct{}
	Drained map[Coord]struct{}

	// RoadUsage maps coordinates to daily trip counts, rebuilt by each
	// labor exchange. It is the sole congestion signal this core exposes;
	// recomputing RoadStats.Congestion from it is a consumer concern.
	RoadUsage map[Coord]int

	// Instances holds lazily created per-tile counters.
	Instances map[Coord]*Instance

	rng        *entropy.Source
	pathfinder *Pathfinder
	timer      float64
}

// New creates a simulation over the given grid.
func New(g *world.Grid, src *entropy.Source) *Simulation {
	s := &Simulation{
		World:       g,
		Session:     uuid.New(),
		TickSeconds: 1.0,
		Powered:     make(map[Coord]struct{}),
		Watered:     make(map[Coord]struct{}),
		Drained:     make(map[Coord]struct{}),
		RoadUsage:   make(map[Coord]int),
		Instances:   make(map[Coord]*Instance),
		rng:         src,
		pathfinder:  NewPathfinder(g),
	}
	return s
}

// Tick accumulates elapsed time and, once the tick interval is crossed,
// runs exactly one full simulation step. Returns whether the step changed
// the map. There is no partial-step resumption: the grid always reflects
// the last completed step.
func (s *Simulation) Tick(dt float64) bool {
	s.timer += dt
	if s.timer < s.TickSeconds {
		return false
	}
	s.timer = 0
	changed := s.step()
	s.Day++
	s.UpdateStats()
	return changed
}

// step executes one simulation day: growth, utility propagation, then the
// labor exchange and traffic accounting.
func (s *Simulation) step() bool {
	changed := s.updateGrowth()

	// Power and water run twice per step; the second pass is idempotent.
	// Inherited behavior, kept so simulation outcomes stay comparable with
	// earlier builds.
	s.UpdatePowerGrid()
	s.UpdateWaterGrid()
	s.UpdatePowerGrid()
	s.UpdateWaterGrid()
	s.UpdateSewerGrid()

	s.UpdateLaborExchange()
	s.updateTraffic()

	return changed
}

// updateGrowth scans the surface for undeveloped zones and promotes the
// road-connected ones stochastically.
func (s *Simulation) updateGrowth() bool {
	changed := false
	for x := 0; x < s.World.Width; x++ {
		for y := 0; y < s.World.Height; y++ {
			d, ok := tile.Lookup(s.World.Surface(x, y))
			if !ok || d.Growth == nil {
				continue
			}
			// Zones only grow with road access, no matter how long they wait.
			if !s.connectedToRoad(x, y) {
				continue
			}
			if s.rng.Float() < growthBaseChance*d.Growth.Chance {
				s.World.SetTile(x, y, d.Growth.Target, world.LayerSurface)
				changed = true
			}
		}
	}
	return changed
}

// connectedToRoad reports whether any 4-neighbor on the surface is a road.
func (s *Simulation) connectedToRoad(x, y int) bool {
	for _, n := range neighbors4(x, y) {
		if s.World.Surface(n.X, n.Y) == tile.Road {
			return true
		}
	}
	return false
}

// UpdateStats recalculates the aggregate population.
func (s *Simulation) UpdateStats() {
	s.Population = 5 * s.World.CountSurface(tile.ResidentialLvl1)
}

// InstanceAt returns the per-tile counters for a coordinate, if any exist.
func (s *Simulation) InstanceAt(c Coord) (*Instance, bool) {
	inst, ok := s.Instances[c]
	return inst, ok
}

// updateTraffic closes out the daily traffic accounting. Congestion values
// are derived by overlay consumers from RoadUsage; here we only log the
// day summary.
func (s *Simulation) updateTraffic() {
	if len(s.RoadUsage) == 0 {
		return
	}
	trips := 0
	for _, n := range s.RoadUsage {
		trips += n
	}
	slog.Debug("traffic accounted", "day", s.Day, "road_tiles", len(s.RoadUsage), "trips", trips)
}

// neighbors4 returns the 4-connected neighbor coordinates of (x, y).
// Bounds are not checked; grid reads clamp to tile.Empty.
func neighbors4(x, y int) [4]Coord {
	return [4]Coord{
		{x + 1, y},
		{x - 1, y},
		{x, y + 1},
		{x, y - 1},
	}
}
