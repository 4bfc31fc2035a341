package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxhall/gridcity/internal/entropy"
	"github.com/voxhall/gridcity/internal/tile"
	"github.com/voxhall/gridcity/internal/world"
)

// dirtGrid builds a terrain-free grid so tests control every tile.
func dirtGrid(t *testing.T, width, height int) *world.Grid {
	t.Helper()
	flat := make([]tile.Type, width*height)
	for i := range flat {
		flat[i] = tile.Dirt
	}
	g, err := world.FromSnapshot(&world.Snapshot{Width: width, Height: height, Grid: flat})
	require.NoError(t, err)
	return g
}

func newTestSim(t *testing.T, width, height int) *Simulation {
	t.Helper()
	return New(dirtGrid(t, width, height), entropy.NewSource(42))
}

func TestPowerPropagation(t *testing.T) {
	s := newTestSim(t, 16, 16)
	g := s.World

	g.SetTile(0, 0, tile.PowerPlant, world.LayerSurface)
	g.SetTile(1, 0, tile.PowerLine, world.LayerAir)
	g.SetTile(2, 0, tile.ResidentialLvl1, world.LayerSurface)

	// An isolated building elsewhere gets nothing.
	g.SetTile(10, 10, tile.ResidentialLvl1, world.LayerSurface)

	s.UpdatePowerGrid()

	assert.Contains(t, s.Powered, Coord{0, 0})
	assert.Contains(t, s.Powered, Coord{1, 0})
	assert.Contains(t, s.Powered, Coord{2, 0})
	assert.NotContains(t, s.Powered, Coord{10, 10})
}

func TestPowerStopsWithoutConductors(t *testing.T) {
	s := newTestSim(t, 16, 16)
	g := s.World

	g.SetTile(0, 0, tile.PowerPlant, world.LayerSurface)
	// Gap at (1,0); line beyond it stays dark.
	g.SetTile(2, 0, tile.PowerLine, world.LayerAir)

	s.UpdatePowerGrid()

	assert.Contains(t, s.Powered, Coord{0, 0})
	assert.NotContains(t, s.Powered, Coord{2, 0})
}

func TestWaterPropagation(t *testing.T) {
	s := newTestSim(t, 16, 16)
	g := s.World

	// Pump feeds pipes underground, then a building on the surface.
	g.SetTile(5, 5, tile.WaterPump, world.LayerSurface)
	g.SetTile(5, 6, tile.WaterPipe, world.LayerWaterPipes)
	g.SetTile(5, 7, tile.WaterPipe, world.LayerWaterPipes)
	g.SetTile(5, 8, tile.ResidentialLvl1, world.LayerSurface)

	g.SetTile(12, 12, tile.WaterPipe, world.LayerWaterPipes)

	s.UpdateWaterGrid()

	for _, c := range []Coord{{5, 5}, {5, 6}, {5, 7}, {5, 8}} {
		assert.Contains(t, s.Watered, c)
	}
	assert.NotContains(t, s.Watered, Coord{12, 12})
}

func TestSewerDrainage(t *testing.T) {
	s := newTestSim(t, 16, 16)
	g := s.World

	// Edge pipe drains; its connected neighbor drains through it.
	g.SetTile(0, 0, tile.SewerPipe, world.LayerSewerPipes)
	g.SetTile(0, 1, tile.SewerPipe, world.LayerSewerPipes)

	// Interior pipe with no edge connection stays undrained.
	g.SetTile(8, 8, tile.SewerPipe, world.LayerSewerPipes)

	s.UpdateSewerGrid()

	assert.Contains(t, s.Drained, Coord{0, 0})
	assert.Contains(t, s.Drained, Coord{0, 1})
	assert.NotContains(t, s.Drained, Coord{8, 8})
}

func TestPropagationDeterminism(t *testing.T) {
	s := newTestSim(t, 16, 16)
	g := s.World

	g.SetTile(3, 3, tile.PowerPlant, world.LayerSurface)
	g.SetTile(4, 3, tile.PowerLine, world.LayerAir)
	g.SetTile(5, 3, tile.WaterPump, world.LayerSurface)
	g.SetTile(5, 4, tile.WaterPipe, world.LayerWaterPipes)
	g.SetTile(0, 7, tile.SewerPipe, world.LayerSewerPipes)
	g.SetTile(1, 7, tile.SewerPipe, world.LayerSewerPipes)

	s.UpdatePowerGrid()
	s.UpdateWaterGrid()
	s.UpdateSewerGrid()
	powered, watered, drained := s.Powered, s.Watered, s.Drained

	s.UpdatePowerGrid()
	s.UpdateWaterGrid()
	s.UpdateSewerGrid()

	assert.Equal(t, powered, s.Powered)
	assert.Equal(t, watered, s.Watered)
	assert.Equal(t, drained, s.Drained)
}

func TestGrowth(t *testing.T) {
	t.Run("road-connected zone develops", func(t *testing.T) {
		s := newTestSim(t, 8, 8)
		s.World.SetTile(2, 2, tile.Residential, world.LayerSurface)
		s.World.SetTile(2, 3, tile.Road, world.LayerSurface)

		grew := false
		for i := 0; i < 200; i++ {
			s.Tick(1.0)
			if s.World.Surface(2, 2) == tile.ResidentialLvl1 {
				grew = true
				break
			}
		}
		// 10%/tick compounding: odds of 200 straight misses are ~1e-9.
		assert.True(t, grew, "zone never developed in 200 ticks")
	})

	t.Run("disconnected zone never grows", func(t *testing.T) {
		s := newTestSim(t, 8, 8)
		s.World.SetTile(2, 2, tile.Commercial, world.LayerSurface)

		for i := 0; i < 100; i++ {
			s.Tick(1.0)
		}
		assert.Equal(t, tile.Commercial, s.World.Surface(2, 2))
	})
}

func TestTickAccumulation(t *testing.T) {
	s := newTestSim(t, 8, 8)
	require.Equal(t, 1.0, s.TickSeconds)

	s.Tick(0.4)
	assert.Equal(t, 0, s.Day)

	s.Tick(0.6)
	assert.Equal(t, 1, s.Day)

	s.Tick(0.5)
	assert.Equal(t, 1, s.Day)
}

func TestUpdateStats(t *testing.T) {
	s := newTestSim(t, 8, 8)
	s.World.SetTile(1, 1, tile.ResidentialLvl1, world.LayerSurface)
	s.World.SetTile(2, 1, tile.ResidentialLvl1, world.LayerSurface)
	s.World.SetTile(3, 1, tile.CommercialLvl1, world.LayerSurface)

	s.UpdateStats()
	assert.Equal(t, 10, s.Population)
}

func TestLaborExchange(t *testing.T) {
	s := newTestSim(t, 8, 8)
	g := s.World

	// House at (1,1), shop at (4,1), roads between them.
	g.SetTile(1, 1, tile.ResidentialLvl1, world.LayerSurface)
	g.SetTile(2, 1, tile.Road, world.LayerSurface)
	g.SetTile(3, 1, tile.Road, world.LayerSurface)
	g.SetTile(4, 1, tile.CommercialLvl1, world.LayerSurface)

	s.UpdateLaborExchange()

	t.Run("census initializes and immigrates", func(t *testing.T) {
		inst, ok := s.InstanceAt(Coord{1, 1})
		require.True(t, ok)
		assert.Equal(t, 1, inst.Residents)
	})

	t.Run("commute increments road usage along the path", func(t *testing.T) {
		for _, c := range []Coord{{1, 1}, {2, 1}, {3, 1}, {4, 1}} {
			assert.Equal(t, 1, s.RoadUsage[c], "coord %v", c)
		}
	})

	t.Run("usage scales with residents and resets daily", func(t *testing.T) {
		s.UpdateLaborExchange()
		inst, _ := s.InstanceAt(Coord{1, 1})
		assert.Equal(t, 2, inst.Residents)
		assert.Equal(t, 2, s.RoadUsage[Coord{2, 1}])
	})

	t.Run("residents cap at capacity", func(t *testing.T) {
		for i := 0; i < 40; i++ {
			s.UpdateLaborExchange()
		}
		inst, _ := s.InstanceAt(Coord{1, 1})
		assert.Equal(t, 20, inst.Residents)
	})
}

func TestLaborExchangeNoRoute(t *testing.T) {
	s := newTestSim(t, 8, 8)
	g := s.World

	// Seeker and job with no roads at all: the trip is skipped, not an error.
	g.SetTile(1, 1, tile.ResidentialLvl1, world.LayerSurface)
	g.SetTile(6, 6, tile.CommercialLvl1, world.LayerSurface)

	s.UpdateLaborExchange()
	assert.Empty(t, s.RoadUsage)
}

func TestLaborExchangeNearestJobWins(t *testing.T) {
	s := newTestSim(t, 12, 4)
	g := s.World

	g.SetTile(1, 1, tile.ResidentialLvl1, world.LayerSurface)
	g.SetTile(2, 1, tile.Road, world.LayerSurface)
	g.SetTile(3, 1, tile.CommercialLvl1, world.LayerSurface) // near
	for x := 2; x <= 9; x++ {
		g.SetTile(x, 2, tile.Road, world.LayerSurface)
	}
	g.SetTile(10, 2, tile.IndustrialLvl1, world.LayerSurface) // far

	s.UpdateLaborExchange()

	assert.Equal(t, 1, s.RoadUsage[Coord{3, 1}])
	assert.NotContains(t, s.RoadUsage, Coord{10, 2})
}
