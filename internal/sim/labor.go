// Labor exchange: the once-per-day census, seeker-to-job matching, and
// commute routing that produces the road usage counters.
package sim

import (
	"log/slog"

	"github.com/voxhall/gridcity/internal/tile"
)

type seeker struct {
	at    Coord
	count int
}

type employer struct {
	at   Coord
	open int
}

// UpdateLaborExchange runs the daily labor cycle. Residents immigrate
// toward capacity at one per day; every tile with residents seeks the
// Manhattan-nearest tile with open job slots (linear scan, first-scanned
// wins ties) and commutes there over the road network. Each coordinate on
// a successful route accumulates the seeker's resident count in RoadUsage.
// Trips with no route are skipped, to be retried next day.
func (s *Simulation) UpdateLaborExchange() {
	s.RoadUsage = make(map[Coord]int)

	var seekers []seeker
	var employers []employer

	// Census and immigration, in scan order.
	for x := 0; x < s.World.Width; x++ {
		for y := 0; y < s.World.Height; y++ {
			d, ok := tile.Lookup(s.World.Surface(x, y))
			if !ok {
				continue
			}
			c := Coord{x, y}

			if d.Population != nil {
				inst := s.instance(c)
				if inst.Residents < d.Population.Capacity {
					inst.Residents++
				}
				if inst.Residents > 0 {
					seekers = append(seekers, seeker{at: c, count: inst.Residents})
				}
			}

			if d.Jobs != nil {
				inst := s.instance(c)
				if open := d.Jobs.Capacity - inst.FilledJobs; open > 0 {
					employers = append(employers, employer{at: c, open: open})
				}
			}
		}
	}

	routed := 0
	for _, sk := range seekers {
		var best *employer
		minDist := -1
		for i := range employers {
			dist := absInt(sk.at.X-employers[i].at.X) + absInt(sk.at.Y-employers[i].at.Y)
			if minDist < 0 || dist < minDist {
				minDist = dist
				best = &employers[i]
			}
		}
		if best == nil {
			continue
		}

		path := s.pathfinder.FindPath(sk.at, best.at)
		if path == nil {
			continue
		}
		for _, c := range path {
			s.RoadUsage[c] += sk.count
		}
		routed++
	}

	if len(seekers) > 0 {
		slog.Debug("labor exchange complete",
			"day", s.Day,
			"seekers", len(seekers),
			"employers", len(employers),
			"routed", routed,
		)
	}
}

// instance returns the per-tile counters for a coordinate, creating them
// on first use. Entries are never removed during a session.
func (s *Simulation) instance(c Coord) *Instance {
	inst, ok := s.Instances[c]
	if !ok {
		inst = &Instance{}
		s.Instances[c] = inst
	}
	return inst
}
