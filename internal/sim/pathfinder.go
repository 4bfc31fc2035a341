// A* routing over the road network. Used for connectivity checks and for
// the daily commute matching in the labor exchange.
package sim

import (
	"container/heap"

	"github.com/voxhall/gridcity/internal/tile"
	"github.com/voxhall/gridcity/internal/world"
)

// Pathfinder searches the road network on the surface layer.
type Pathfinder struct {
	world *world.Grid
}

// NewPathfinder creates a pathfinder over the given grid.
func NewPathfinder(g *world.Grid) *Pathfinder {
	return &Pathfinder{world: g}
}

// FindPath runs A* between two coordinates, traversing only road tiles
// except for the endpoints themselves, which represent buildings adjacent
// to the network. Edge cost is 1/speed of the destination tile (speed 1.0
// when it carries no road stats), with a Manhattan heuristic — admissible
// as long as speed limits stay >= 1. The returned path includes both
// endpoints. A nil result means no route exists, which is a normal
// outcome, not an error.
func (p *Pathfinder) FindPath(start, end Coord) []Coord {
	if start == end {
		return []Coord{start}
	}

	open := &openSet{}
	heap.Init(open)
	open.push(start, 0)

	cameFrom := make(map[Coord]Coord)
	gScore := map[Coord]float64{start: 0}

	for open.Len() > 0 {
		current := open.pop()
		if current == end {
			return reconstructPath(cameFrom, current)
		}

		for _, n := range neighbors4(current.X, current.Y) {
			if !p.world.InBounds(n.X, n.Y) {
				continue
			}

			t := p.world.Surface(n.X, n.Y)
			if t != tile.Road && n != start && n != end {
				continue
			}

			speed := 1.0
			if d, ok := tile.Lookup(t); ok && d.Road != nil {
				speed = d.Road.SpeedLimit
			}
			tentative := gScore[current] + 1.0/speed

			if prev, seen := gScore[n]; !seen || tentative < prev {
				cameFrom[n] = current
				gScore[n] = tentative
				open.push(n, tentative+manhattan(n, end))
			}
		}
	}

	return nil
}

func manhattan(a, b Coord) float64 {
	return float64(absInt(a.X-b.X) + absInt(a.Y-b.Y))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func reconstructPath(cameFrom map[Coord]Coord, current Coord) []Coord {
	path := []Coord{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
		path = append(path, current)
	}
	// Reverse into start-to-end order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// openSet is a priority queue of frontier coordinates ordered by f-score.
// Equal scores fall back to insertion order.
type openSet struct {
	items []openItem
	seq   int
}

type openItem struct {
	coord Coord
	f     float64
	seq   int
}

func (o *openSet) Len() int { return len(o.items) }

func (o *openSet) Less(i, j int) bool {
	if o.items[i].f != o.items[j].f {
		return o.items[i].f < o.items[j].f
	}
	return o.items[i].seq < o.items[j].seq
}

func (o *openSet) Swap(i, j int) { o.items[i], o.items[j] = o.items[j], o.items[i] }

func (o *openSet) Push(x any) { o.items = append(o.items, x.(openItem)) }

func (o *openSet) Pop() any {
	old := o.items
	n := len(old)
	item := old[n-1]
	o.items = old[:n-1]
	return item
}

func (o *openSet) push(c Coord, f float64) {
	heap.Push(o, openItem{coord: c, f: f, seq: o.seq})
	o.seq++
}

func (o *openSet) pop() Coord {
	return heap.Pop(o).(openItem).coord
}
