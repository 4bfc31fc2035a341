// Package api exposes the read-only collaborator surface over HTTP:
// status, map layers, per-tile detail, and the service overlays a
// rendering collaborator draws from. The core provides no locking, so the
// server serializes every read against the tick loop through the mutex
// the driver hands it.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/voxhall/gridcity/internal/sim"
	"github.com/voxhall/gridcity/internal/tile"
	"github.com/voxhall/gridcity/internal/world"
)

// Server serves the simulation state over HTTP.
type Server struct {
	Sim  *sim.Simulation
	Port int

	// Mu is owned by the driver and held across each tick; handlers take
	// it for the duration of a read so responses are tick-boundary
	// snapshots.
	Mu *sync.Mutex

	hub *hub
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.hub = newHub()
	go s.hub.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/map", s.handleMap)
	mux.HandleFunc("/api/v1/overlays", s.handleOverlays)
	mux.HandleFunc("/api/v1/tile/", s.handleTile)
	mux.HandleFunc("/api/v1/stream", s.handleStream)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	writeJSON(w, map[string]any{
		"session":    s.Sim.Session.String(),
		"day":        s.Sim.Day,
		"population": s.Sim.Population,
		"width":      s.Sim.World.Width,
		"height":     s.Sim.World.Height,
		"water":      s.Sim.World.CountSurface(tile.Water),
		"roads":      s.Sim.World.CountSurface(tile.Road),
	})
}

// handleMap returns one layer as a flat tile-id list (?layer=N, default
// surface).
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	layer := world.LayerSurface
	if raw := r.URL.Query().Get("layer"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "bad layer", http.StatusBadRequest)
			return
		}
		layer = v
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()

	g := s.Sim.World
	tiles := make([]tile.Type, 0, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			tiles = append(tiles, g.Tile(x, y, layer))
		}
	}
	writeJSON(w, map[string]any{
		"layer":  layer,
		"width":  g.Width,
		"height": g.Height,
		"tiles":  tiles,
	})
}

func (s *Server) handleOverlays(w http.ResponseWriter, r *http.Request) {
	s.Mu.Lock()
	payload := s.overlayPayload()
	s.Mu.Unlock()

	writeJSON(w, payload)
}

// handleTile returns everything a tooltip needs about one coordinate:
// the tile on every defined layer, capability metadata, service flags,
// and instance counters.
func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/v1/tile/"), "/")
	if len(parts) != 2 {
		http.Error(w, "want /api/v1/tile/{x}/{y}", http.StatusBadRequest)
		return
	}
	x, errX := strconv.Atoi(parts[0])
	y, errY := strconv.Atoi(parts[1])
	if errX != nil || errY != nil {
		http.Error(w, "bad coordinates", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()

	g := s.Sim.World
	c := sim.Coord{X: x, Y: y}
	surface := g.Surface(x, y)

	layers := make(map[string]tile.Type, 4)
	for _, id := range g.Layers() {
		layers[strconv.Itoa(id)] = g.Tile(x, y, id)
	}

	detail := map[string]any{
		"x":         x,
		"y":         y,
		"layers":    layers,
		"name":      tile.Name(surface),
		"cost":      tile.BuildCost(surface),
		"color":     tile.DisplayColor(surface),
		"height":    tile.Height(surface),
		"elevation": g.Elevation(x, y),
		"powered":   contains(s.Sim.Powered, c),
		"watered":   contains(s.Sim.Watered, c),
		"drained":   contains(s.Sim.Drained, c),
	}
	if inst, ok := s.Sim.InstanceAt(c); ok {
		detail["instance"] = inst
	}
	if usage, ok := s.Sim.RoadUsage[c]; ok {
		detail["road_usage"] = usage
	}
	writeJSON(w, detail)
}

// overlayPayload builds the per-day overlay snapshot. Caller holds Mu.
func (s *Server) overlayPayload() map[string]any {
	usage := make([]map[string]int, 0, len(s.Sim.RoadUsage))
	for c, trips := range s.Sim.RoadUsage {
		usage = append(usage, map[string]int{"x": c.X, "y": c.Y, "trips": trips})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i]["x"] != usage[j]["x"] {
			return usage[i]["x"] < usage[j]["x"]
		}
		return usage[i]["y"] < usage[j]["y"]
	})

	return map[string]any{
		"day":        s.Sim.Day,
		"population": s.Sim.Population,
		"powered":    sortedCoords(s.Sim.Powered),
		"watered":    sortedCoords(s.Sim.Watered),
		"drained":    sortedCoords(s.Sim.Drained),
		"road_usage": usage,
	}
}

func sortedCoords(set map[sim.Coord]struct{}) []sim.Coord {
	out := make([]sim.Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

func contains(set map[sim.Coord]struct{}, c sim.Coord) bool {
	_, ok := set[c]
	return ok
}

// corsMiddleware allows browser-based overlay clients during development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
