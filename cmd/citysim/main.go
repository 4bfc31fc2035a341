// Command citysim runs the grid city simulation and serves its state to
// rendering and tooling collaborators.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/voxhall/gridcity/internal/api"
	"github.com/voxhall/gridcity/internal/config"
	"github.com/voxhall/gridcity/internal/entropy"
	"github.com/voxhall/gridcity/internal/persistence"
	"github.com/voxhall/gridcity/internal/sim"
	"github.com/voxhall/gridcity/internal/tile"
	"github.com/voxhall/gridcity/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	src := entropy.NewSource(cfg.Seed)
	slog.Info("citysim starting",
		"map", humanize.Comma(int64(cfg.Width*cfg.Height))+" tiles",
		"seed", src.Seed(),
	)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Load or Generate World State ─────────────────────────────────
	var city *sim.Simulation

	if db.HasWorldState() {
		slog.Info("found saved world state, loading...")

		grid, err := db.LoadGrid()
		if err != nil {
			slog.Error("failed to load grid", "error", err)
			os.Exit(1)
		}
		grid.RegenerateElevation(src.Int63())

		instances, err := db.LoadInstances()
		if err != nil {
			slog.Error("failed to load tile data", "error", err)
			os.Exit(1)
		}

		city = sim.New(grid, src)
		city.Instances = instances
		if raw, err := db.GetMeta("day"); err == nil {
			if d, err := strconv.Atoi(raw); err == nil {
				city.Day = d
			}
		}
		if raw, err := db.GetMeta("session_id"); err == nil {
			if id, err := uuid.Parse(raw); err == nil {
				city.Session = id
			}
		}
		city.UpdateStats()

		slog.Info("world state restored",
			"day", city.Day,
			"session", city.Session,
			"population", city.Population,
		)
	} else {
		slog.Info("generating terrain...")
		grid := world.NewGrid(cfg.Width, cfg.Height, cfg.WaterThreshold, src)
		city = sim.New(grid, src)

		slog.Info("terrain generated",
			"water", grid.CountSurface(tile.Water),
			"dirt", grid.CountSurface(tile.Dirt),
			"session", city.Session,
		)
	}
	city.TickSeconds = cfg.TickSeconds

	// ── HTTP API ─────────────────────────────────────────────────────
	var mu sync.Mutex
	server := &api.Server{Sim: city, Port: cfg.Port, Mu: &mu}
	server.Start()

	// ── Main Loop ────────────────────────────────────────────────────
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	save := func() {
		mu.Lock()
		err := db.SaveState(city)
		mu.Unlock()
		if err != nil {
			slog.Error("snapshot failed", "error", err)
			return
		}
		slog.Info("snapshot saved",
			"day", city.Day,
			"population", humanize.Comma(int64(city.Population)),
		)
	}

	last := time.Now()
	for {
		select {
		case <-sigs:
			slog.Info("shutting down, saving final state")
			save()
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			mu.Lock()
			before := city.Day
			city.Tick(dt)
			day := city.Day
			mu.Unlock()
			stepped := day != before

			if stepped {
				server.BroadcastOverlays()
			}
			if stepped && day%cfg.SnapshotEvery == 0 {
				save()
			}
		}
	}
}
