// Package config holds the simulation configuration: defaults, env
// overrides, and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all driver and simulation settings.
type Config struct {
	Width          int     // map width in tiles
	Height         int     // map height in tiles
	WaterThreshold float64 // per-cell water seeding probability
	Seed           int64   // 0 = time-based
	TickSeconds    float64 // sim time per step
	SnapshotEvery  int     // save every N days
	Port           int     // HTTP API port
	DBPath         string  // SQLite snapshot path
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Width:          64,
		Height:         64,
		WaterThreshold: 0.1,
		Seed:           0,
		TickSeconds:    1.0,
		SnapshotEvery:  10,
		Port:           8080,
		DBPath:         "data/city.db",
	}
}

// FromEnv returns the defaults with CITYSIM_* environment overrides
// applied.
func FromEnv() Config {
	c := Default()
	intVar(&c.Width, "CITYSIM_WIDTH")
	intVar(&c.Height, "CITYSIM_HEIGHT")
	floatVar(&c.WaterThreshold, "CITYSIM_WATER_THRESHOLD")
	int64Var(&c.Seed, "CITYSIM_SEED")
	floatVar(&c.TickSeconds, "CITYSIM_TICK_SECONDS")
	intVar(&c.SnapshotEvery, "CITYSIM_SNAPSHOT_EVERY")
	intVar(&c.Port, "CITYSIM_PORT")
	if v := os.Getenv("CITYSIM_DB_PATH"); v != "" {
		c.DBPath = v
	}
	return c
}

// Validate checks the configuration for values the simulation cannot run
// with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("map dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.WaterThreshold < 0 || c.WaterThreshold > 1 {
		return fmt.Errorf("water threshold must be in [0, 1], got %g", c.WaterThreshold)
	}
	if c.TickSeconds <= 0 {
		return fmt.Errorf("tick seconds must be positive, got %g", c.TickSeconds)
	}
	if c.SnapshotEvery <= 0 {
		return fmt.Errorf("snapshot interval must be positive, got %d", c.SnapshotEvery)
	}
	return nil
}

func intVar(dst *int, key string) {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			*dst = v
		}
	}
}

func int64Var(dst *int64, key string) {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			*dst = v
		}
	}
}

func floatVar(dst *float64, key string) {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			*dst = v
		}
	}
}
