// Package persistence provides SQLite-based snapshot storage for the
// simulation: grid layers, per-tile instance counters, and session
// metadata.
package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/voxhall/gridcity/internal/sim"
	"github.com/voxhall/gridcity/internal/tile"
	"github.com/voxhall/gridcity/internal/world"
)

// DB wraps a SQLite connection for simulation state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS layers (
		layer_id INTEGER PRIMARY KEY,
		tiles_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tile_data (
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		residents INTEGER NOT NULL,
		workers INTEGER NOT NULL,
		filled_jobs INTEGER NOT NULL,
		PRIMARY KEY (x, y)
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasWorldState reports whether a saved simulation exists.
func (db *DB) HasWorldState() bool {
	var count int
	err := db.conn.Get(&count, "SELECT COUNT(*) FROM world_meta WHERE key = 'width'")
	return err == nil && count > 0
}

// SaveState writes the complete simulation state (full replace).
func (db *DB) SaveState(s *sim.Simulation) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM layers"); err != nil {
		return err
	}
	snap := s.World.Snapshot()
	for key, tiles := range snap.Layers {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("bad layer key %q: %w", key, err)
		}
		blob, err := json.Marshal(tiles)
		if err != nil {
			return fmt.Errorf("marshal layer %d: %w", id, err)
		}
		if _, err := tx.Exec("INSERT INTO layers (layer_id, tiles_json) VALUES (?, ?)", id, string(blob)); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM tile_data"); err != nil {
		return err
	}
	for c, inst := range s.Instances {
		if _, err := tx.Exec(
			"INSERT INTO tile_data (x, y, residents, workers, filled_jobs) VALUES (?, ?, ?, ?, ?)",
			c.X, c.Y, inst.Residents, inst.Workers, inst.FilledJobs,
		); err != nil {
			return err
		}
	}

	meta := map[string]string{
		"width":      strconv.Itoa(snap.Width),
		"height":     strconv.Itoa(snap.Height),
		"day":        strconv.Itoa(s.Day),
		"session_id": s.Session.String(),
	}
	for key, value := range meta {
		if _, err := tx.Exec(
			"INSERT INTO world_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadGrid restores the layered grid from the saved layers.
func (db *DB) LoadGrid() (*world.Grid, error) {
	width, err := db.metaInt("width")
	if err != nil {
		return nil, err
	}
	height, err := db.metaInt("height")
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Queryx("SELECT layer_id, tiles_json FROM layers")
	if err != nil {
		return nil, fmt.Errorf("query layers: %w", err)
	}
	defer rows.Close()

	snap := &world.Snapshot{
		Width:  width,
		Height: height,
		Layers: make(map[string][]tile.Type),
	}
	for rows.Next() {
		var id int
		var blob string
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("scan layer: %w", err)
		}
		var tiles []tile.Type
		if err := json.Unmarshal([]byte(blob), &tiles); err != nil {
			return nil, fmt.Errorf("unmarshal layer %d: %w", id, err)
		}
		snap.Layers[strconv.Itoa(id)] = tiles
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return world.FromSnapshot(snap)
}

// LoadInstances restores the per-tile counters.
func (db *DB) LoadInstances() (map[sim.Coord]*sim.Instance, error) {
	rows, err := db.conn.Queryx("SELECT x, y, residents, workers, filled_jobs FROM tile_data")
	if err != nil {
		return nil, fmt.Errorf("query tile_data: %w", err)
	}
	defer rows.Close()

	instances := make(map[sim.Coord]*sim.Instance)
	for rows.Next() {
		var c sim.Coord
		var inst sim.Instance
		if err := rows.Scan(&c.X, &c.Y, &inst.Residents, &inst.Workers, &inst.FilledJobs); err != nil {
			return nil, fmt.Errorf("scan tile_data: %w", err)
		}
		instances[c] = &inst
	}
	return instances, rows.Err()
}

// GetMeta returns a metadata value by key.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("meta %q: not found", key)
	}
	return value, err
}

func (db *DB) metaInt(key string) (int, error) {
	raw, err := db.GetMeta(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("meta %q: %w", key, err)
	}
	return v, nil
}
