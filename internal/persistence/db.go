// Package persistence provides SQLite-based storage for generated road
// networks: the settlements, every committed road tile, and run metadata.
package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/waymaker/internal/settlement"
	"github.com/talgya/waymaker/internal/world"
)

// DB wraps a SQLite connection for network snapshot storage.
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
	CREATE TABLE IF NOT EXISTS settlements (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		population INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS road_tiles (
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		bits INTEGER NOT NULL,
		owner INTEGER NOT NULL,
		crossing INTEGER NOT NULL,
		PRIMARY KEY (x, y)
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_road_tiles_owner ON road_tiles(owner);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunInfo describes one generation run for the metadata table.
type RunInfo struct {
	Seed   int64
	Width  int
	Height int
}

// SaveNetwork writes the settlements and all road tiles of the map as a
// full replacement snapshot, stamped with a fresh run ID.
func (db *DB) SaveNetwork(info RunInfo, reg *settlement.Registry, m *world.Map) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM settlements"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM road_tiles"); err != nil {
		return err
	}

	for _, s := range reg.All() {
		_, err := tx.Exec(
			"INSERT INTO settlements (id, name, x, y, population) VALUES (?, ?, ?, ?, ?)",
			uint64(s.ID), s.Name, s.Location.X, s.Location.Y, s.Population,
		)
		if err != nil {
			return fmt.Errorf("insert settlement %s: %w", s.Name, err)
		}
	}

	var tileErr error
	m.ForEachRoad(func(rt world.RoadTile) {
		if tileErr != nil {
			return
		}
		crossing := 0
		if rt.Crossing {
			crossing = 1
		}
		_, tileErr = tx.Exec(
			"INSERT INTO road_tiles (x, y, bits, owner, crossing) VALUES (?, ?, ?, ?, ?)",
			rt.Coord.X, rt.Coord.Y, uint8(rt.Bits), rt.Owner, crossing,
		)
	})
	if tileErr != nil {
		return fmt.Errorf("insert road tile: %w", tileErr)
	}

	meta := map[string]string{
		"run_id":       uuid.NewString(),
		"seed":         fmt.Sprintf("%d", info.Seed),
		"map_size":     fmt.Sprintf("%dx%d", info.Width, info.Height),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		_, err := tx.Exec(
			"INSERT INTO run_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			k, v,
		)
		if err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}

	return tx.Commit()
}

// RoadTileRow is one persisted road tile.
type RoadTileRow struct {
	X        int    `db:"x"`
	Y        int    `db:"y"`
	Bits     uint8  `db:"bits"`
	Owner    uint64 `db:"owner"`
	Crossing bool   `db:"crossing"`
}

// LoadRoadTiles returns all persisted road tiles in row-major order.
func (db *DB) LoadRoadTiles() ([]RoadTileRow, error) {
	var rows []RoadTileRow
	err := db.conn.Select(&rows, "SELECT x, y, bits, owner, crossing FROM road_tiles ORDER BY y, x")
	if err != nil {
		return nil, fmt.Errorf("load road tiles: %w", err)
	}
	return rows, nil
}

// LoadSettlements returns all persisted settlements.
func (db *DB) LoadSettlements() ([]*settlement.Settlement, error) {
	var rows []struct {
		ID         uint64 `db:"id"`
		Name       string `db:"name"`
		X          int    `db:"x"`
		Y          int    `db:"y"`
		Population uint32 `db:"population"`
	}
	err := db.conn.Select(&rows, "SELECT id, name, x, y, population FROM settlements ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("load settlements: %w", err)
	}

	out := make([]*settlement.Settlement, 0, len(rows))
	for _, r := range rows {
		out = append(out, &settlement.Settlement{
			ID:         settlement.ID(r.ID),
			Name:       r.Name,
			Location:   world.TileCoord{X: r.X, Y: r.Y},
			Population: r.Population,
		})
	}
	return out, nil
}

// GetMeta returns a run metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	if err != nil {
		return "", fmt.Errorf("get meta %s: %w", key, err)
	}
	return value, nil
}
