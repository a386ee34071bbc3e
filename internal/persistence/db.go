// Package persistence records generation runs in SQLite: one row per run
// with its seed, size and placement totals, plus per-layer tile counts.
// Generated maps themselves are not stored; a run is reproduced from its
// seed and config.
package persistence

import (
	"cmp"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/tileworld/internal/world"
)

// DB wraps a SQLite connection for the run ledger.
type DB struct {
	conn *sqlx.DB
}

// Run is one ledger row.
type Run struct {
	ID          string `db:"id" json:"id"`
	Seed        int64  `db:"seed" json:"seed"`
	Width       int    `db:"width" json:"width"`
	Height      int    `db:"height" json:"height"`
	Rivers      int    `db:"rivers" json:"rivers"`
	Forests     int    `db:"forests" json:"forests"`
	Occupied    int    `db:"occupied" json:"occupied"`
	ShoreTiles  int    `db:"shore_tiles" json:"shore_tiles"`
	GroundTiles int    `db:"ground_tiles" json:"ground_tiles"`
	Trees       int    `db:"trees" json:"trees"`
	Decorations int    `db:"decorations" json:"decorations"`
	ConfigJSON  string `db:"config_json" json:"-"`
	CreatedUnix int64  `db:"created_at" json:"created_at"`
}

// Created returns the time the run was recorded.
func (r Run) Created() time.Time {
	return time.Unix(r.CreatedUnix, 0)
}

// Config decodes the generation config the run used.
func (r Run) Config() (world.GenConfig, error) {
	var cfg world.GenConfig
	if err := json.Unmarshal([]byte(r.ConfigJSON), &cfg); err != nil {
		return cfg, fmt.Errorf("decode config of run %s: %w", r.ID, err)
	}
	return cfg, nil
}

// TileCount is the number of cells holding one tile on one layer.
type TileCount struct {
	RunID string `db:"run_id" json:"-"`
	Layer string `db:"layer" json:"layer"`
	Tile  string `db:"tile" json:"tile"`
	Count int    `db:"count" json:"count"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
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
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		rivers INTEGER NOT NULL,
		forests INTEGER NOT NULL,
		occupied INTEGER NOT NULL,
		shore_tiles INTEGER NOT NULL,
		ground_tiles INTEGER NOT NULL,
		trees INTEGER NOT NULL,
		decorations INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tile_counts (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		layer TEXT NOT NULL,
		tile TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (run_id, layer, tile)
	);

	CREATE TABLE IF NOT EXISTS ledger_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordRun stores a summary of a generated map and its config.
func (db *DB) RecordRun(m *world.Map, cfg world.GenConfig) (Run, error) {
	cfg.Seed = m.Seed
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return Run{}, fmt.Errorf("encode config: %w", err)
	}

	run := Run{
		ID:          uuid.NewString(),
		Seed:        m.Seed,
		Width:       m.Width,
		Height:      m.Height,
		Rivers:      len(m.Report.Rivers),
		Forests:     len(m.Report.Forests),
		Occupied:    m.Grid.Count(),
		ShoreTiles:  m.Report.ShoreTiles,
		GroundTiles: m.Report.GroundTiles,
		Trees:       m.Report.TreeCount(),
		Decorations: m.Report.DecorationCount(),
		ConfigJSON:  string(cfgJSON),
		CreatedUnix: time.Now().Unix(),
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return Run{}, err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO runs
		(id, seed, width, height, rivers, forests, occupied, shore_tiles,
		 ground_tiles, trees, decorations, config_json, created_at)
		VALUES (:id, :seed, :width, :height, :rivers, :forests, :occupied, :shore_tiles,
		 :ground_tiles, :trees, :decorations, :config_json, :created_at)`, run)
	if err != nil {
		return Run{}, fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Preparex("INSERT INTO tile_counts (run_id, layer, tile, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return Run{}, err
	}
	defer stmt.Close()

	for layer, counts := range m.TileCounts() {
		for tile, n := range counts {
			if _, err := stmt.Exec(run.ID, layer.String(), string(tile), n); err != nil {
				return Run{}, fmt.Errorf("insert tile count %s/%s: %w", layer, tile, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, err
	}

	slog.Info("run recorded", "id", run.ID, "seed", run.Seed, "trees", run.Trees, "decorations", run.Decorations)
	return run, nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// GetRun returns one run by ID. A missing run yields sql.ErrNoRows.
func (db *DB) GetRun(id string) (Run, error) {
	var run Run
	err := db.conn.Get(&run, "SELECT * FROM runs WHERE id = ?", id)
	return run, err
}

// TileCounts returns the per-layer tile counts for a run, ordered by layer then tile.
func (db *DB) TileCounts(runID string) ([]TileCount, error) {
	var counts []TileCount
	err := db.conn.Select(&counts,
		"SELECT run_id, layer, tile, count FROM tile_counts WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(counts, func(a, b TileCount) int {
		return cmp.Or(cmp.Compare(a.Layer, b.Layer), cmp.Compare(a.Tile, b.Tile))
	})
	return counts, nil
}

// SaveMeta stores a key-value pair in ledger metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO ledger_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM ledger_meta WHERE key = ?", key)
	return value, err
}
