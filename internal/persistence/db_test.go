package persistence

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/talgya/tileworld/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordRun(t *testing.T) {
	db := openTestDB(t)

	cfg := world.SmallTestConfig()
	m, err := world.Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	run, err := db.RecordRun(m, cfg)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if run.ID == "" {
		t.Fatal("run has no ID")
	}

	got, err := db.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Seed != m.Seed || got.Width != m.Width || got.Height != m.Height {
		t.Errorf("stored run = %+v, want seed %d size %dx%d", got, m.Seed, m.Width, m.Height)
	}
	if got.Trees != m.Report.TreeCount() || got.Decorations != m.Report.DecorationCount() {
		t.Errorf("stored trees/decorations = %d/%d, want %d/%d",
			got.Trees, got.Decorations, m.Report.TreeCount(), m.Report.DecorationCount())
	}
	if got.Occupied != m.Grid.Count() {
		t.Errorf("stored occupied = %d, want %d", got.Occupied, m.Grid.Count())
	}

	stored, err := got.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if stored.Seed != m.Seed || stored.Width != cfg.Width || len(stored.GroundPalette) != len(cfg.GroundPalette) {
		t.Errorf("stored config = %+v", stored)
	}

	counts, err := db.TileCounts(run.ID)
	if err != nil {
		t.Fatalf("TileCounts: %v", err)
	}
	ground := 0
	for _, c := range counts {
		if c.Layer == world.LayerGround.String() {
			ground += c.Count
		}
	}
	if ground != m.Report.GroundTiles {
		t.Errorf("ground counts sum to %d, want %d", ground, m.Report.GroundTiles)
	}
	for i := 1; i < len(counts); i++ {
		a, b := counts[i-1], counts[i]
		if a.Layer > b.Layer || (a.Layer == b.Layer && a.Tile >= b.Tile) {
			t.Errorf("counts[%d] = %s/%s sorts after counts[%d] = %s/%s", i-1, a.Layer, a.Tile, i, b.Layer, b.Tile)
		}
	}
}

func TestRecordedRunReproduces(t *testing.T) {
	db := openTestDB(t)

	cfg := world.SmallTestConfig()
	cfg.Seed = 0
	m, err := world.Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	run, err := db.RecordRun(m, cfg)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	replayCfg, err := run.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	replay, err := world.Generate(replayCfg)
	if err != nil {
		t.Fatalf("Generate replay: %v", err)
	}
	if replay.Grid.Count() != m.Grid.Count() || replay.Report.TreeCount() != m.Report.TreeCount() {
		t.Errorf("replay differs: occupied %d vs %d, trees %d vs %d",
			replay.Grid.Count(), m.Grid.Count(), replay.Report.TreeCount(), m.Report.TreeCount())
	}
}

func TestRecentRuns(t *testing.T) {
	db := openTestDB(t)

	cfg := world.SmallTestConfig()
	var ids []string
	for seed := int64(1); seed <= 3; seed++ {
		cfg.Seed = seed
		m, err := world.Generate(cfg)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		run, err := db.RecordRun(m, cfg)
		if err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
		ids = append(ids, run.ID)
	}

	runs, err := db.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Errorf("runs = [%s %s], want newest first [%s %s]", runs[0].ID, runs[1].ID, ids[2], ids[1])
	}
}

func TestGetRunMissing(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.GetRun("nope"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetRun missing: err = %v, want sql.ErrNoRows", err)
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("last_run", "a"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	if err := db.SaveMeta("last_run", "b"); err != nil {
		t.Fatalf("SaveMeta overwrite: %v", err)
	}
	got, err := db.GetMeta("last_run")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if got != "b" {
		t.Errorf("GetMeta = %q, want b", got)
	}
}
