// Command mapgen generates a tile map, logs a summary, records the run in
// the ledger, and optionally serves maps over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/maps"

	"github.com/talgya/tileworld/internal/api"
	"github.com/talgya/tileworld/internal/config"
	"github.com/talgya/tileworld/internal/entropy"
	"github.com/talgya/tileworld/internal/persistence"
	"github.com/talgya/tileworld/internal/world"
)

func main() {
	slog.SetDefault(newLogger(os.Stdout, config.EnvOrDefault("MAPGEN_LOG_LEVEL", "info")))

	cfgPath := os.Getenv("MAPGEN_CONFIG")
	dbPath := config.EnvOrDefault("MAPGEN_DB", "data/mapgen.db")
	apiPort := config.EnvIntOrDefault("MAPGEN_PORT", 0)

	// ── Config ────────────────────────────────────────────────────────
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load config", "path", cfgPath, "error", err)
		os.Exit(1)
	}

	seeds := entropy.NewClient(os.Getenv("RANDOM_ORG_API_KEY"))
	if seeds != nil {
		slog.Info("random.org seeding enabled")
	}
	runCfg := cfg
	runCfg.Seed = entropy.Resolve(seeds, cfg.Seed)

	slog.Info("generating map",
		"width", runCfg.Width,
		"height", runCfg.Height,
		"seed", runCfg.Seed,
		"rivers", runCfg.Rivers,
		"forests", runCfg.Forests,
		"decoration_types", len(runCfg.Decorations),
	)

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	if dbPath != "off" {
		os.MkdirAll(filepath.Dir(dbPath), 0755)
		db, err = persistence.Open(dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database opened", "path", dbPath)
	}

	// ── Generate ──────────────────────────────────────────────────────
	start := time.Now()
	m, err := world.Generate(runCfg)
	if err != nil {
		slog.Error("map generation failed", "seed", runCfg.Seed, "error", err)
		os.Exit(1)
	}
	logSummary(m, time.Since(start))

	if db != nil {
		run, err := db.RecordRun(m, runCfg)
		if err != nil {
			slog.Error("failed to record run", "error", err)
		} else if err := db.SaveMeta("last_run", run.ID); err != nil {
			slog.Error("failed to save meta", "error", err)
		}
	}

	fmt.Printf("\nGenerated a %dx%d map from seed %d: %s water cells, %s trees in %d forests, %s decorations.\n",
		m.Width, m.Height, m.Seed,
		humanize.Comma(int64(m.Layers.Painted(world.LayerWater))),
		humanize.Comma(int64(m.Report.TreeCount())), len(m.Report.Forests),
		humanize.Comma(int64(m.Report.DecorationCount())),
	)

	if apiPort == 0 {
		return
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Config:  cfg,
		DB:      db,
		Entropy: seeds,
		Port:    apiPort,
	}
	srv := apiServer.Start()
	fmt.Printf("API: http://localhost:%d/api/v1/map/%s\n", apiPort, strconv.FormatInt(m.Seed, 10))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP shutdown failed", "error", err)
	}
	fmt.Println("Map server stopped.")
}

// logSummary logs what each stage produced and per-layer tile counts.
func logSummary(m *world.Map, elapsed time.Duration) {
	slog.Info("map generated",
		"seed", m.Seed,
		"elapsed", elapsed,
		"occupied", humanize.Comma(int64(m.Grid.Count())),
		"shore_tiles", humanize.Comma(int64(m.Report.ShoreTiles)),
		"ground_tiles", humanize.Comma(int64(m.Report.GroundTiles)),
	)

	for _, r := range m.Report.Rivers {
		slog.Info("river", "start", r.Start.String(), "end", r.End.String(), "steps", r.Steps())
	}
	for _, f := range m.Report.Forests {
		slog.Info("forest",
			"index", f.Index,
			"start", f.Start.String(),
			"trees", len(f.Trees),
			"failed_attempts", f.Attempts,
		)
	}
	for _, d := range m.Report.Decorations {
		if d.Skipped > 0 {
			slog.Warn("decoration spawns skipped", "tile", d.Tile, "placed", len(d.Placed), "requested", d.Requested)
		}
	}

	tileCounts := m.TileCounts()
	for _, layer := range world.AllLayers {
		counts := tileCounts[layer]
		tiles := maps.Keys(counts)
		slices.Sort(tiles)
		for _, tile := range tiles {
			slog.Debug("tiles", "layer", layer.String(), "tile", tile, "count", humanize.Comma(int64(counts[tile])))
		}
	}
}
