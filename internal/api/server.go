// Package api serves generated maps over HTTP. Maps are generated on demand
// from a seed and the server's base config; identical seeds give identical maps.
// When a run ledger is attached, generations can be recorded and listed.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/talgya/tileworld/internal/entropy"
	"github.com/talgya/tileworld/internal/persistence"
	"github.com/talgya/tileworld/internal/world"
)

const (
	mapCacheSize     = 16
	defaultRunsLimit = 20
	maxRunsLimit     = 100
	defaultMapPerMin = 60
)

// Server serves generated maps over HTTP.
type Server struct {
	Config  world.GenConfig // Base config; the seed comes from the request
	DB      *persistence.DB // Optional run ledger
	Entropy *entropy.Client // Optional seed source for /map/random
	Port    int
	MapRate int // Generations per minute per IP. 0 = default.

	cacheMu sync.Mutex
	cache   map[int64]*world.Map
	order   []int64
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	rate := s.MapRate
	if rate <= 0 {
		rate = defaultMapPerMin
	}
	mapLimiter := NewRateLimiter(rate, time.Minute)

	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]string{"status": "ok"})
		})
		r.Get("/config", s.handleConfig)

		r.Group(func(r chi.Router) {
			r.Use(mapLimiter.Middleware)
			r.Get("/map/{seed}", s.handleMap)
			r.Get("/map/{seed}/{x}/{y}", s.handleCell)
		})

		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
	})

	return r
}

// Start begins serving the HTTP API in a goroutine. The returned server can
// be shut down by the caller.
func (s *Server) Start() *http.Server {
	addr := fmt.Sprintf(":%d", s.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", addr, "ledger", s.DB != nil, "random_org", s.Entropy.Enabled())

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
	return srv
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Config)
}

// handleMap returns every layer of the map for a seed as rows of tile IDs.
// GET /api/v1/map/{seed}[?layers=water,shore&record=true]; seed "random" picks a fresh one.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	seed, err := s.parseSeed(chi.URLParam(r, "seed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	record := r.URL.Query().Get("record") == "true"
	if record && s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "run ledger disabled")
		return
	}

	m, err := s.mapFor(seed)
	if err != nil {
		writeGenerationError(w, err)
		return
	}

	selected := world.AllLayers[:]
	if v := r.URL.Query().Get("layers"); v != "" {
		selected = nil
		for _, name := range strings.Split(v, ",") {
			l, ok := world.ParseLayer(strings.TrimSpace(name))
			if !ok {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown layer %q", name))
				return
			}
			selected = append(selected, l)
		}
	}

	layers := make(map[string][][]world.TileID, len(selected))
	for _, l := range selected {
		layers[l.String()] = m.Layers.Rows(l)
	}

	resp := map[string]any{
		"width":  m.Width,
		"height": m.Height,
		"seed":   m.Seed,
		"report": m.Report,
		"layers": layers,
	}

	if record {
		run, err := s.DB.RecordRun(m, s.Config)
		if err != nil {
			slog.Error("record run failed", "seed", m.Seed, "error", err)
		} else {
			resp["run_id"] = run.ID
		}
	}

	writeJSON(w, resp)
}

// handleCell returns the tiles at one coordinate.
// GET /api/v1/map/{seed}/{x}/{y}
func (s *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	seed, err := s.parseSeed(chi.URLParam(r, "seed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid x coordinate")
		return
	}
	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid y coordinate")
		return
	}

	m, err := s.mapFor(seed)
	if err != nil {
		writeGenerationError(w, err)
		return
	}

	cell, ok := m.Cell(world.Coord{X: x, Y: y})
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("cell (%d,%d) outside %dx%d map", x, y, m.Width, m.Height))
		return
	}

	var placement *world.Placement
	for _, p := range m.Report.Placements() {
		if p.Contains(cell.Coord) {
			placement = &p
			break
		}
	}

	writeJSON(w, map[string]any{
		"seed":      m.Seed,
		"cell":      cell,
		"placement": placement,
	})
}

// handleRuns lists recent runs from the ledger.
// GET /api/v1/runs[?limit=N]
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "run ledger disabled")
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := s.DB.RecentRuns(limit)
	if err != nil {
		slog.Error("list runs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	type runEntry struct {
		persistence.Run
		Recorded string `json:"recorded"`
	}
	entries := make([]runEntry, 0, len(runs))
	for _, run := range runs {
		entries = append(entries, runEntry{Run: run, Recorded: humanize.Time(run.Created())})
	}

	writeJSON(w, map[string]any{"runs": entries})
}

// handleRun returns one ledger entry with its tile counts.
// GET /api/v1/runs/{id}
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "run ledger disabled")
		return
	}

	id := chi.URLParam(r, "id")
	run, err := s.DB.GetRun(id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		slog.Error("get run failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}

	counts, err := s.DB.TileCounts(id)
	if err != nil {
		slog.Error("get tile counts failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load tile counts")
		return
	}

	writeJSON(w, map[string]any{
		"run":         run,
		"recorded":    humanize.Time(run.Created()),
		"tile_counts": counts,
	})
}

func (s *Server) parseSeed(raw string) (int64, error) {
	if raw == "random" {
		return entropy.Resolve(s.Entropy, 0), nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seed == 0 {
		return 0, fmt.Errorf("invalid seed %q", raw)
	}
	return seed, nil
}

// mapFor returns the map for seed, generating it on a cache miss.
func (s *Server) mapFor(seed int64) (*world.Map, error) {
	s.cacheMu.Lock()
	if m, ok := s.cache[seed]; ok {
		s.cacheMu.Unlock()
		return m, nil
	}
	s.cacheMu.Unlock()

	cfg := s.Config
	cfg.Seed = seed
	start := time.Now()
	m, err := world.Generate(cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("map generated", "seed", seed, "elapsed", time.Since(start))

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cache == nil {
		s.cache = make(map[int64]*world.Map)
	}
	if _, ok := s.cache[seed]; !ok {
		s.cache[seed] = m
		s.order = append(s.order, seed)
		if len(s.order) > mapCacheSize {
			delete(s.cache, s.order[0])
			s.order = s.order[1:]
		}
	}
	return s.cache[seed], nil
}

func writeGenerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, world.ErrGenerationStalled):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("map generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
