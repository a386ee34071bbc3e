// Package config loads generation settings: a JSON tile config layered over
// world.DefaultGenConfig, then MAPGEN_* environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/talgya/tileworld/internal/world"
)

// Load reads the JSON config at path over the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (world.GenConfig, error) {
	cfg := world.DefaultGenConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides size, seed and counts from the environment.
func ApplyEnv(cfg *world.GenConfig) error {
	overrides := []struct {
		key string
		dst *int
	}{
		{"MAPGEN_WIDTH", &cfg.Width},
		{"MAPGEN_HEIGHT", &cfg.Height},
		{"MAPGEN_RIVERS", &cfg.Rivers},
		{"MAPGEN_FORESTS", &cfg.Forests},
	}
	for _, o := range overrides {
		v := os.Getenv(o.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", o.key, err)
		}
		*o.dst = n
	}

	if v := os.Getenv("MAPGEN_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse MAPGEN_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	return nil
}

// EnvOrDefault returns the environment value for key, or def if unset.
func EnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvIntOrDefault returns the environment value for key as an int, or def
// if unset or unparseable.
func EnvIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
