package world

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned (wrapped in a *ConfigError) when a
	// palette or setting cannot produce a valid map.
	ErrInvalidConfig = errors.New("invalid generation config")

	// ErrGenerationStalled is returned (wrapped in a *StalledError) when a
	// forest cannot place its trees within the attempt limit.
	ErrGenerationStalled = errors.New("generation stalled")
)

// ConfigError describes a misconfigured field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// StalledError reports a forest that gave up before reaching its size.
type StalledError struct {
	Forest   int
	Placed   int
	Target   int
	Attempts int
}

func (e *StalledError) Error() string {
	return fmt.Sprintf("forest %d stalled: placed %d/%d trees after %d failed attempts",
		e.Forest, e.Placed, e.Target, e.Attempts)
}

func (e *StalledError) Unwrap() error { return ErrGenerationStalled }
