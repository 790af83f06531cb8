// Package meta implements the engine that picks how a compiled pattern is
// searched.
//
// Every pattern is compiled into a horspool.Searcher. On top of that the
// engine selects a strategy:
//   - UseMemchr: one exact cell, a plain byte search
//   - UseMaskedMemchr: one nibble cell, a masked byte search
//   - UsePrefilter: wildcards at the tail collapse the Horspool shifts, so
//     candidates come from a prefilter on the rarest fixed cell
//   - UseHorspool: everything else
//
// All strategies return the same index for the same input. Skip tables come
// from a horspool.Allocator, by default a sync.Pool shared by all engines.
package meta

import (
	"strconv"

	"github.com/coregx/hexscan/horspool"
	"github.com/coregx/hexscan/prefilter"
)

// Config controls strategy selection and resource use.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // always scan with Horspool
//	engine, err := meta.Compile("4D 5A ?? ??", config)
type Config struct {
	// EnableMemchr allows single-cell patterns to use a byte search.
	// Default: true
	EnableMemchr bool

	// EnablePrefilter allows the rare-cell prefilter for patterns whose
	// skip table is too flat for Horspool to make progress.
	// Default: true
	EnablePrefilter bool

	// MinHorspoolShift is the smallest horspool.Searcher.MaxShift for which
	// Horspool is kept. Below it the prefilter is used when enabled.
	// Default: 2
	MinHorspoolShift int

	// MaxPatternLen caps the number of cells. 0 means no limit.
	// Default: 0
	MaxPatternLen int

	// Tracker decides when an ineffective prefilter is abandoned in favour
	// of Horspool during a search.
	Tracker prefilter.TrackerConfig

	// Tables supplies skip-table buffers. nil means the shared pool
	// returned by DefaultTablePool.
	Tables horspool.Allocator
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMemchr:     true,
		EnablePrefilter:  true,
		MinHorspoolShift: 2,
		Tracker:          prefilter.DefaultTrackerConfig(),
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MinHorspoolShift: 0 to 256
//   - MaxPatternLen: 0 (unlimited) or positive
//   - Tracker.CheckInterval: at least 1 when the prefilter is enabled
func (c Config) Validate() error {
	if c.MinHorspoolShift < 0 || c.MinHorspoolShift > horspool.TableSize {
		return &ConfigError{
			Field:   "MinHorspoolShift",
			Message: "must be between 0 and " + strconv.Itoa(horspool.TableSize),
		}
	}
	if c.MaxPatternLen < 0 {
		return &ConfigError{
			Field:   "MaxPatternLen",
			Message: "must not be negative",
		}
	}
	if c.EnablePrefilter && c.Tracker.CheckInterval == 0 {
		return &ConfigError{
			Field:   "Tracker.CheckInterval",
			Message: "must be at least 1",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "hexscan: invalid config: " + e.Field + ": " + e.Message
}
