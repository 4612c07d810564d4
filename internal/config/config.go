package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = 100
	DefaultEdgeThreshold  = 8.0
)

// Config is the editor configuration, loaded from a TOML file.
type Config struct {
	// History configures the undo/redo engine.
	History HistoryConfig `toml:"history"`

	// DragDrop configures drop-target resolution.
	DragDrop DragDropConfig `toml:"dragdrop"`

	// Registry locates the block-type registry file, if any.
	Registry RegistryConfig `toml:"registry"`
}

// HistoryConfig configures the undo/redo engine.
type HistoryConfig struct {
	// MaxEntries caps the undo stack (front eviction past the cap).
	MaxEntries int `toml:"max_entries"`
}

// DragDropConfig configures drop-target resolution.
type DragDropConfig struct {
	// EdgeThreshold is the before/after band height in UI units.
	EdgeThreshold float64 `toml:"edge_threshold"`
}

// RegistryConfig locates the block-type registry.
type RegistryConfig struct {
	// Path is the TOML registry file; empty means the host supplies
	// the registry programmatically.
	Path string `toml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History:  HistoryConfig{MaxEntries: DefaultMaxUndoEntries},
		DragDrop: DragDropConfig{EdgeThreshold: DefaultEdgeThreshold},
	}
}

// Load reads configuration from a TOML file, layered over the
// defaults. A missing file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse builds a Config from TOML data layered over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: "<data>", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks configured values against their allowed ranges.
func (c Config) Validate() error {
	if c.History.MaxEntries <= 0 {
		return &ValidationError{
			Path:    "history.max_entries",
			Message: "must be positive",
			Value:   c.History.MaxEntries,
		}
	}
	if c.DragDrop.EdgeThreshold <= 0 {
		return &ValidationError{
			Path:    "dragdrop.edge_threshold",
			Message: "must be positive",
			Value:   c.DragDrop.EdgeThreshold,
		}
	}
	return nil
}
