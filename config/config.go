// Package config defines the flat, two-namespace set of recognized
// options described in spec.md §6.3. All other options (themes,
// keybindings, history sizes) are host-level and live outside this
// package.
package config

import "fmt"

// DefaultMaxDisplayRows is the soft cap on base_rows applied when a
// config file doesn't override it.
const DefaultMaxDisplayRows = 1_000_000

// Config is loaded from a YAML key/value map under two namespaces,
// display and behavior, matching spec.md §6.3 exactly.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Behavior BehaviorConfig `yaml:"behavior"`
}

// DisplayConfig holds rendering-affecting (or rendering-hint) options.
type DisplayConfig struct {
	// CompactMode shrinks column widths to header_len + 1 instead of
	// sampling data width.
	CompactMode bool `yaml:"compact_mode"`
	// ShowRowNumbers is a rendering hint only; it never affects the
	// data model.
	ShowRowNumbers bool `yaml:"show_row_numbers"`
}

// BehaviorConfig holds options affecting query/filter/search defaults.
type BehaviorConfig struct {
	// CaseInsensitiveDefault is the default for text and vim search; a
	// per-invocation override always wins.
	CaseInsensitiveDefault bool `yaml:"case_insensitive_default"`
	// MaxDisplayRows soft-caps base_rows at query time; LIMIT may be lower.
	MaxDisplayRows uint64 `yaml:"max_display_rows"`
	// AutoExecuteOnLoad runs `SELECT * FROM <name>` immediately after
	// loading a file.
	AutoExecuteOnLoad bool `yaml:"auto_execute_on_load"`
}

// DefaultConfig returns the configuration written out and used when no
// config file exists yet.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			CompactMode:    false,
			ShowRowNumbers: true,
		},
		Behavior: BehaviorConfig{
			CaseInsensitiveDefault: true,
			MaxDisplayRows:         DefaultMaxDisplayRows,
			AutoExecuteOnLoad:      true,
		},
	}
}

// Validate rejects configurations spec.md never describes as legal.
func (c Config) Validate() error {
	if c.Behavior.MaxDisplayRows == 0 {
		return fmt.Errorf("behavior.max_display_rows must be greater than zero")
	}
	return nil
}
