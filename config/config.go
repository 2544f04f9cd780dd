// Package config loads promptrev configuration from TOML files and the
// environment. Precedence, lowest to highest: built-in defaults, system
// config, user config, project config, PROMPTREV_ environment variables.
// The core packages never read configuration themselves; the CLI converts
// a loaded Config into promptrev.Options.
package config

import (
	"time"
)

// Config is the full promptrev configuration tree.
type Config struct {
	Prompts PromptsConfig     `mapstructure:"prompts" toml:"prompts"`
	State   StateConfig       `mapstructure:"state" toml:"state"`
	Watch   WatchConfig       `mapstructure:"watch" toml:"watch"`
	AutoRev AutoRevConfig     `mapstructure:"autorev" toml:"autorev"`
	Context map[string]string `mapstructure:"context" toml:"context,omitempty"`
	Logging LoggingConfig     `mapstructure:"logging" toml:"logging"`
}

// PromptsConfig locates the prompt document.
type PromptsConfig struct {
	File         string `mapstructure:"file" toml:"file"`                   // prompt document path (default: prompts.yaml)
	DefaultsFile string `mapstructure:"defaults_file" toml:"defaults_file"` // optional YAML of defaults merged on every load
}

// StateConfig selects where the applied-revision sequence lives.
type StateConfig struct {
	Backend    string `mapstructure:"backend" toml:"backend"`         // "file" or "sqlite" (default: file)
	File       string `mapstructure:"file" toml:"file"`               // JSON state path (default: .promptrev.state.json)
	SQLitePath string `mapstructure:"sqlite_path" toml:"sqlite_path"` // ledger database path (default: promptrev.db)
}

// State backend names accepted in [state] backend.
const (
	StateBackendFile   = "file"
	StateBackendSQLite = "sqlite"
)

// WatchConfig tunes the document watcher.
type WatchConfig struct {
	Enabled       bool `mapstructure:"enabled" toml:"enabled"`
	DebounceMS    int  `mapstructure:"debounce_ms" toml:"debounce_ms"`         // quiet period after a change event (default: 500)
	StopTimeoutMS int  `mapstructure:"stop_timeout_ms" toml:"stop_timeout_ms"` // shutdown join bound (default: 2000)
}

// Debounce returns the debounce as a duration.
func (c WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// StopTimeout returns the shutdown bound as a duration.
func (c WatchConfig) StopTimeout() time.Duration {
	return time.Duration(c.StopTimeoutMS) * time.Millisecond
}

// AutoRevConfig tunes revision generation from manual edits.
type AutoRevConfig struct {
	Enabled      bool   `mapstructure:"enabled" toml:"enabled"`
	RevisionsDir string `mapstructure:"revisions_dir" toml:"revisions_dir"`   // generated source directory (default: revisions)
	SnapshotFile string `mapstructure:"snapshot_file" toml:"snapshot_file"`   // last-migrated snapshot (default: .promptrev.lastmigrated.json)
	MinIntervalS int    `mapstructure:"min_interval_s" toml:"min_interval_s"` // watch-driven generation spacing (default: 30)
}

// MinInterval returns the generation spacing as a duration.
func (c AutoRevConfig) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalS) * time.Second
}

// LoggingConfig selects log output format and level.
type LoggingConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`           // structured JSON instead of console output
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"` // 0 = warnings, 1 = info, 2+ = debug
}
