package config

import (
	"github.com/spf13/viper"
)

// SetDefaults registers the default value for every configuration key.
// Every key having a default keeps AutomaticEnv visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	// Prompt document defaults
	v.SetDefault("prompts.file", "prompts.yaml")
	v.SetDefault("prompts.defaults_file", "")

	// State store defaults
	v.SetDefault("state.backend", StateBackendFile)
	v.SetDefault("state.file", ".promptrev.state.json")
	v.SetDefault("state.sqlite_path", "promptrev.db")

	// Watcher defaults
	v.SetDefault("watch.enabled", false)
	v.SetDefault("watch.debounce_ms", 500)
	v.SetDefault("watch.stop_timeout_ms", 2000)

	// Auto-revision defaults
	v.SetDefault("autorev.enabled", false)
	v.SetDefault("autorev.revisions_dir", "revisions")
	v.SetDefault("autorev.snapshot_file", ".promptrev.lastmigrated.json")
	v.SetDefault("autorev.min_interval_s", 30)

	// Logging defaults
	v.SetDefault("logging.json", false)
	v.SetDefault("logging.verbosity", 0)
}

// BindEnvOverrides explicitly binds the keys most commonly overridden per
// invocation, including the watch and auto-revision toggles.
func BindEnvOverrides(v *viper.Viper) {
	v.BindEnv("prompts.file", "PROMPTREV_PROMPTS_FILE")
	v.BindEnv("state.file", "PROMPTREV_STATE_FILE")
	v.BindEnv("state.sqlite_path", "PROMPTREV_STATE_SQLITE_PATH")
	v.BindEnv("watch.enabled", "PROMPTREV_WATCH_ENABLED")
	v.BindEnv("autorev.enabled", "PROMPTREV_AUTOREV_ENABLED")
}
