package config

import "github.com/teranos/promptrev/errors"

// Validate checks enum fields and numeric ranges.
func (c *Config) Validate() error {
	switch c.State.Backend {
	case "", StateBackendFile, StateBackendSQLite:
	default:
		return errors.Newf("state.backend must be %q or %q, got %q",
			StateBackendFile, StateBackendSQLite, c.State.Backend)
	}
	if c.State.Backend == StateBackendSQLite && c.State.SQLitePath == "" {
		return errors.New("state.sqlite_path cannot be empty with the sqlite backend")
	}

	// Empty paths elsewhere fall back to package defaults at point of use.

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	if c.Watch.StopTimeoutMS < 0 {
		return errors.Newf("watch.stop_timeout_ms must be >= 0, got %d", c.Watch.StopTimeoutMS)
	}

	if c.AutoRev.MinIntervalS < 0 {
		return errors.Newf("autorev.min_interval_s must be >= 0, got %d", c.AutoRev.MinIntervalS)
	}
	if c.AutoRev.Enabled && c.AutoRev.RevisionsDir == "" {
		return errors.New("autorev.revisions_dir cannot be empty when enabled")
	}

	if c.Logging.Verbosity < 0 {
		return errors.Newf("logging.verbosity must be >= 0, got %d", c.Logging.Verbosity)
	}

	return nil
}
