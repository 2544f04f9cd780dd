package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "prompts.yaml", cfg.Prompts.File)
	assert.Equal(t, StateBackendFile, cfg.State.Backend)
	assert.Equal(t, ".promptrev.state.json", cfg.State.File)
	assert.Equal(t, "promptrev.db", cfg.State.SQLitePath)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 500, cfg.Watch.DebounceMS)
	assert.Equal(t, 2000, cfg.Watch.StopTimeoutMS)
	assert.False(t, cfg.AutoRev.Enabled)
	assert.Equal(t, "revisions", cfg.AutoRev.RevisionsDir)
	assert.Equal(t, 30, cfg.AutoRev.MinIntervalS)
	assert.False(t, cfg.Logging.JSON)
	assert.Equal(t, 0, cfg.Logging.Verbosity)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promptrev.toml")

	content := `[prompts]
file = "team-prompts.yaml"

[state]
backend = "sqlite"
sqlite_path = "state/ledger.db"

[watch]
enabled = true
debounce_ms = 250

[context]
service = "support-bot"

[logging]
verbosity = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "team-prompts.yaml", cfg.Prompts.File)
	assert.Equal(t, StateBackendSQLite, cfg.State.Backend)
	assert.Equal(t, "state/ledger.db", cfg.State.SQLitePath)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 250, cfg.Watch.DebounceMS)
	assert.Equal(t, "support-bot", cfg.Context["service"])
	assert.Equal(t, 2, cfg.Logging.Verbosity)

	// Untouched sections keep their defaults.
	assert.Equal(t, 2000, cfg.Watch.StopTimeoutMS)
	assert.Equal(t, "revisions", cfg.AutoRev.RevisionsDir)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	Reset()
	t.Cleanup(Reset)

	t.Setenv("PROMPTREV_PROMPTS_FILE", "from-env.yaml")
	t.Setenv("PROMPTREV_WATCH_ENABLED", "true")
	t.Setenv("PROMPTREV_AUTOREV_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env.yaml", cfg.Prompts.File)
	assert.True(t, cfg.Watch.Enabled)
	assert.True(t, cfg.AutoRev.Enabled)
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectConfigName), []byte(""), 0o644))

	t.Chdir(nested)

	found := FindProjectConfig()
	require.NotEmpty(t, found)
	assert.Equal(t, ProjectConfigName, filepath.Base(found))
}

func TestValidate(t *testing.T) {
	base := func() Config {
		v := viper.New()
		SetDefaults(v)
		cfg, err := LoadWithViper(v)
		require.NoError(t, err)
		return *cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "sqlite backend is valid",
			mutate: func(c *Config) { c.State.Backend = StateBackendSQLite },
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.State.Backend = "postgres" },
			wantErr: "state.backend",
		},
		{
			name: "sqlite backend without path",
			mutate: func(c *Config) {
				c.State.Backend = StateBackendSQLite
				c.State.SQLitePath = ""
			},
			wantErr: "state.sqlite_path",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.DebounceMS = -1 },
			wantErr: "watch.debounce_ms",
		},
		{
			name:    "negative stop timeout",
			mutate:  func(c *Config) { c.Watch.StopTimeoutMS = -1 },
			wantErr: "watch.stop_timeout_ms",
		},
		{
			name:    "negative autorev interval",
			mutate:  func(c *Config) { c.AutoRev.MinIntervalS = -5 },
			wantErr: "autorev.min_interval_s",
		},
		{
			name: "autorev enabled without directory",
			mutate: func(c *Config) {
				c.AutoRev.Enabled = true
				c.AutoRev.RevisionsDir = ""
			},
			wantErr: "autorev.revisions_dir",
		},
		{
			name:    "negative verbosity",
			mutate:  func(c *Config) { c.Logging.Verbosity = -1 },
			wantErr: "logging.verbosity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promptrev.toml")

	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	cfg.Prompts.File = "saved.yaml"
	cfg.Watch.Enabled = true
	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "saved.yaml", loaded.Prompts.File)
	assert.True(t, loaded.Watch.Enabled)
}

func TestSaveRotatesBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promptrev.toml")

	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, Save(cfg, path))
	}

	_, err = os.Stat(path + ".back1")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".back2")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".back3")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "promptrev.toml")

	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	require.NoError(t, Save(cfg, path))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
