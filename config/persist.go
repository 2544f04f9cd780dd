package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/logger"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// createBackup rotates .back1/.back2/.back3 copies before a config write.
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete oldest config backup",
			logger.FieldPath, back3,
			logger.FieldError, err,
		)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "read config for backup")
	}
	if err := os.WriteFile(back1, content, filePermissions); err != nil {
		return errors.Wrap(err, "create .back1")
	}

	return nil
}

// Save writes cfg as TOML to path, rotating backups of any existing file
// first and creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return errors.Wrapf(err, "create config directory %s", dir)
		}
	}

	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "backup config")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}

	return nil
}
