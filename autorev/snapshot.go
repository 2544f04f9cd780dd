// Package autorev turns manual edits of the prompt document into revision
// source: it diffs the live document against the last-migrated snapshot and
// generates a registration file replaying the difference.
package autorev

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/logger"
)

// DefaultSnapshotFile is the conventional last-migrated snapshot location.
const DefaultSnapshotFile = ".promptrev.lastmigrated.json"

// SnapshotStore persists the flat name→value mapping as of the most recent
// upgrade. The snapshot is what lets change detection tell manual edits
// apart from migrated content.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a snapshot store at path.
func NewSnapshotStore(path string) *SnapshotStore {
	if path == "" {
		path = DefaultSnapshotFile
	}
	return &SnapshotStore{path: path}
}

// Path returns the backing file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Load reads the snapshot. Absent reads as nil; corrupt reads as nil with a
// warning.
func (s *SnapshotStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read snapshot %s", s.path)
	}

	var snapshot map[string]string
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.Warnw("Corrupt snapshot, treating as absent",
			logger.FieldPath, s.path,
			logger.FieldError, err,
		)
		return nil, nil
	}
	return snapshot, nil
}

// Save rewrites the snapshot in full.
func (s *SnapshotStore) Save(snapshot map[string]string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write snapshot %s", s.path)
	}
	return nil
}
