package revision

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/logger"
)

// DefaultStateFile is the conventional applied-revision log location.
const DefaultStateFile = ".promptrev.state.json"

// StateStore is the durable, append-only log of applied revision
// identifiers. Append persists immediately so a crash mid-upgrade leaves
// the log equal to exactly the steps that completed.
type StateStore interface {
	// Load returns the applied sequence. Missing or corrupt backing data
	// loads as empty, never as an error.
	Load() ([]string, error)
	// Append records one applied revision and persists it.
	Append(revID string) error
	// Current returns the last applied revision, if any.
	Current() (string, bool)
}

// stateRecord is the on-disk JSON shape.
type stateRecord struct {
	Applied []string `json:"applied"`
}

// FileStateStore keeps the applied sequence in a small JSON file.
type FileStateStore struct {
	path string
}

// NewFileStateStore creates a file-backed state store at path.
func NewFileStateStore(path string) *FileStateStore {
	if path == "" {
		path = DefaultStateFile
	}
	return &FileStateStore{path: path}
}

// Path returns the backing file path.
func (s *FileStateStore) Path() string {
	return s.path
}

// Load reads the applied sequence. Absent or corrupt files read as empty
// with a warning for the corrupt case.
func (s *FileStateStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read revision state %s", s.path)
	}

	var record stateRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Warnw("Corrupt revision state, treating as empty",
			logger.FieldPath, s.path,
			logger.FieldError, err,
		)
		return nil, nil
	}
	return record.Applied, nil
}

// Append adds one identifier and rewrites the file.
func (s *FileStateStore) Append(revID string) error {
	applied, err := s.Load()
	if err != nil {
		return err
	}
	applied = append(applied, revID)

	data, err := json.MarshalIndent(stateRecord{Applied: applied}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal revision state")
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write revision state %s", s.path)
	}
	return nil
}

// Current returns the last applied revision.
func (s *FileStateStore) Current() (string, bool) {
	applied, err := s.Load()
	if err != nil || len(applied) == 0 {
		return "", false
	}
	return applied[len(applied)-1], true
}
