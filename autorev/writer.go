package autorev

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/promptrev/errors"
)

// DefaultRevisionsDir is the conventional revision-source directory.
const DefaultRevisionsDir = "revisions"

// Writer places generated revision source files into the revisions
// directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer targeting dir.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = DefaultRevisionsDir
	}
	return &Writer{dir: dir}
}

// Dir returns the target directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Package returns the Go package name for generated files, derived from the
// directory base with non-identifier characters replaced.
func (w *Writer) Package() string {
	return packageName(filepath.Base(w.dir))
}

// Write stores one generated revision as rev_<id>.go, creating the
// directory as needed, and returns the written path.
func (w *Writer) Write(id string, src []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create revisions directory %s", w.dir)
	}
	path := filepath.Join(w.dir, fmt.Sprintf("rev_%s.go", id))
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return "", errors.Wrapf(err, "write revision source %s", path)
	}
	return path, nil
}

// packageName sanitizes a directory base into a Go package identifier.
func packageName(base string) string {
	var sb strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		default:
			sb.WriteRune('_')
		}
	}
	name := sb.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "revisions"
	}
	return name
}
