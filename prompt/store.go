package prompt

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/logger"
)

const (
	// DefaultDocumentFile is the conventional prompt document name.
	DefaultDocumentFile = "prompts.yaml"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Store reads and writes the prompt document at a fixed path. A missing file
// reads as empty; malformed content reads as empty with a warning, never an
// error. Defaults are merged on every load and never overwrite an on-disk
// key.
type Store struct {
	path     string
	defaults map[string]string
}

// NewStore creates a store for the document at path. defaults may be nil.
func NewStore(path string, defaults map[string]string) *Store {
	if path == "" {
		path = DefaultDocumentFile
	}
	return &Store{path: path, defaults: defaults}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. Only I/O faults other than absence are returned
// as errors; structural problems degrade to an empty document.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.mergeDefaults(NewDocument()), nil
		}
		return nil, errors.Wrapf(err, "read prompt document %s", s.path)
	}
	return s.mergeDefaults(s.parse(data)), nil
}

// Save writes the whole document back in document order, creating parent
// directories as needed. Writes are full rewrites, never deltas.
func (s *Store) Save(doc *Document) error {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range doc.names {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: doc.values[name]},
		)
	}

	data, err := yaml.Marshal(node)
	if err != nil {
		return errors.Wrapf(err, "marshal prompt document %s", s.path)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}

	if err := os.WriteFile(s.path, data, filePermissions); err != nil {
		return errors.Wrapf(err, "write prompt document %s", s.path)
	}
	return nil
}

// parse decodes YAML into an ordered document. The document must be a flat
// string → string mapping; anything else degrades with a warning.
func (s *Store) parse(data []byte) *Document {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		logger.Warnw("Malformed prompt document, treating as empty",
			logger.FieldPath, s.path,
			logger.FieldError, err,
		)
		return NewDocument()
	}

	if len(root.Content) == 0 {
		return NewDocument()
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		logger.Warnw("Prompt document is not a flat mapping, treating as empty",
			logger.FieldPath, s.path,
		)
		return NewDocument()
	}

	doc := NewDocument()
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			logger.Warnw("Skipping prompt with non-scalar name",
				logger.FieldPath, s.path,
				"line", keyNode.Line,
			)
			continue
		}
		name := keyNode.Value

		value, ok := scalarValue(valueNode)
		if !ok {
			logger.Warnw("Skipping prompt with nested value",
				logger.FieldPath, s.path,
				logger.FieldKey, name,
			)
			continue
		}
		if valueNode.Tag != "!!str" {
			logger.Warnw("Coerced non-string prompt value",
				logger.FieldPath, s.path,
				logger.FieldKey, name,
				"tag", valueNode.Tag,
			)
		}

		if _, dup := doc.Get(name); dup {
			logger.Warnw("Duplicate prompt name, last occurrence wins",
				logger.FieldPath, s.path,
				logger.FieldKey, name,
			)
		}
		doc.Set(name, value)
	}
	return doc
}

// scalarValue extracts a scalar node's text form. Null coerces to the empty
// string; non-scalar kinds are rejected.
func scalarValue(n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode {
		return "", false
	}
	if n.Tag == "!!null" {
		return "", true
	}
	return n.Value, true
}

// mergeDefaults appends configured defaults for names absent from doc.
// Appended in sorted name order so the result is deterministic.
func (s *Store) mergeDefaults(doc *Document) *Document {
	if len(s.defaults) == 0 {
		return doc
	}
	names := make([]string, 0, len(s.defaults))
	for name := range s.defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := doc.Get(name); !ok {
			doc.Set(name, s.defaults[name])
		}
	}
	return doc
}
