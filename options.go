package promptrev

import (
	"time"

	"go.uber.org/zap"

	"github.com/teranos/promptrev/revision"
)

const (
	// DefaultDebounce collapses rapid document-change events.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultStopTimeout bounds the watcher shutdown join.
	DefaultStopTimeout = 2 * time.Second
)

// Options configures a Manager. The zero value is usable: it manages
// prompts.yaml with a JSON state file next to it, the default registry, and
// no watching.
type Options struct {
	// PromptFile is the backing document path. Empty means prompts.yaml.
	PromptFile string
	// Defaults are merged into the document on every load for names the
	// file does not carry. Defaults never overwrite an on-disk value.
	Defaults map[string]string

	// StateFile is the JSON applied-log path. Empty means
	// .promptrev.state.json. Ignored when State is set.
	StateFile string
	// State overrides the file-backed applied log with any StateStore,
	// such as the SQLite ledger.
	State revision.StateStore

	// Registry supplies the revision catalogue. Nil means the process-wide
	// default registry.
	Registry *revision.Registry

	// Context is the default rendering context, merged under any per-call
	// override.
	Context map[string]any

	// Watch starts the document watcher during construction. A start
	// failure is logged, not returned.
	Watch bool
	// Debounce is the watcher's quiet period after a change event. Zero
	// means DefaultDebounce.
	Debounce time.Duration
	// StopTimeout bounds how long StopWatching waits for the watcher
	// goroutines. Zero means DefaultStopTimeout.
	StopTimeout time.Duration

	// AutoRev lets watch-driven reloads generate revision source files
	// from manual edits.
	AutoRev bool
	// RevisionsDir receives generated revision source. Empty means
	// "revisions".
	RevisionsDir string
	// SnapshotFile is the last-migrated snapshot path. Empty means
	// .promptrev.lastmigrated.json.
	SnapshotFile string
	// AutoRevInterval spaces watch-driven generations. Zero means 30s.
	AutoRevInterval time.Duration

	// Logger receives manager, engine and watcher logging. Nil means
	// silent.
	Logger *zap.SugaredLogger
}

// withDefaults fills the zero fields.
func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = revision.Default()
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.StopTimeout <= 0 {
		o.StopTimeout = DefaultStopTimeout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
	return o
}
