// Package promptrev manages a versioned collection of named prompt
// templates the way a migration framework manages schema: registered
// revision steps transform a persisted YAML document in order, the applied
// sequence is tracked durably, and lookups render the stored templates
// freshly on every access.
package promptrev

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/promptrev/autorev"
	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/logger"
	"github.com/teranos/promptrev/prompt"
	"github.com/teranos/promptrev/revision"
)

// Manager is the coordinating facade: one document store and state store
// pair, a resolver, dynamic values, and optionally a watcher. All document
// access goes through one mutex shared with the watcher consumer.
type Manager struct {
	mu sync.Mutex

	opts     Options
	store    *prompt.Store
	state    revision.StateStore
	registry *revision.Registry
	engine   *revision.Engine
	resolver *prompt.Resolver
	autorev  *autorev.Runner

	doc   *prompt.Document
	lower map[string]string // lowercase name -> canonical name

	dynamic  map[string]DynamicValue
	dynLower map[string]string

	ownWriteMu sync.Mutex
	ownWriteAt time.Time

	watchMu sync.Mutex
	watcher *watcher

	log *zap.SugaredLogger
}

// New builds a Manager from opts and loads the document. When opts.Watch is
// set the watcher is started; a watcher start failure is logged rather than
// failing construction.
func New(opts Options) (*Manager, error) {
	opts = opts.withDefaults()

	m := &Manager{
		opts:     opts,
		store:    prompt.NewStore(opts.PromptFile, opts.Defaults),
		registry: opts.Registry,
		resolver: prompt.NewResolver(opts.Context),
		autorev:  autorev.NewRunner(opts.SnapshotFile, opts.RevisionsDir, opts.AutoRevInterval, opts.Logger),
		dynamic:  make(map[string]DynamicValue),
		dynLower: make(map[string]string),
		log:      opts.Logger,
	}

	m.state = opts.State
	if m.state == nil {
		m.state = revision.NewFileStateStore(opts.StateFile)
	}
	m.engine = revision.NewEngine(m.registry, &markingStore{store: m.store, manager: m}, m.state, opts.Logger)

	doc, err := m.store.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load prompt document")
	}
	m.doc = doc
	m.rebuildIndex()

	if opts.Watch {
		if err := m.StartWatching(); err != nil {
			m.log.Warnw("Failed to start document watcher",
				logger.FieldError, err,
			)
		}
	}
	return m, nil
}

// Close stops the watcher. The document and state stores hold no other
// resources; a caller-supplied ledger is closed by its owner.
func (m *Manager) Close() {
	m.StopWatching()
}

// PromptPath returns the backing document location.
func (m *Manager) PromptPath() string {
	return m.store.Path()
}

// Lookup returns the rendered value of a named prompt using the default
// context only.
func (m *Manager) Lookup(name string) (string, error) {
	return m.LookupWithContext(name, nil)
}

// LookupWithContext renders a named prompt with override merged over the
// default context. Dynamic values win over stored templates and come back
// unrendered. A name found in neither triggers one forced reload before
// the lookup fails.
func (m *Manager) LookupWithContext(name string, override map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.findDynamic(name); ok {
		return v(), nil
	}
	if canonical, ok := m.findDocName(name); ok {
		raw, _ := m.doc.Get(canonical)
		return m.resolver.Render(raw, override), nil
	}

	m.log.Debugw("Prompt not found in memory, forcing reload",
		logger.FieldPrompt, name,
		logger.FieldFile, m.store.Path(),
	)
	if err := m.reloadLocked(); err != nil {
		return "", err
	}
	if canonical, ok := m.findDocName(name); ok {
		raw, _ := m.doc.Get(canonical)
		return m.resolver.Render(raw, override), nil
	}

	known := m.doc.Names()
	sort.Strings(known)
	return "", errors.NewNameNotFoundError(name, known)
}

// Raw returns a prompt's stored template without rendering, following the
// same dynamic-first, reload-on-miss path as Lookup.
func (m *Manager) Raw(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.findDynamic(name); ok {
		return v(), nil
	}
	if canonical, ok := m.findDocName(name); ok {
		raw, _ := m.doc.Get(canonical)
		return raw, nil
	}

	if err := m.reloadLocked(); err != nil {
		return "", err
	}
	if canonical, ok := m.findDocName(name); ok {
		raw, _ := m.doc.Get(canonical)
		return raw, nil
	}

	known := m.doc.Names()
	sort.Strings(known)
	return "", errors.NewNameNotFoundError(name, known)
}

// Render resolves an ad-hoc template string against the manager's context.
func (m *Manager) Render(raw string, override map[string]any) string {
	return m.resolver.Render(raw, override)
}

// SetDynamic registers a runtime value checked before the stored document
// on lookup.
func (m *Manager) SetDynamic(name string, v DynamicValue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dynamic[name] = v
	m.dynLower[strings.ToLower(name)] = name
}

// Names returns the document's prompt names in document order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Names()
}

// Snapshot returns a flat copy of the document mapping.
func (m *Manager) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Map()
}

// Upgrade applies pending revisions in order, stopping inclusively at
// target when given (empty target means all). It returns the applied
// identifiers. After any progress the last-migrated snapshot is refreshed
// so auto-revision diffs against the upgraded content.
func (m *Manager) Upgrade(target string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	applied, doc, err := m.engine.Upgrade(m.doc, target)
	m.doc = doc
	m.rebuildIndex()

	if len(applied) > 0 {
		if snapErr := m.autorev.RecordUpgrade(m.doc.Map()); snapErr != nil {
			m.log.Warnw("Failed to record last-migrated snapshot",
				logger.FieldError, snapErr,
			)
		}
	}
	return applied, err
}

// CurrentRevision returns the last applied revision.
func (m *Manager) CurrentRevision() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Current()
}

// Applied returns the full applied sequence.
func (m *Manager) Applied() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Applied()
}

// Pending returns the steps Upgrade would apply for target.
func (m *Manager) Pending(target string) ([]revision.Step, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Pending(target)
}

// ListSteps returns every registered step in application order.
func (m *Manager) ListSteps() []revision.Step {
	return m.engine.ListSteps()
}

// Reload re-reads the document from disk, logging a reconciliation of
// added, changed and removed names against the in-memory copy.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloadLocked()
}

// AutoRevision runs one change detection against the last-migrated
// snapshot and, when manual edits exist, writes a revision source file. It
// bypasses the watch-driven rate limit.
func (m *Manager) AutoRevision() (string, bool, error) {
	m.mu.Lock()
	current := m.doc.Map()
	steps := m.registry.All()
	m.mu.Unlock()

	return m.autorev.Generate(current, steps)
}

// reloadLocked replaces the in-memory document with the on-disk content.
// Callers hold m.mu.
func (m *Manager) reloadLocked() error {
	fresh, err := m.store.Load()
	if err != nil {
		return errors.Wrap(err, "reload prompt document")
	}
	m.reconcile(m.doc, fresh)
	m.doc = fresh
	m.rebuildIndex()
	return nil
}

// reconcile logs how the on-disk document differs from the in-memory copy.
// Differences are reported, never errors.
func (m *Manager) reconcile(old, fresh *prompt.Document) {
	if old == nil {
		return
	}
	for _, name := range fresh.Names() {
		freshVal, _ := fresh.Get(name)
		oldVal, ok := old.Get(name)
		switch {
		case !ok:
			m.log.Infow("Prompt added externally",
				logger.FieldPrompt, name,
				logger.FieldFile, m.store.Path(),
			)
		case oldVal != freshVal:
			m.log.Warnw("Prompt changed externally",
				logger.FieldPrompt, name,
				logger.FieldFile, m.store.Path(),
			)
		}
	}
	for _, name := range old.Names() {
		if _, ok := fresh.Get(name); !ok {
			m.log.Warnw("Prompt removed externally",
				logger.FieldPrompt, name,
				logger.FieldFile, m.store.Path(),
			)
		}
	}
}

// rebuildIndex refreshes the case-insensitive name index. Callers hold
// m.mu (or the manager is not yet shared).
func (m *Manager) rebuildIndex() {
	m.lower = make(map[string]string, m.doc.Len())
	for _, name := range m.doc.Names() {
		m.lower[strings.ToLower(name)] = name
	}
}

// findDocName resolves a lookup name to the document's canonical spelling,
// exact match first.
func (m *Manager) findDocName(name string) (string, bool) {
	if _, ok := m.doc.Get(name); ok {
		return name, true
	}
	if canonical, ok := m.lower[strings.ToLower(name)]; ok {
		return canonical, true
	}
	return "", false
}

// findDynamic resolves a dynamic value, exact match first.
func (m *Manager) findDynamic(name string) (DynamicValue, bool) {
	if v, ok := m.dynamic[name]; ok {
		return v, true
	}
	if canonical, ok := m.dynLower[strings.ToLower(name)]; ok {
		return m.dynamic[canonical], true
	}
	return nil, false
}

// handleExternalChange is the watch consumer's reaction: reload under the
// manager mutex, then optionally attempt a rate-limited auto-revision on
// copies taken under the same lock.
func (m *Manager) handleExternalChange() {
	m.mu.Lock()
	if err := m.reloadLocked(); err != nil {
		m.mu.Unlock()
		m.log.Errorw("Reload after external change failed",
			logger.FieldError, err,
		)
		return
	}
	if !m.opts.AutoRev {
		m.mu.Unlock()
		return
	}
	current := m.doc.Map()
	steps := m.registry.All()
	m.mu.Unlock()

	if _, _, err := m.autorev.TryGenerate(current, steps); err != nil {
		m.log.Errorw("Auto-revision generation failed",
			logger.FieldError, err,
		)
	}
}

// markOwnWrite stamps the moment of an engine-driven save so the watcher
// can tell it from an external edit.
func (m *Manager) markOwnWrite() {
	m.ownWriteMu.Lock()
	m.ownWriteAt = time.Now()
	m.ownWriteMu.Unlock()
}

// recentOwnWrite reports whether a save of our own happened within the
// debounce window.
func (m *Manager) recentOwnWrite() bool {
	m.ownWriteMu.Lock()
	defer m.ownWriteMu.Unlock()
	return !m.ownWriteAt.IsZero() && time.Since(m.ownWriteAt) < m.opts.Debounce
}

// markingStore wraps the document store so engine-driven saves are stamped
// as own writes before they hit disk.
type markingStore struct {
	store   *prompt.Store
	manager *Manager
}

func (s *markingStore) Load() (*prompt.Document, error) {
	return s.store.Load()
}

func (s *markingStore) Save(doc *prompt.Document) error {
	s.manager.markOwnWrite()
	return s.store.Save(doc)
}
