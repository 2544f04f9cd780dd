package promptrev

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/logger"
)

// watcher reacts to external edits of the prompt document. The fsnotify
// goroutine filters and debounces events and posts into a buffered change
// channel; a single consumer goroutine owns every reaction, taking the
// manager mutex through handleExternalChange.
type watcher struct {
	manager     *Manager
	path        string
	debounce    time.Duration
	stopTimeout time.Duration

	fsw          *fsnotify.Watcher
	changes      chan struct{}
	stop         chan struct{}
	eventsDone   chan struct{}
	consumerDone chan struct{}

	log *zap.SugaredLogger
}

// StartWatching begins watching the prompt document for external edits.
// Calling it while a watcher is already running is a no-op.
func (m *Manager) StartWatching() error {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.watcher != nil {
		m.log.Debugw("Document watcher already running",
			logger.FieldPath, m.store.Path(),
		)
		return nil
	}

	w := &watcher{
		manager:      m,
		path:         m.store.Path(),
		debounce:     m.opts.Debounce,
		stopTimeout:  m.opts.StopTimeout,
		changes:      make(chan struct{}, 1),
		stop:         make(chan struct{}),
		eventsDone:   make(chan struct{}),
		consumerDone: make(chan struct{}),
		log:          m.log,
	}
	if err := w.start(); err != nil {
		return err
	}
	m.watcher = w
	return nil
}

// StopWatching stops the watcher, joining its goroutines with a bounded
// timeout. Stopping an already-stopped manager is a no-op.
func (m *Manager) StopWatching() {
	m.watchMu.Lock()
	w := m.watcher
	m.watcher = nil
	m.watchMu.Unlock()

	if w != nil {
		w.stopAndJoin()
	}
}

// Watching reports whether the document watcher is running.
func (m *Manager) Watching() bool {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()
	return m.watcher != nil
}

// start opens the fsnotify watch on the document's directory and launches
// both goroutines. Watching the directory instead of the file survives
// editors that replace the file on save.
func (w *watcher) start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create fsnotify watcher")
	}

	dir := filepath.Dir(w.path)
	if dir == "" {
		dir = "."
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return errors.Wrapf(err, "watch directory %s", dir)
	}
	w.fsw = fsw

	go w.eventLoop()
	go w.consumeLoop()

	w.log.Infow("Watching prompt document",
		logger.FieldPath, w.path,
		"debounce_ms", w.debounce.Milliseconds(),
	)
	return nil
}

// eventLoop receives raw filesystem events, drops irrelevant ones and own
// writes, and debounces the rest into the change channel.
func (w *watcher) eventLoop() {
	defer close(w.eventsDone)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if w.manager.recentOwnWrite() {
				w.log.Debugw("Ignoring own write",
					logger.FieldFile, event.Name,
				)
				continue
			}

			w.log.Debugw("Document change detected",
				logger.FieldFile, event.Name,
				"op", event.Op.String(),
			)
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.postChange)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Document watcher error",
				logger.FieldError, err,
			)
		}
	}
}

// relevant keeps Write/Create/Rename events for the watched document and
// drops everything else, including backup files.
func (w *watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if filepath.Base(event.Name) != filepath.Base(w.path) {
		return false
	}
	return !isBackupFile(event.Name)
}

// postChange queues one change notification; a notification already queued
// absorbs this one.
func (w *watcher) postChange() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// consumeLoop is the single reaction goroutine.
func (w *watcher) consumeLoop() {
	defer close(w.consumerDone)

	for {
		select {
		case <-w.stop:
			return
		case <-w.changes:
			w.manager.handleExternalChange()
		}
	}
}

// stopAndJoin closes the filesystem watch and joins both goroutines within
// the stop timeout. A goroutine that fails to stop in time is logged and
// abandoned, never waited on forever.
func (w *watcher) stopAndJoin() {
	if err := w.fsw.Close(); err != nil {
		w.log.Warnw("Closing fsnotify watcher failed",
			logger.FieldError, err,
		)
	}

	deadline := time.After(w.stopTimeout)
	select {
	case <-w.eventsDone:
	case <-deadline:
		w.log.Warnw("Watcher event loop did not stop in time",
			"timeout_ms", w.stopTimeout.Milliseconds(),
		)
		return
	}

	close(w.stop)
	select {
	case <-w.consumerDone:
	case <-deadline:
		w.log.Warnw("Watcher consumer did not stop in time",
			"timeout_ms", w.stopTimeout.Milliseconds(),
		)
		return
	}

	w.log.Infow("Stopped watching prompt document",
		logger.FieldPath, w.path,
	)
}

// isBackupFile matches the rotating backups the config layer writes next to
// files it persists.
func isBackupFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".back1") ||
		strings.HasSuffix(base, ".back2") ||
		strings.HasSuffix(base, ".back3")
}
