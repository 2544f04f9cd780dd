package autorev

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/promptrev/revision"
)

// DefaultMinInterval is the minimum spacing between watch-driven
// generations.
const DefaultMinInterval = 30 * time.Second

// Runner bundles snapshot access, change detection, generation and rate
// limiting into the surface the manager and CLI drive.
type Runner struct {
	snapshots *SnapshotStore
	writer    *Writer
	limiter   *rate.Limiter
	log       *zap.SugaredLogger
}

// NewRunner wires a runner. Empty paths fall back to the package defaults;
// minInterval <= 0 means DefaultMinInterval; log may be nil for silent
// operation.
func NewRunner(snapshotFile, revisionsDir string, minInterval time.Duration, log *zap.SugaredLogger) *Runner {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{
		snapshots: NewSnapshotStore(snapshotFile),
		writer:    NewWriter(revisionsDir),
		limiter:   rate.NewLimiter(rate.Every(minInterval), 1),
		log:       log,
	}
}

// SnapshotPath returns the snapshot file location.
func (r *Runner) SnapshotPath() string {
	return r.snapshots.Path()
}

// RevisionsDir returns the generated-source directory.
func (r *Runner) RevisionsDir() string {
	return r.writer.Dir()
}

// TryGenerate is the watch-driven entry point: generation attempts beyond
// the configured rate are skipped.
func (r *Runner) TryGenerate(current map[string]string, steps []revision.Step) (string, bool, error) {
	if !r.limiter.Allow() {
		r.log.Debugw("Auto-revision rate limited, skipping generation")
		return "", false, nil
	}
	return r.Generate(current, steps)
}

// Generate detects manual changes against the snapshot and, when any exist,
// writes a new revision source file. It returns the written path and
// whether a file was generated.
func (r *Runner) Generate(current map[string]string, steps []revision.Step) (string, bool, error) {
	snapshot, err := r.snapshots.Load()
	if err != nil {
		return "", false, err
	}

	changes := Detect(current, snapshot)
	if changes.Empty() {
		r.log.Debugw("No manual changes detected")
		return "", false, nil
	}

	id := NextAutoID(steps)
	src := GenerateSource(r.writer.Package(), id, DefaultDescription, changes)
	path, err := r.writer.Write(id, src)
	if err != nil {
		return "", false, err
	}

	r.log.Infow("Generated revision from manual changes",
		"rev_id", id,
		"path", path,
		"added", len(changes.Added),
		"modified", len(changes.Modified),
		"removed", len(changes.Removed),
	)
	return path, true, nil
}

// RecordUpgrade saves the document state an upgrade just reached, making it
// the new baseline for change detection.
func (r *Runner) RecordUpgrade(current map[string]string) error {
	return r.snapshots.Save(current)
}
