package revision

import (
	"go.uber.org/zap"

	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/prompt"
)

// DocumentStore is the persistence surface the engine drives. prompt.Store
// satisfies it.
type DocumentStore interface {
	Load() (*prompt.Document, error)
	Save(doc *prompt.Document) error
}

// Engine computes pending steps and applies them in order, persisting the
// document and the applied log after every step. It never mutates the
// caller's document: Upgrade returns the document at the last successfully
// applied step.
type Engine struct {
	registry *Registry
	docs     DocumentStore
	state    StateStore
	log      *zap.SugaredLogger
}

// NewEngine wires a registry, a document store and a state store. log may
// be nil for silent operation.
func NewEngine(registry *Registry, docs DocumentStore, state StateStore, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		registry: registry,
		docs:     docs,
		state:    state,
		log:      log,
	}
}

// Upgrade applies every pending step in order, stopping inclusively at
// target when given. It returns the identifiers applied during this call
// and the resulting document. On a step failure the returned document and
// the durable state both reflect exactly the steps that completed; the
// error names the failing revision. Calling Upgrade again with nothing
// pending is a successful no-op.
func (e *Engine) Upgrade(doc *prompt.Document, target string) ([]string, *prompt.Document, error) {
	applied, err := e.state.Load()
	if err != nil {
		return nil, doc, errors.Wrap(err, "load revision state")
	}
	current := ""
	if len(applied) > 0 {
		current = applied[len(applied)-1]
	}

	pending, err := e.pendingSteps(current, target)
	if err != nil {
		return nil, doc, err
	}
	if len(pending) == 0 {
		e.log.Debugw("No pending revisions",
			"current_rev", current,
		)
		return nil, doc, nil
	}

	e.log.Infow("Applying pending revisions",
		"count", len(pending),
		"current_rev", current,
		"target", target,
	)

	var done []string
	for _, step := range pending {
		e.log.Infow("Applying revision",
			"rev_id", step.ID,
			"description", step.Description,
		)

		work := doc.Clone()
		if err := runTransform(step, work); err != nil {
			return done, doc, errors.WrapMigrationApply(err, step.ID)
		}

		if err := e.docs.Save(work); err != nil {
			return done, doc, errors.Wrapf(err, "persist document after revision %s", step.ID)
		}
		if err := e.state.Append(step.ID); err != nil {
			return done, doc, errors.Wrapf(err, "record revision %s", step.ID)
		}

		doc = work
		done = append(done, step.ID)
	}

	e.log.Infow("Upgrade complete",
		"applied", len(done),
		"current_rev", done[len(done)-1],
	)
	return done, doc, nil
}

// Pending returns the steps Upgrade would apply, without side effects.
func (e *Engine) Pending(target string) ([]Step, error) {
	current, _ := e.state.Current()
	return e.pendingSteps(current, target)
}

// Current returns the last applied revision.
func (e *Engine) Current() (string, bool) {
	return e.state.Current()
}

// Applied returns the full applied sequence.
func (e *Engine) Applied() ([]string, error) {
	return e.state.Load()
}

// ListSteps returns every registered step in application order.
func (e *Engine) ListSteps() []Step {
	return e.registry.All()
}

// pendingSteps computes the ordered pending list: registered steps beyond
// current, truncated inclusively at target. An unregistered target fails
// before anything is applied.
func (e *Engine) pendingSteps(current, target string) ([]Step, error) {
	if target != "" {
		if _, ok := e.registry.Get(target); !ok {
			return nil, errors.NewUnknownTargetError(target)
		}
	}

	var pending []Step
	for _, step := range e.registry.All() {
		if current != "" && CompareIDs(step.ID, current) <= 0 {
			continue
		}
		if target != "" && CompareIDs(step.ID, target) > 0 {
			break
		}
		pending = append(pending, step)
	}
	return pending, nil
}

// runTransform executes one step's transform on the scratch document,
// converting panics into errors so a misbehaving transform cannot take the
// process down.
func runTransform(step Step, doc *prompt.Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("transform panicked: %v", r)
		}
	}()
	return step.Transform(doc)
}
