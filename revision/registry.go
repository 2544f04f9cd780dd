package revision

import (
	"sort"
	"sync"

	"github.com/teranos/promptrev/errors"
)

// Registry is the catalogue of registered revision steps. Registration
// order is insertion order; application order is by CompareIDs. A step is
// registered once; re-registering an identifier is an error, never a silent
// overwrite.
type Registry struct {
	mu    sync.Mutex
	steps map[string]Step
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		steps: make(map[string]Step),
	}
}

// Register adds one revision step. Fails with ErrDuplicateRevision if id is
// already registered.
func (r *Registry) Register(id, description string, fn Transform) error {
	if id == "" {
		return errors.New("empty revision id")
	}
	if fn == nil {
		return errors.Newf("revision %q has a nil transform", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.steps[id]; exists {
		return errors.NewDuplicateRevisionError(id)
	}
	r.steps[id] = Step{ID: id, Description: description, Transform: fn}
	r.order = append(r.order, id)
	return nil
}

// Get returns the step registered under id.
func (r *Registry) Get(id string) (Step, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	step, ok := r.steps[id]
	return step, ok
}

// All returns every registered step ordered by CompareIDs. Steps whose
// identifiers compare equal keep registration order.
func (r *Registry) All() []Step {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Step, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.steps[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i].ID, out[j].ID)
	})
	return out
}

// Len returns the number of registered steps.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}

// defaultRegistry backs the package-level convenience functions. It is a
// thin layer over an ordinary Registry; components always take a *Registry
// and never reach for this implicitly.
var defaultRegistry = NewRegistry()

// Default returns the process-wide convenience registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a step to the default registry.
func Register(id, description string, fn Transform) error {
	return defaultRegistry.Register(id, description, fn)
}
