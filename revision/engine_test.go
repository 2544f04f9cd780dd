package revision

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/prompt"
)

func testEngine(t *testing.T) (*Engine, *Registry, *prompt.Store) {
	t.Helper()
	dir := t.TempDir()
	reg := NewRegistry()
	store := prompt.NewStore(filepath.Join(dir, "prompts.yaml"), nil)
	state := NewFileStateStore(filepath.Join(dir, ".promptrev.state.json"))
	return NewEngine(reg, store, state, nil), reg, store
}

func setPrompt(name, value string) Transform {
	return func(doc *prompt.Document) error {
		doc.Set(name, value)
		return nil
	}
}

func TestUpgradeAppliesInOrder(t *testing.T) {
	engine, reg, store := testEngine(t)

	var order []string
	track := func(id string) Transform {
		return func(doc *prompt.Document) error {
			order = append(order, id)
			doc.Set(id, "applied")
			return nil
		}
	}

	// Registration order deliberately differs from application order
	require.NoError(t, reg.Register("002_b", "second", track("002_b")))
	require.NoError(t, reg.Register("010_a", "third", track("010_a")))
	require.NoError(t, reg.Register("001_c", "first", track("001_c")))

	doc, err := store.Load()
	require.NoError(t, err)

	applied, doc, err := engine.Upgrade(doc, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"001_c", "002_b", "010_a"}, applied)
	assert.Equal(t, applied, order)
	assert.Equal(t, 3, doc.Len())

	current, ok := engine.Current()
	require.True(t, ok)
	assert.Equal(t, "010_a", current)
}

func TestUpgradeSelectiveTarget(t *testing.T) {
	engine, reg, store := testEngine(t)
	require.NoError(t, reg.Register("001_one", "", setPrompt("ONE", "1")))
	require.NoError(t, reg.Register("002_two", "", setPrompt("TWO", "2")))
	require.NoError(t, reg.Register("003_three", "", setPrompt("THREE", "3")))

	doc, err := store.Load()
	require.NoError(t, err)

	applied, doc, err := engine.Upgrade(doc, "002_two")
	require.NoError(t, err)
	assert.Equal(t, []string{"001_one", "002_two"}, applied)

	_, ok := doc.Get("THREE")
	assert.False(t, ok, "steps past the target are not applied")

	current, _ := engine.Current()
	assert.Equal(t, "002_two", current)

	// A later untargeted upgrade picks up the remainder
	applied, doc, err = engine.Upgrade(doc, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"003_three"}, applied)

	v, ok := doc.Get("THREE")
	require.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestUpgradeUnknownTarget(t *testing.T) {
	engine, reg, store := testEngine(t)
	require.NoError(t, reg.Register("001_one", "", setPrompt("ONE", "1")))

	doc, err := store.Load()
	require.NoError(t, err)

	applied, doc, err := engine.Upgrade(doc, "042_missing")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownTargetError(err))
	assert.Contains(t, err.Error(), "042_missing")

	// Nothing was applied before the failure
	assert.Empty(t, applied)
	assert.Equal(t, 0, doc.Len())
	_, ok := engine.Current()
	assert.False(t, ok)
}

func TestUpgradePartialFailure(t *testing.T) {
	engine, reg, store := testEngine(t)
	require.NoError(t, reg.Register("001_seed", "", setPrompt("ONE", "1")))
	require.NoError(t, reg.Register("002_grow", "", setPrompt("TWO", "2")))
	require.NoError(t, reg.Register("003_boom", "always fails", func(doc *prompt.Document) error {
		doc.Set("THREE", "3")
		return fmt.Errorf("storage full")
	}))

	doc, err := store.Load()
	require.NoError(t, err)

	applied, doc, err := engine.Upgrade(doc, "")
	require.Error(t, err)
	assert.True(t, errors.IsMigrationApplyError(err))
	assert.Contains(t, err.Error(), "003_boom")
	assert.Contains(t, err.Error(), "storage full")

	assert.Equal(t, []string{"001_seed", "002_grow"}, applied)

	current, ok := engine.Current()
	require.True(t, ok)
	assert.Equal(t, "002_grow", current)

	// The failing step's mutation leaked neither into memory nor onto disk
	_, ok = doc.Get("THREE")
	assert.False(t, ok)

	onDisk, err := store.Load()
	require.NoError(t, err)
	_, ok = onDisk.Get("THREE")
	assert.False(t, ok)
	v, _ := onDisk.Get("TWO")
	assert.Equal(t, "2", v)
}

func TestUpgradeIdempotent(t *testing.T) {
	engine, reg, store := testEngine(t)
	require.NoError(t, reg.Register("001_seed", "", setPrompt("GREETING", "Hello!")))
	require.NoError(t, reg.Register("002_tone", "", setPrompt("GREETING", "Hello there!")))

	doc, err := store.Load()
	require.NoError(t, err)

	_, doc, err = engine.Upgrade(doc, "")
	require.NoError(t, err)
	first, _ := engine.Current()

	applied, again, err := engine.Upgrade(doc, "")
	require.NoError(t, err)
	assert.Empty(t, applied, "second upgrade is a no-op")

	second, _ := engine.Current()
	assert.Equal(t, first, second)
	assert.True(t, doc.Equal(again))
}

func TestUpgradeRecoversPanickingTransform(t *testing.T) {
	engine, reg, store := testEngine(t)
	require.NoError(t, reg.Register("001_bad", "", func(doc *prompt.Document) error {
		panic("transform bug")
	}))

	doc, err := store.Load()
	require.NoError(t, err)

	_, _, err = engine.Upgrade(doc, "")
	require.Error(t, err)
	assert.True(t, errors.IsMigrationApplyError(err))
	assert.Contains(t, err.Error(), "panicked")
	assert.Contains(t, err.Error(), "001_bad")
}

func TestUpgradePersistsStateAfterEachStep(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry()
	store := prompt.NewStore(filepath.Join(dir, "prompts.yaml"), nil)
	statePath := filepath.Join(dir, "state.json")
	engine := NewEngine(reg, store, NewFileStateStore(statePath), nil)

	require.NoError(t, reg.Register("001_ok", "", setPrompt("A", "1")))
	require.NoError(t, reg.Register("002_fail", "", func(doc *prompt.Document) error {
		return fmt.Errorf("no")
	}))

	doc, err := store.Load()
	require.NoError(t, err)
	_, _, err = engine.Upgrade(doc, "")
	require.Error(t, err)

	// A fresh state store sees the completed step on disk
	fresh := NewFileStateStore(statePath)
	applied, err := fresh.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_ok"}, applied)
}

func TestPending(t *testing.T) {
	engine, reg, store := testEngine(t)
	require.NoError(t, reg.Register("001_one", "", setPrompt("ONE", "1")))
	require.NoError(t, reg.Register("002_two", "", setPrompt("TWO", "2")))
	require.NoError(t, reg.Register("003_three", "", setPrompt("THREE", "3")))

	pending, err := engine.Pending("")
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	pending, err = engine.Pending("002_two")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = engine.Pending("nope")
	assert.True(t, errors.IsUnknownTargetError(err))

	doc, err := store.Load()
	require.NoError(t, err)
	_, _, err = engine.Upgrade(doc, "")
	require.NoError(t, err)

	pending, err = engine.Pending("")
	require.NoError(t, err)
	assert.Empty(t, pending)
}
