package autorev

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/promptrev/revision"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()

	dir := t.TempDir()
	return NewRunner(
		filepath.Join(dir, "snapshot.json"),
		filepath.Join(dir, "revisions"),
		time.Hour,
		nil,
	)
}

func TestRunner_GenerateWritesRevision(t *testing.T) {
	runner := newTestRunner(t)
	require.NoError(t, runner.RecordUpgrade(map[string]string{"SYSTEM": "Initial prompt"}))

	current := map[string]string{
		"SYSTEM":     "Updated prompt",
		"NEW_PROMPT": "Brand new prompt",
	}
	steps := []revision.Step{{ID: "001_seed"}, {ID: "002_weather"}}

	path, generated, err := runner.Generate(current, steps)
	require.NoError(t, err)
	require.True(t, generated)
	assert.Equal(t, filepath.Join(runner.RevisionsDir(), "rev_003_auto_changes.go"), path)

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), `doc.Set("NEW_PROMPT", "Brand new prompt")`)
	assert.Contains(t, string(src), `doc.Set("SYSTEM", "Updated prompt")`)
}

func TestRunner_GenerateNoChanges(t *testing.T) {
	runner := newTestRunner(t)
	current := map[string]string{"SYSTEM": "Same"}
	require.NoError(t, runner.RecordUpgrade(current))

	path, generated, err := runner.Generate(current, nil)
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Empty(t, path)
}

func TestRunner_TryGenerateRateLimited(t *testing.T) {
	runner := newTestRunner(t)
	require.NoError(t, runner.RecordUpgrade(map[string]string{"SYSTEM": "Initial"}))

	current := map[string]string{"SYSTEM": "Changed"}

	_, generated, err := runner.TryGenerate(current, nil)
	require.NoError(t, err)
	assert.True(t, generated, "first attempt passes the limiter")

	// Immediately after, the limiter refuses
	_, generated, err = runner.TryGenerate(map[string]string{"SYSTEM": "Changed again"}, nil)
	require.NoError(t, err)
	assert.False(t, generated)
}

func TestRunner_RecordUpgradeResetsBaseline(t *testing.T) {
	runner := newTestRunner(t)
	current := map[string]string{"GREETING": "Hello"}

	require.NoError(t, runner.RecordUpgrade(current))

	_, generated, err := runner.Generate(current, nil)
	require.NoError(t, err)
	assert.False(t, generated, "snapshot matches current document")
}
