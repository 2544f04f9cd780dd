package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "wrapped: %d", 42)

	assert.Contains(t, wrapped.Error(), "wrapped: 42")
	assert.Contains(t, wrapped.Error(), "original")
}

func TestStackTracePreserved(t *testing.T) {
	err := New("with stack")
	formatted := fmt.Sprintf("%+v", err)
	assert.Contains(t, formatted, "errors_test.go")
}

func TestDuplicateRevisionError(t *testing.T) {
	err := NewDuplicateRevisionError("001_seed")

	require.NotNil(t, err)
	assert.True(t, IsDuplicateRevisionError(err))
	assert.False(t, IsUnknownTargetError(err))
	assert.Contains(t, err.Error(), "001_seed")

	wrapped := Wrap(err, "registering revisions")
	assert.True(t, IsDuplicateRevisionError(wrapped))
}

func TestUnknownTargetError(t *testing.T) {
	err := NewUnknownTargetError("099_missing")

	assert.True(t, IsUnknownTargetError(err))
	assert.Contains(t, err.Error(), "099_missing")
}

func TestWrapMigrationApply(t *testing.T) {
	cause := New("transform exploded")
	err := WrapMigrationApply(cause, "003_broken")

	assert.True(t, IsMigrationApplyError(err))
	assert.Contains(t, err.Error(), "003_broken")
	assert.Contains(t, err.Error(), "transform exploded")
}

func TestNameNotFoundError(t *testing.T) {
	t.Run("enumerates known names", func(t *testing.T) {
		err := NewNameNotFoundError("greting", []string{"GREETING", "SYSTEM"})

		assert.True(t, IsNameNotFoundError(err))
		assert.Contains(t, err.Error(), `"greting"`)
		assert.Contains(t, err.Error(), "GREETING, SYSTEM")
	})

	t.Run("empty document", func(t *testing.T) {
		err := NewNameNotFoundError("anything", nil)

		assert.True(t, IsNameNotFoundError(err))
		assert.Contains(t, err.Error(), "no prompts loaded")
	})
}

func TestIsHelpersNilSafe(t *testing.T) {
	assert.False(t, IsDuplicateRevisionError(nil))
	assert.False(t, IsUnknownTargetError(nil))
	assert.False(t, IsMigrationApplyError(nil))
	assert.False(t, IsNameNotFoundError(nil))
}
