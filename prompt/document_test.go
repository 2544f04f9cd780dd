package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSetPreservesOrder(t *testing.T) {
	doc := NewDocument()
	doc.Set("SYSTEM", "You are helpful.")
	doc.Set("GREETING", "Hello!")
	doc.Set("FAREWELL", "Bye!")

	assert.Equal(t, []string{"SYSTEM", "GREETING", "FAREWELL"}, doc.Names())

	// Updating an existing name keeps its position
	doc.Set("GREETING", "Hi there!")
	assert.Equal(t, []string{"SYSTEM", "GREETING", "FAREWELL"}, doc.Names())

	v, ok := doc.Get("GREETING")
	require.True(t, ok)
	assert.Equal(t, "Hi there!", v)
}

func TestDocumentDelete(t *testing.T) {
	doc := NewDocument()
	doc.Set("A", "1")
	doc.Set("B", "2")
	doc.Set("C", "3")

	assert.True(t, doc.Delete("B"))
	assert.Equal(t, []string{"A", "C"}, doc.Names())
	assert.Equal(t, 2, doc.Len())

	_, ok := doc.Get("B")
	assert.False(t, ok)

	assert.False(t, doc.Delete("B"), "deleting a missing name reports false")
}

func TestDocumentRename(t *testing.T) {
	doc := NewDocument()
	doc.Set("A", "1")
	doc.Set("B", "2")
	doc.Set("C", "3")

	t.Run("keeps position and value", func(t *testing.T) {
		require.True(t, doc.Rename("B", "MIDDLE"))
		assert.Equal(t, []string{"A", "MIDDLE", "C"}, doc.Names())

		v, ok := doc.Get("MIDDLE")
		require.True(t, ok)
		assert.Equal(t, "2", v)
	})

	t.Run("missing source", func(t *testing.T) {
		assert.False(t, doc.Rename("NOPE", "X"))
	})

	t.Run("existing destination", func(t *testing.T) {
		assert.False(t, doc.Rename("A", "C"))
		_, ok := doc.Get("A")
		assert.True(t, ok, "failed rename leaves source intact")
	})

	t.Run("rename to self", func(t *testing.T) {
		assert.True(t, doc.Rename("A", "A"))
	})
}

func TestDocumentClone(t *testing.T) {
	doc := NewDocument()
	doc.Set("A", "1")
	doc.Set("B", "2")

	clone := doc.Clone()
	require.True(t, doc.Equal(clone))

	clone.Set("C", "3")
	clone.Set("A", "changed")

	// Original is untouched
	assert.Equal(t, 2, doc.Len())
	v, _ := doc.Get("A")
	assert.Equal(t, "1", v)
	assert.False(t, doc.Equal(clone))
}

func TestDocumentEqual(t *testing.T) {
	a := NewDocument()
	a.Set("X", "1")
	a.Set("Y", "2")

	b := NewDocument()
	b.Set("Y", "2")
	b.Set("X", "1")

	// Same content, different order
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))

	c := NewDocument()
	c.Set("X", "1")
	c.Set("Y", "2")
	assert.True(t, a.Equal(c))
}

func TestDocumentMap(t *testing.T) {
	doc := NewDocument()
	doc.Set("A", "1")

	m := doc.Map()
	m["A"] = "mutated"
	m["B"] = "new"

	v, _ := doc.Get("A")
	assert.Equal(t, "1", v, "Map returns a copy")
	assert.Equal(t, 1, doc.Len())
}
