package autorev

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/promptrev/revision"
)

func TestGenerateSource(t *testing.T) {
	changes := Changes{
		Added:    map[string]string{"NEW_PROMPT": "Brand new prompt", "ANOTHER": "Also new"},
		Modified: map[string]string{"SYSTEM": `Say "hi"`},
		Removed:  []string{"OLD"},
	}

	src := string(GenerateSource("revisions", "003_auto_changes", DefaultDescription, changes))

	assert.Contains(t, src, "package revisions\n")
	assert.Contains(t, src, `import "github.com/teranos/promptrev/prompt"`)
	assert.Contains(t, src, `id:          "003_auto_changes",`)
	assert.Contains(t, src, `description: "Auto-generated from manual changes",`)
	assert.Contains(t, src, "func migrate003AutoChanges(doc *prompt.Document) error {")

	// Quoting survives embedded quotes
	assert.Contains(t, src, `doc.Set("SYSTEM", "Say \"hi\"")`)
	assert.Contains(t, src, `doc.Delete("OLD")`)
	assert.Contains(t, src, "return nil")

	// Additions come out in name order
	require.Less(t,
		strings.Index(src, `doc.Set("ANOTHER"`),
		strings.Index(src, `doc.Set("NEW_PROMPT"`),
	)
}

func TestGenerateSource_SectionsOmittedWhenEmpty(t *testing.T) {
	src := string(GenerateSource("revisions", "001_auto_changes", DefaultDescription, Changes{
		Added: map[string]string{"ONLY": "one"},
	}))

	assert.Contains(t, src, "// Add new prompts")
	assert.NotContains(t, src, "// Update modified prompts")
	assert.NotContains(t, src, "// Remove deleted prompts")
}

func TestNextAutoID(t *testing.T) {
	tests := []struct {
		name  string
		steps []revision.Step
		want  string
	}{
		{
			name: "no steps",
			want: "001_auto_changes",
		},
		{
			name:  "increments past highest prefix",
			steps: []revision.Step{{ID: "001_seed"}, {ID: "002_weather"}},
			want:  "003_auto_changes",
		},
		{
			name:  "prefix compared numerically",
			steps: []revision.Step{{ID: "2_x"}, {ID: "010_y"}},
			want:  "011_auto_changes",
		},
		{
			name:  "unnumbered steps do not count",
			steps: []revision.Step{{ID: "legacy_cleanup"}},
			want:  "001_auto_changes",
		},
		{
			name:  "unnumbered trailing step does not mask numbered ones",
			steps: []revision.Step{{ID: "004_auto_changes"}, {ID: "legacy_cleanup"}},
			want:  "005_auto_changes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextAutoID(tt.steps))
		})
	}
}

func TestIDIdentifier(t *testing.T) {
	assert.Equal(t, "003AutoChanges", idIdentifier("003_auto_changes"))
	assert.Equal(t, "LegacyCleanup", idIdentifier("legacy_cleanup"))
	assert.Equal(t, "001X", idIdentifier("001__x"))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "revisions", packageName("revisions"))
	assert.Equal(t, "my_revs", packageName("My-Revs"))
	assert.Equal(t, "revisions", packageName("123"))
	assert.Equal(t, "revisions", packageName(""))
}
