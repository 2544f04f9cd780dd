package revision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "sequential", a: "001_a", b: "002_b", want: -1},
		{name: "numeric not lexicographic", a: "002_x", b: "010_y", want: -1},
		{name: "reversed", a: "010_y", b: "002_x", want: 1},
		{name: "equal", a: "001_a", b: "001_a", want: 0},
		{name: "same prefix suffix breaks tie", a: "001_a", b: "001_b", want: -1},
		{name: "zero padding ignored", a: "2_x", b: "002_x", want: 0},
		{name: "unpadded beats padded larger", a: "9_z", b: "010_a", want: -1},
		{name: "numbered before unnumbered", a: "100_z", b: "legacy", want: -1},
		{name: "unnumbered after numbered", a: "legacy", b: "001_a", want: 1},
		{name: "both unnumbered compare as text", a: "alpha", b: "beta", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareIDs(tt.a, tt.b))
		})
	}
}

func TestLess(t *testing.T) {
	assert.True(t, Less("002_x", "010_y"))
	assert.False(t, Less("010_y", "002_x"))
	assert.False(t, Less("001_a", "001_a"))
}

func TestSplitNumericPrefix(t *testing.T) {
	n, rest, ok := splitNumericPrefix("012_rename")
	assert.True(t, ok)
	assert.Equal(t, 12, n)
	assert.Equal(t, "_rename", rest)

	_, _, ok = splitNumericPrefix("no_digits")
	assert.False(t, ok)

	n, rest, ok = splitNumericPrefix("7")
	assert.True(t, ok)
	assert.Equal(t, 7, n)
	assert.Equal(t, "", rest)

	// A digit run too large for int is treated as unnumbered
	_, _, ok = splitNumericPrefix("99999999999999999999_x")
	assert.False(t, ok)
}
