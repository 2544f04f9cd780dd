// Package revision implements the migration machinery for prompt documents:
// step registration, numeric-prefix ordering, the durable applied-revision
// log, and the engine that applies pending steps in order. Steps are
// registered explicitly during application startup so the registry is fully
// populated before the first upgrade.
package revision

import (
	"strconv"
	"strings"

	"github.com/teranos/promptrev/prompt"
)

// Transform mutates a scratch copy of the prompt document. The engine
// discards the copy when the transform errors or panics, so a failed step
// never leaves partial mutations in memory or on disk.
type Transform func(doc *prompt.Document) error

// Step is one registered revision: an identifier sortable by numeric prefix
// (convention NNN_label), a human-readable description, and the transform.
// Registered once, immutable thereafter.
type Step struct {
	ID          string
	Description string
	Transform   Transform
}

// CompareIDs orders revision identifiers: the leading run of digits is
// compared numerically and the remaining suffix as text, so "002_x" sorts
// before "010_y" regardless of string length. Identifiers without a numeric
// prefix sort after all numbered identifiers, by full string. The ordering
// is total; distinct identifiers may still compare equal when their numeric
// prefixes differ only in zero padding ("2_x" vs "002_x").
func CompareIDs(a, b string) int {
	aNum, aRest, aOK := splitNumericPrefix(a)
	bNum, bRest, bOK := splitNumericPrefix(b)

	switch {
	case aOK && bOK:
		if aNum != bNum {
			if aNum < bNum {
				return -1
			}
			return 1
		}
		return strings.Compare(aRest, bRest)
	case aOK:
		return -1
	case bOK:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Less reports whether a orders before b under CompareIDs.
func Less(a, b string) bool {
	return CompareIDs(a, b) < 0
}

// splitNumericPrefix splits "012_rename" into (12, "_rename", true).
// Returns ok=false when the identifier has no leading digits or the digit
// run does not fit in an int.
func splitNumericPrefix(id string) (int, string, bool) {
	i := 0
	for i < len(id) && id[i] >= '0' && id[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, id, false
	}
	n, err := strconv.Atoi(id[:i])
	if err != nil {
		return 0, id, false
	}
	return n, id[i:], true
}
