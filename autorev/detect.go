package autorev

import "sort"

// Changes is the difference between the live document and the last-migrated
// snapshot.
type Changes struct {
	Added    map[string]string
	Modified map[string]string
	Removed  []string
}

// Empty reports whether there is nothing to capture.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0
}

// Count returns the total number of changed names.
func (c Changes) Count() int {
	return len(c.Added) + len(c.Modified) + len(c.Removed)
}

// Detect diffs the current document mapping against the snapshot. A nil or
// empty snapshot means no upgrade has recorded one yet; every current entry
// then reports as added, so hand-seeded documents get captured into a first
// revision.
func Detect(current, snapshot map[string]string) Changes {
	changes := Changes{
		Added:    make(map[string]string),
		Modified: make(map[string]string),
	}

	if len(snapshot) == 0 {
		for name, value := range current {
			changes.Added[name] = value
		}
		return changes
	}

	for name, value := range current {
		prev, ok := snapshot[name]
		switch {
		case !ok:
			changes.Added[name] = value
		case prev != value:
			changes.Modified[name] = value
		}
	}
	for name := range snapshot {
		if _, ok := current[name]; !ok {
			changes.Removed = append(changes.Removed, name)
		}
	}
	sort.Strings(changes.Removed)

	return changes
}
