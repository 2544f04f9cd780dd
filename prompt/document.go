// Package prompt owns the persisted prompt document and its rendering
// pipeline. A document is an ordered name → raw template mapping stored as
// flat YAML. Rendering happens at read time in two phases: inline directives
// like {{date:format=%Y}} first, then generic {{variable}} substitution from
// the rendering context. Raw templates are stored verbatim, never
// pre-rendered.
package prompt

// Document is an ordered mapping of prompt name to raw template text.
// Names are unique and case preserved; iteration order is document order
// on disk plus insertion order for additions.
type Document struct {
	names  []string
	values map[string]string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		values: make(map[string]string),
	}
}

// Get returns the raw template for name.
func (d *Document) Get(name string) (string, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Set adds or updates a prompt. New names append at the end; existing names
// keep their position.
func (d *Document) Set(name, value string) {
	if _, ok := d.values[name]; !ok {
		d.names = append(d.names, name)
	}
	d.values[name] = value
}

// Delete removes a prompt, reporting whether it existed.
func (d *Document) Delete(name string) bool {
	if _, ok := d.values[name]; !ok {
		return false
	}
	delete(d.values, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return true
}

// Rename changes a prompt's name in place, keeping its position and value.
// Returns false if from does not exist or to already exists.
func (d *Document) Rename(from, to string) bool {
	if from == to {
		_, ok := d.values[from]
		return ok
	}
	v, ok := d.values[from]
	if !ok {
		return false
	}
	if _, exists := d.values[to]; exists {
		return false
	}
	delete(d.values, from)
	d.values[to] = v
	for i, n := range d.names {
		if n == from {
			d.names[i] = to
			break
		}
	}
	return true
}

// Names returns the prompt names in document order.
func (d *Document) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Len returns the number of prompts.
func (d *Document) Len() int {
	return len(d.names)
}

// Clone returns an independent copy.
func (d *Document) Clone() *Document {
	out := &Document{
		names:  make([]string, len(d.names)),
		values: make(map[string]string, len(d.values)),
	}
	copy(out.names, d.names)
	for k, v := range d.values {
		out.values[k] = v
	}
	return out
}

// Map returns a flat copy of the mapping, losing order. Used for snapshot
// comparison and change detection.
func (d *Document) Map() map[string]string {
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Equal reports whether two documents hold the same names in the same order
// with the same values.
func (d *Document) Equal(other *Document) bool {
	if other == nil || len(d.names) != len(other.names) {
		return false
	}
	for i, n := range d.names {
		if other.names[i] != n {
			return false
		}
		if d.values[n] != other.values[n] {
			return false
		}
	}
	return true
}
