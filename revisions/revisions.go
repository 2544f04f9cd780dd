// Package revisions ships the built-in revision set for the prompt
// document. Each file contributes one catalog entry from its init
// function; nothing reaches a registry until RegisterAll is called, so
// importing the package has no process-wide effect.
package revisions

import (
	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/revision"
)

// entry is one shipped revision waiting for explicit registration.
type entry struct {
	id          string
	description string
	transform   revision.Transform
}

// catalog collects the entries contributed by each revision file,
// auto-generated ones included.
var catalog []entry

// RegisterAll registers every shipped revision into reg. Apply order comes
// from the registry's identifier ordering, not catalog order.
func RegisterAll(reg *revision.Registry) error {
	for _, e := range catalog {
		if err := reg.Register(e.id, e.description, e.transform); err != nil {
			return errors.Wrapf(err, "register shipped revision %s", e.id)
		}
	}
	return nil
}
