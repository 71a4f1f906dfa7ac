// Package services – lookup keys
//
// A location can be addressed either by its per-owner numeric id or by its
// exact name. The choice is made exactly once, at the transport boundary,
// and carried through the service layer as a tagged key so that the store
// never has to re-parse an ambiguous string.
package services

import (
	"strconv"
	"strings"
)

// LookupKey identifies one location within an owner's scope, either by
// numeric id or by exact name. The zero value matches nothing.
type LookupKey struct {
	id   int
	name string
	byID bool
}

// KeyByID returns a key addressing a location by its per-owner id.
func KeyByID(id int) LookupKey { return LookupKey{id: id, byID: true} }

// KeyByName returns a key addressing a location by exact name.
func KeyByName(name string) LookupKey { return LookupKey{name: name} }

// ParseKey builds a key from raw user input: input that parses as an integer
// addresses by id, anything else addresses by name. Surrounding whitespace is
// ignored.
func ParseKey(raw string) LookupKey {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return KeyByID(n)
	}
	return KeyByName(raw)
}

// String renders the key for log fields and error messages.
func (k LookupKey) String() string {
	if k.byID {
		return "#" + strconv.Itoa(k.id)
	}
	return k.name
}
