// Package selection implements the cumulative export selection: a set
// of node IDs grown and shrunk one 1-hop neighborhood at a time.
package selection

import "sort"

// Set is a mutable set of node IDs.
type Set map[string]bool

// NewSet creates a set from the given IDs.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Has reports membership.
func (s Set) Has(id string) bool { return s[id] }

// Add inserts an ID.
func (s Set) Add(id string) { s[id] = true }

// Remove deletes an ID.
func (s Set) Remove(id string) { delete(s, id) }

// Len returns the number of selected IDs.
func (s Set) Len() int { return len(s) }

// IDs returns the members in sorted order, for deterministic output.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = true
	}
	return c
}

// Clear removes every member in place.
func (s Set) Clear() {
	for id := range s {
		delete(s, id)
	}
}
