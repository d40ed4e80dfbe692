// Package vocab implements the persistent token vocabulary: a bidirectional
// mapping between token strings and integer IDs, plus its durable JSON
// representation on disk.
//
// IDs are assigned in strictly increasing insertion order starting at 0 and
// are never reused. The reserved token Unknown is present in every initialized
// vocabulary and, being the first insertion, conventionally holds ID 0.
package vocab

import "sort"

// Unknown is the reserved marker token standing in for any token absent from
// the vocabulary when expansion is disabled.
const Unknown = "[UNK]"

// Vocabulary is an in-memory token<->ID mapping with a monotonic ID counter.
// The zero value is not usable; create instances with New, Store.Init or
// Store.Load.
//
// Invariant: the forward and reverse maps are exact inverses at all times,
// and next is strictly greater than every assigned ID.
type Vocabulary struct {
	tokens map[string]int
	ids    map[int]string
	next   int
}

// Entry is one (token, ID) pair of a vocabulary snapshot.
type Entry struct {
	Token string `json:"token"`
	ID    int    `json:"id"`
}

// New returns an empty, uninitialized vocabulary: zero entries, next ID 0.
func New() *Vocabulary {
	return &Vocabulary{
		tokens: make(map[string]int),
		ids:    make(map[int]string),
	}
}

// Init returns a fresh initialized vocabulary: empty except for the Unknown
// marker, which receives ID 0.
func Init() *Vocabulary {
	v := New()
	v.Insert(Unknown)
	return v
}

// Insert returns the ID of tok, inserting it with the next free ID if absent.
// Inserting an existing token is a no-op returning its current ID.
func (v *Vocabulary) Insert(tok string) int {
	if id, ok := v.tokens[tok]; ok {
		return id
	}
	id := v.next
	v.next++
	v.tokens[tok] = id
	v.ids[id] = tok
	return id
}

// Lookup returns the ID for tok, if present.
func (v *Vocabulary) Lookup(tok string) (int, bool) {
	id, ok := v.tokens[tok]
	return id, ok
}

// Token returns the token for id, if assigned.
func (v *Vocabulary) Token(id int) (string, bool) {
	tok, ok := v.ids[id]
	return tok, ok
}

// UnknownID returns the ID of the Unknown marker. It is absent only on an
// uninitialized vocabulary.
func (v *Vocabulary) UnknownID() (int, bool) {
	return v.Lookup(Unknown)
}

// Len returns the number of entries.
func (v *Vocabulary) Len() int { return len(v.tokens) }

// Initialized reports whether the vocabulary has at least one entry. Encoding
// and decoding require an initialized vocabulary.
func (v *Vocabulary) Initialized() bool { return len(v.tokens) > 0 }

// NextID returns the ID the next inserted token would receive.
func (v *Vocabulary) NextID() int { return v.next }

// HasUnknown reports whether the Unknown marker is present.
func (v *Vocabulary) HasUnknown() bool {
	_, ok := v.tokens[Unknown]
	return ok
}

// Clone returns a deep copy. Mutating the copy never affects the original, so
// it is safe to hand to callers outside the owning session.
func (v *Vocabulary) Clone() *Vocabulary {
	c := &Vocabulary{
		tokens: make(map[string]int, len(v.tokens)),
		ids:    make(map[int]string, len(v.ids)),
		next:   v.next,
	}
	for tok, id := range v.tokens {
		c.tokens[tok] = id
		c.ids[id] = tok
	}
	return c
}

// Entries returns a snapshot of all (token, ID) pairs sorted by ID.
func (v *Vocabulary) Entries() []Entry {
	entries := make([]Entry, 0, len(v.tokens))
	for tok, id := range v.tokens {
		entries = append(entries, Entry{Token: tok, ID: id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
