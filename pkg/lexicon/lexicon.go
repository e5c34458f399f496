// Package lexicon provides a minimal, in-memory term-to-term-id resolver.
// Real lexicon construction, stemming, and tokenization are external
// collaborators; this package exists so command-line tooling has
// something concrete to turn query text into the term-ID vectors the
// query engine actually consumes.
package lexicon

import (
	"fmt"

	"github.com/derekparker/trie/v3"
)

// Resolver maps term strings to the term IDs assigned when an index was
// built. It is a thin trie wrapper: exact lookups are O(len(term)), and
// it additionally supports prefix queries for tooling like autocomplete
// in a debug shell.
type Resolver struct {
	t      *trie.Trie
	byID   []string
	sealed bool
}

// NewResolver returns an empty resolver ready to accept terms via Add.
func NewResolver() *Resolver {
	return &Resolver{t: trie.New()}
}

// Add assigns term the next sequential term ID and returns it. Add panics
// if called after the resolver has been used for a lookup, since term IDs
// must stay fixed once resolution begins.
func (r *Resolver) Add(term string) uint32 {
	if r.sealed {
		panic("lexicon: Add called after resolution began")
	}
	id := uint32(len(r.byID))
	r.byID = append(r.byID, term)
	r.t.Add(term, id)
	return id
}

// Resolve looks up term's ID. The second return value is false if term
// was never added.
func (r *Resolver) Resolve(term string) (uint32, bool) {
	r.sealed = true
	node, ok := r.t.Find(term)
	if !ok {
		return 0, false
	}
	id, ok := node.Meta().(uint32)
	if !ok {
		return 0, false
	}
	return id, true
}

// Term returns the term string for id, or an error if id is out of range.
func (r *Resolver) Term(id uint32) (string, error) {
	if int(id) >= len(r.byID) {
		return "", fmt.Errorf("lexicon: term id %d out of range [0,%d)", id, len(r.byID))
	}
	return r.byID[id], nil
}

// NumTerms returns the number of distinct terms added so far.
func (r *Resolver) NumTerms() int { return len(r.byID) }

// PrefixSearch returns every added term sharing the given prefix, sorted
// as the underlying trie orders them.
func (r *Resolver) PrefixSearch(prefix string) []string {
	return r.t.PrefixSearch(prefix)
}
