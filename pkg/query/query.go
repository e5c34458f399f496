// Package query implements the top-k document-at-a-time and
// term-at-a-time traversal algorithms over scored posting cursors:
// Ranked-OR/AND, WAND, MaxScore, their block-max variants, and the two
// TAAT accumulator strategies.
package query

import "github.com/kittclouds/ixcore/pkg/posting"

// DocidMax is the sentinel returned by an exhausted cursor.
const DocidMax = posting.DocidMax

// Cursor is the minimal interface every traversal algorithm needs: a
// current position, the ability to advance it, and a score at that
// position. pkg/cursor.ScoredCursor and its embedders all satisfy this.
type Cursor interface {
	Docid() uint32
	Next() uint32
	NextGeq(d uint32) uint32
	Score() float32
}

// MaxCursor additionally exposes the term's global score upper bound,
// which WAND and MaxScore sort cursors and compute pivots by.
type MaxCursor interface {
	Cursor
	Weight() float32
}

// BlockMaxCursor additionally exposes a per-block score upper bound,
// letting Block-Max WAND/MaxScore skip past blocks whose local bound
// already fails the pivot test.
type BlockMaxCursor interface {
	MaxCursor
	BlockMaxScore(d uint32) (float32, bool)
}

// Hit is one scored result.
type Hit struct {
	Docid uint32
	Score float32
}
