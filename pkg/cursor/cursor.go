// Package cursor assembles posting cursors, scorers, and WAND auxiliary
// data into the three cursor flavors the query algorithms operate over:
// plain scored cursors (Ranked-OR/AND, TAAT), term-max-bounded cursors
// (WAND, MaxScore), and block-max-bounded cursors (Block-Max WAND/MaxScore).
package cursor

import (
	"math"

	"github.com/kittclouds/ixcore/pkg/posting"
	"github.com/kittclouds/ixcore/pkg/scorer"
)

// ScoredCursor pairs a posting cursor with a scorer resolved against the
// collection statistics, and a document-length lookup.
type ScoredCursor struct {
	postings *posting.Cursor
	score    scorer.Scorer
	docLenOf func(uint32) uint32
}

// NewScoredCursor builds a ScoredCursor over an already-open posting cursor.
func NewScoredCursor(postings *posting.Cursor, score scorer.Scorer, docLenOf func(uint32) uint32) *ScoredCursor {
	return &ScoredCursor{postings: postings, score: score, docLenOf: docLenOf}
}

// Docid returns the current docid, or posting.DocidMax if exhausted.
func (c *ScoredCursor) Docid() uint32 { return c.postings.Docid() }

// Next advances by one posting.
func (c *ScoredCursor) Next() uint32 { return c.postings.Next() }

// NextGeq advances to the smallest docid >= d.
func (c *ScoredCursor) NextGeq(d uint32) uint32 { return c.postings.NextGeq(d) }

// Score returns the relevance score at the current docid, or 0 if
// exhausted.
func (c *ScoredCursor) Score() float32 {
	d := c.postings.Docid()
	if d == posting.DocidMax {
		return 0
	}
	return c.score(c.postings.Freq(), c.docLenOf(d))
}

// MaxScoredCursor additionally exposes the term's global score upper bound,
// the quantity WAND and MaxScore sort cursors and compute pivots by.
type MaxScoredCursor struct {
	ScoredCursor
	MaxWeight float32
}

// NewMaxScoredCursor builds a MaxScoredCursor. A term under the WAND
// build threshold should pass maxWeight=0, which Weight reports as an
// unbounded upper bound so query algorithms treat the term as
// non-prunable (always essential).
func NewMaxScoredCursor(postings *posting.Cursor, score scorer.Scorer, docLenOf func(uint32) uint32, maxWeight float32) *MaxScoredCursor {
	return &MaxScoredCursor{ScoredCursor: *NewScoredCursor(postings, score, docLenOf), MaxWeight: maxWeight}
}

// Weight returns the term's global score upper bound, or +Inf when
// MaxWeight is 0 (a non-prunable term).
func (c *MaxScoredCursor) Weight() float32 {
	if c.MaxWeight == 0 {
		return float32(math.Inf(1))
	}
	return c.MaxWeight
}

// blockMaxSource is satisfied by both wanddata.RawCursor and
// wanddata.CompressedCursor.
type blockMaxSource interface {
	MaxScore(d uint32) (float32, bool)
}

// BlockMaxScoredCursor adds a per-block maximum-score lookup on top of
// MaxScoredCursor, letting Block-Max WAND/MaxScore skip past blocks whose
// local upper bound already fails the pivot test.
type BlockMaxScoredCursor struct {
	MaxScoredCursor
	blocks blockMaxSource
}

// NewBlockMaxScoredCursor builds a BlockMaxScoredCursor. blocks may be nil
// for a non-prunable term, in which case BlockMaxScore degrades to the
// term-level bound.
func NewBlockMaxScoredCursor(postings *posting.Cursor, score scorer.Scorer, docLenOf func(uint32) uint32, maxWeight float32, blocks blockMaxSource) *BlockMaxScoredCursor {
	return &BlockMaxScoredCursor{MaxScoredCursor: *NewMaxScoredCursor(postings, score, docLenOf, maxWeight), blocks: blocks}
}

// BlockMaxScore returns the max score of the block covering docid d.
func (c *BlockMaxScoredCursor) BlockMaxScore(d uint32) (float32, bool) {
	if c.blocks == nil {
		return c.Weight(), true
	}
	return c.blocks.MaxScore(d)
}
