package posting

import (
	"fmt"

	"github.com/kittclouds/ixcore/pkg/ef"
)

// Cursor walks a term's postings (docid, frequency) pairs in lockstep,
// decoding one block at a time. It is strictly monotonic: NextGeq and Next
// never move it backward, and next_geq(v) is idempotent when the cursor is
// already positioned at an element >= v.
type Cursor struct {
	docs  *DocStream
	freqs *FreqStream
	skip  *ef.Cursor

	blockIdx   uint64
	blockDocs  []uint32
	blockFreqs []uint32
	posInBlock int

	docid   uint32
	started bool
	ended   bool
}

// NewCursor returns a cursor over aligned doc/freq streams of the same
// length, positioned before the first posting.
func NewCursor(docs *DocStream, freqs *FreqStream) (*Cursor, error) {
	if docs.n != freqs.n {
		return nil, fmt.Errorf("posting: doc stream length %d does not match freq stream length %d", docs.n, freqs.n)
	}
	return &Cursor{docs: docs, freqs: freqs, skip: docs.skip.NewCursor()}, nil
}

// Docid returns the docid at the current position, or DocidMax if the
// cursor has not started or is exhausted.
func (c *Cursor) Docid() uint32 {
	if !c.started || c.ended {
		return DocidMax
	}
	return c.docid
}

// Freq returns the frequency at the current position, or 0 if the cursor
// has not started or is exhausted.
func (c *Cursor) Freq() uint32 {
	if !c.started || c.ended {
		return 0
	}
	return c.blockFreqs[c.posInBlock]
}

// Len returns the total number of postings in the list.
func (c *Cursor) Len() uint64 { return c.docs.n }

func (c *Cursor) loadBlock(b uint64) {
	c.blockIdx = b
	c.blockDocs = c.docs.decodeBlock(b)
	c.blockFreqs = c.freqs.decodeBlock(b)
	c.posInBlock = 0
	c.docid = c.blockDocs[0]
	c.started = true
}

// Next advances by one posting and returns the new docid, or DocidMax once
// exhausted.
func (c *Cursor) Next() uint32 {
	if c.ended {
		return DocidMax
	}
	if !c.started {
		c.loadBlock(0)
		return c.docid
	}
	c.posInBlock++
	if c.posInBlock >= len(c.blockDocs) {
		if c.blockIdx+1 >= c.docs.blockCount {
			c.ended = true
			return DocidMax
		}
		c.loadBlock(c.blockIdx + 1)
		return c.docid
	}
	c.docid = c.blockDocs[c.posInBlock]
	return c.docid
}

// NextGeq advances to the smallest docid >= d and returns it, or DocidMax if
// no such element exists. Calling NextGeq with a value <= the current docid
// is a no-op.
func (c *Cursor) NextGeq(d uint32) uint32 {
	if c.ended {
		return DocidMax
	}
	if c.started && c.docid >= d {
		return c.docid
	}

	v := c.skip.NextGeq(uint64(d))
	if v == ef.EndOfSequence {
		c.ended = true
		return DocidMax
	}
	b := c.skip.Position()
	if !c.started || b != c.blockIdx {
		c.loadBlock(b)
	}

	for c.docid < d {
		if c.posInBlock+1 >= len(c.blockDocs) {
			if c.blockIdx+1 >= c.docs.blockCount {
				c.ended = true
				return DocidMax
			}
			c.loadBlock(c.blockIdx + 1)
			continue
		}
		c.posInBlock++
		c.docid = c.blockDocs[c.posInBlock]
	}
	return c.docid
}
