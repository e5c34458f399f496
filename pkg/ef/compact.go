// Package ef implements compact and partitioned Elias-Fano encoding for
// strictly increasing integer sequences, the quasi-succinct representation
// every monotonic stream in this module (docid skip tables, WAND auxiliary
// indexes) is built on.
package ef

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/kittclouds/ixcore/pkg/bitio"
)

// EndOfSequence is the sentinel docid/position returned when a cursor is
// advanced past the last element.
const EndOfSequence = ^uint64(0)

// CompactEF is a compact Elias-Fano encoding of a non-decreasing sequence
// of n values in [0, universe).
type CompactEF struct {
	n, universe uint64
	l           uint

	lowBuf  []byte
	lowBits uint64 // bits used per low part (== l, cached)

	high       *bitset.BitSet
	zeroPos    []uint64 // zeroPos[b] = bit position of the b-th zero in high
	numBuckets uint64
}

// lowWidth returns max(0, ceil(log2(universe/n))), the spec's formula for
// the per-value low-bit width.
func lowWidth(n, universe uint64) uint {
	if n == 0 || universe <= n {
		return 0
	}
	l := uint(0)
	for (uint64(1)<<l)*n < universe {
		l++
	}
	return l
}

// BuildCompact encodes values (strictly increasing, each < universe) into a
// CompactEF. Panics if values are not strictly increasing or out of range —
// callers are expected to have validated (I1)-shaped input already.
func BuildCompact(values []uint64, universe uint64) *CompactEF {
	n := uint64(len(values))
	l := lowWidth(n, universe)

	ef := &CompactEF{n: n, universe: universe, l: l}

	var numBuckets uint64
	if n > 0 {
		if l == 0 {
			numBuckets = universe
		} else {
			numBuckets = (universe + (uint64(1)<<l) - 1) >> l
		}
		if numBuckets == 0 {
			numBuckets = 1
		}
	}
	ef.numBuckets = numBuckets

	lw := bitio.NewWriter()
	high := bitset.New(uint(n + numBuckets))

	var prev uint64
	var havePrev bool
	for i, v := range values {
		if havePrev && v <= prev {
			panic(fmt.Sprintf("ef: values must be strictly increasing, got %d after %d at index %d", v, prev, i))
		}
		if v >= universe {
			panic(fmt.Sprintf("ef: value %d at index %d exceeds universe %d", v, i, universe))
		}
		prev = v
		havePrev = true

		bucket := v
		if l > 0 {
			bucket = v >> l
			lw.AppendBits(v&((uint64(1)<<l)-1), l)
		}
		pos := bucket + uint64(i)
		high.Set(uint(pos))
	}

	ef.lowBuf = lw.Bytes()
	ef.lowBits = uint64(l)
	ef.high = high

	if numBuckets > 0 {
		zp := make([]uint64, 0, numBuckets)
		pos := uint(0)
		total := uint(n + numBuckets)
		for uint64(len(zp)) < numBuckets && pos < total {
			next, ok := high.NextClear(pos)
			if !ok || next >= total {
				break
			}
			zp = append(zp, uint64(next))
			pos = next + 1
		}
		for uint64(len(zp)) < numBuckets {
			zp = append(zp, uint64(n+numBuckets))
		}
		ef.zeroPos = zp
	}

	return ef
}

// Len returns the number of encoded values.
func (ef *CompactEF) Len() uint64 { return ef.n }

// Universe returns the exclusive upper bound values were drawn from.
func (ef *CompactEF) Universe() uint64 { return ef.universe }

func (ef *CompactEF) low(idx uint64) uint64 {
	if ef.l == 0 {
		return 0
	}
	r := bitio.NewReader(ef.lowBuf, ef.n*ef.lowBits)
	r.Seek(idx * ef.lowBits)
	return r.ReadBits(ef.l)
}

// valueAt reconstructs the value for rank idx given the high-bitmap bit
// position of its one-bit.
func (ef *CompactEF) valueAt(idx, pos uint64) uint64 {
	bucket := pos - idx
	if ef.l == 0 {
		return bucket
	}
	return (bucket << ef.l) | ef.low(idx)
}

// Cursor walks a CompactEF. It is strictly monotonic: Move and NextGeq never
// rewind, matching the contract every consumer of this codec relies on.
type Cursor struct {
	ef      *CompactEF
	started bool
	idx     uint64 // current rank; == ef.n once exhausted
	pos     uint64 // high-bitmap bit position of the current one-bit
	value   uint64
	ended   bool
}

// NewCursor returns a cursor positioned before the first element.
func (ef *CompactEF) NewCursor() *Cursor {
	return &Cursor{ef: ef}
}

// Position returns the current rank (0-indexed).
func (c *Cursor) Position() uint64 { return c.idx }

// Value returns the value at the current rank, or EndOfSequence past the end.
func (c *Cursor) Value() uint64 {
	if c.ended || !c.started {
		return EndOfSequence
	}
	return c.value
}

// stepTo decodes the one-bit at rank idx given a high-bitmap search start
// position (the first bit position at or after which that one-bit lies).
func (c *Cursor) stepTo(idx, searchFrom uint64) bool {
	next, ok := c.ef.high.NextSet(uint(searchFrom))
	if !ok {
		return false
	}
	c.idx = idx
	c.pos = uint64(next)
	c.value = c.ef.valueAt(idx, c.pos)
	c.started = true
	return true
}

func (c *Cursor) setEnded() uint64 {
	c.ended = true
	c.idx = c.ef.n
	return EndOfSequence
}

// Move sets the cursor to rank k (k >= current rank) and returns (position, value).
func (c *Cursor) Move(k uint64) (uint64, uint64) {
	if c.started && k < c.idx {
		panic("ef: cursor is monotonic, cannot move backward")
	}
	if c.started && k == c.idx {
		return c.idx, c.value
	}
	if k >= c.ef.n {
		return c.ef.n, c.setEnded()
	}
	searchFrom := uint64(0)
	nextIdx := uint64(0)
	if c.started {
		searchFrom = c.pos + 1
		nextIdx = c.idx + 1
	}
	for {
		if !c.stepTo(nextIdx, searchFrom) {
			return c.ef.n, c.setEnded()
		}
		if nextIdx == k {
			return c.idx, c.value
		}
		searchFrom = c.pos + 1
		nextIdx++
	}
}

// NextGeq advances the cursor to the smallest element >= v and returns it,
// or EndOfSequence if no such element exists. Calling NextGeq twice with the
// same v is idempotent: if the cursor is already positioned at an element
// >= v, it is returned unchanged.
func (c *Cursor) NextGeq(v uint64) uint64 {
	if c.ended {
		return EndOfSequence
	}
	if c.started && c.value >= v {
		return c.value
	}
	if c.ef.n == 0 {
		return c.setEnded()
	}

	bucket := v
	if c.ef.l > 0 {
		bucket = v >> c.ef.l
	}
	if bucket >= c.ef.numBuckets {
		return c.setEnded()
	}

	var z, rank1 uint64
	if bucket > 0 {
		z = c.ef.zeroPos[bucket-1] + 1
		rank1 = z - bucket
	}
	if c.started && rank1 < c.idx+1 {
		rank1 = c.idx + 1
	}
	if rank1 >= c.ef.n {
		return c.setEnded()
	}
	searchFrom := z
	if c.started && c.pos+1 > z {
		searchFrom = c.pos + 1
	}
	if !c.stepTo(rank1, searchFrom) {
		return c.setEnded()
	}

	for c.value < v {
		if !c.stepTo(c.idx+1, c.pos+1) {
			return c.setEnded()
		}
	}
	return c.value
}
