package ef

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/kittclouds/ixcore/pkg/bitio"
)

func newBitsetFromReader(r *bitio.Reader, nbits uint64) *bitset.BitSet {
	bs := bitset.New(uint(nbits))
	for i := uint64(0); i < nbits; i++ {
		if r.ReadBits(1) == 1 {
			bs.Set(uint(i))
		}
	}
	return bs
}

// LowWidth returns the per-value low-bit width this encoding uses.
func (ef *CompactEF) LowWidth() uint { return ef.l }

// HighLen returns the bit length of the high unary bitmap.
func (ef *CompactEF) HighLen() uint64 { return ef.n + ef.numBuckets }

// WriteTo serializes ef into w: a small header (count, universe, low width)
// followed by the raw low-bit and high-bitmap payloads. Used to embed a
// CompactEF as a sidecar structure inside a larger bit stream (posting-list
// skip tables, compressed WAND indexes).
func (ef *CompactEF) WriteTo(w *bitio.Writer) {
	w.AppendGamma(ef.n + 1)
	w.AppendGamma(ef.universe + 1)
	w.AppendBits(uint64(ef.l), 6)
	if ef.l > 0 {
		total := ef.n * uint64(ef.l)
		lr := bitio.NewReader(ef.lowBuf, total)
		var got uint64
		for got < total {
			chunk := total - got
			if chunk > 32 {
				chunk = 32
			}
			w.AppendBits(lr.ReadBits(uint(chunk)), uint(chunk))
			got += chunk
		}
	}
	highLen := ef.HighLen()
	for i := uint64(0); i < highLen; i++ {
		var bit uint64
		if ef.high.Test(uint(i)) {
			bit = 1
		}
		w.AppendBits(bit, 1)
	}
}

// ReadCompact deserializes a CompactEF previously written by WriteTo.
func ReadCompact(r *bitio.Reader) *CompactEF {
	n := r.ReadGamma() - 1
	universe := r.ReadGamma() - 1
	l := uint(r.ReadBits(6))

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

	if l > 0 {
		total := n * uint64(l)
		lw := bitio.NewWriter()
		var got uint64
		for got < total {
			chunk := total - got
			if chunk > 32 {
				chunk = 32
			}
			lw.AppendBits(r.ReadBits(uint(chunk)), uint(chunk))
			got += chunk
		}
		ef.lowBuf = lw.Bytes()
		ef.lowBits = uint64(l)
	}

	highLen := n + numBuckets
	ef.high = newBitsetFromReader(r, highLen)

	if numBuckets > 0 {
		zp := make([]uint64, 0, numBuckets)
		pos := uint(0)
		total := uint(highLen)
		for uint64(len(zp)) < numBuckets && pos < total {
			next, ok := ef.high.NextClear(pos)
			if !ok || next >= total {
				break
			}
			zp = append(zp, uint64(next))
			pos = next + 1
		}
		for uint64(len(zp)) < numBuckets {
			zp = append(zp, highLen)
		}
		ef.zeroPos = zp
	}

	return ef
}
