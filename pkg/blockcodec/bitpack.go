// Package blockcodec implements the fixed-size (128-value) block codecs used
// for data that isn't globally monotonic: within-document frequencies, and
// the delta-gapped values inside a single posting block. Two codecs are
// provided: a scalar stand-in for SIMD-BP128 (uniform per-block bit width)
// and binary interpolative coding for sorted sub-blocks.
package blockcodec

import "github.com/kittclouds/ixcore/pkg/bitio"

// BlockSize is the fixed number of values a full block holds; the final
// block of a sequence may be shorter.
const BlockSize = 128

// widthHeaderBits is wide enough for any uint32 bit width (0..32).
const widthHeaderBits = 6

// BitWidth returns the number of bits needed to represent v (0 needs 0 bits).
func BitWidth(v uint32) uint {
	w := uint(0)
	for v > 0 {
		w++
		v >>= 1
	}
	return w
}

func blockMax(values []uint32) uint32 {
	var m uint32
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// EncodeBitpacked writes a one-field header (the uniform bit width for this
// block) followed by len(values) fixed-width fields. This is the scalar
// equivalent of SIMD-BP128: same per-block layout, without the vectorized
// unpack loop real SIMD-BP128 uses.
func EncodeBitpacked(w *bitio.Writer, values []uint32) {
	width := BitWidth(blockMax(values))
	w.AppendBits(uint64(width), widthHeaderBits)
	for _, v := range values {
		w.AppendBits(uint64(v), width)
	}
}

// DecodeBitpacked reads n values previously written by EncodeBitpacked.
func DecodeBitpacked(r *bitio.Reader, n int) []uint32 {
	width := uint(r.ReadBits(widthHeaderBits))
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(r.ReadBits(width))
	}
	return out
}
