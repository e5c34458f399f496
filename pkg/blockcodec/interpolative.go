package blockcodec

import "github.com/kittclouds/ixcore/pkg/bitio"

// encodeMinimalBinary writes x (0 <= x < rangeSize) using a truncated
// binary code: the theoretical minimum for a uniform distribution over
// rangeSize outcomes, one bit shorter than ceil(log2(rangeSize)) for the
// first `threshold` values.
func encodeMinimalBinary(w *bitio.Writer, x, rangeSize uint32) {
	if rangeSize <= 1 {
		return
	}
	b := BitWidth(rangeSize - 1)
	threshold := (uint32(1) << b) - rangeSize
	if x < threshold {
		w.AppendBits(uint64(x), b-1)
	} else {
		w.AppendBits(uint64((x+threshold)>>1), b-1)
		w.AppendBits(uint64((x+threshold)&1), 1)
	}
}

func decodeMinimalBinary(r *bitio.Reader, rangeSize uint32) uint32 {
	if rangeSize <= 1 {
		return 0
	}
	b := BitWidth(rangeSize - 1)
	threshold := (uint32(1) << b) - rangeSize
	prefix := uint32(r.ReadBits(b - 1))
	if prefix < threshold {
		return prefix
	}
	full := (prefix << 1) | uint32(r.ReadBits(1))
	return full - threshold
}

// EncodeInterpolative recursively encodes a strictly increasing sequence
// known to lie within [lo, hi], writing only each value's offset from the
// range its position in a balanced encode-tree implies. n is carried
// out-of-band (the block header already records it).
func EncodeInterpolative(w *bitio.Writer, values []uint32, lo, hi uint32) {
	n := len(values)
	if n == 0 {
		return
	}
	mid := n / 2
	v := values[mid]
	low := lo + uint32(mid)
	high := hi - uint32(n-1-mid)
	encodeMinimalBinary(w, v-low, high-low+1)

	if mid > 0 {
		EncodeInterpolative(w, values[:mid], lo, v-1)
	}
	if mid+1 < n {
		EncodeInterpolative(w, values[mid+1:], v+1, hi)
	}
}

// DecodeInterpolative reverses EncodeInterpolative given the same n, lo, hi.
func DecodeInterpolative(r *bitio.Reader, n int, lo, hi uint32) []uint32 {
	out := make([]uint32, n)
	decodeInterpolativeInto(r, out, lo, hi)
	return out
}

func decodeInterpolativeInto(r *bitio.Reader, out []uint32, lo, hi uint32) {
	n := len(out)
	if n == 0 {
		return
	}
	mid := n / 2
	low := lo + uint32(mid)
	high := hi - uint32(n-1-mid)
	offset := decodeMinimalBinary(r, high-low+1)
	v := low + offset
	out[mid] = v

	if mid > 0 {
		decodeInterpolativeInto(r, out[:mid], lo, v-1)
	}
	if mid+1 < n {
		decodeInterpolativeInto(r, out[mid+1:], v+1, hi)
	}
}
