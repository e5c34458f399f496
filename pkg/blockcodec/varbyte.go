package blockcodec

import "github.com/kittclouds/ixcore/pkg/bitio"

// EncodeVarbyte writes v as a sequence of 8-bit groups (7 data bits, 1
// continuation bit), packed directly into the bit stream rather than forced
// to byte boundaries — the "bit-aligned" variant of varbyte, letting it sit
// back-to-back with other field types in the same block without padding.
func EncodeVarbyte(w *bitio.Writer, v uint32) {
	for {
		chunk := v & 0x7F
		v >>= 7
		if v != 0 {
			w.AppendBits(uint64(chunk|0x80), 8)
		} else {
			w.AppendBits(uint64(chunk), 8)
			return
		}
	}
}

// DecodeVarbyte reads a value previously written by EncodeVarbyte.
func DecodeVarbyte(r *bitio.Reader) uint32 {
	var result uint32
	var shift uint
	for {
		b := r.ReadBits(8)
		result |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return result
		}
		shift += 7
	}
}
