package wanddata

import "github.com/kittclouds/ixcore/pkg/ef"

// CompressedTerm quantizes each block's normalized score into one of R =
// 2^K reference buckets and packs (last_docid << K) | bucket into a single
// Elias-Fano sequence, following the original compressed WAND enumerator's
// arithmetic exactly (see quantizeScore/reconstructScore).
type CompressedTerm struct {
	MaxTermWeight float32
	K             uint // log2(reference table size)
	R             uint32
	entries       *ef.CompactEF // over (docid<<K)|bucket
}

// Prunable reports whether this term carries real block metadata.
func (t *CompressedTerm) Prunable() bool { return t.entries != nil && t.entries.Len() > 0 }

// quantizeScore maps a normalized score in [0,1] to one of R buckets:
// find the smallest pos with score <= quant*pos, bucket = pos-1.
func quantizeScore(normalized float64, r uint32) uint32 {
	quant := 1.0 / float64(r)
	pos := uint32(0)
	for normalized > quant*float64(pos) {
		pos++
		if pos > r {
			break
		}
	}
	if pos == 0 {
		pos = 1
	}
	idx := pos - 1
	if idx >= r {
		idx = r - 1
	}
	return idx
}

// reconstructScore reverses quantizeScore's rounding: the decoded score is
// always an upper bound on the true score (I4/P5).
func reconstructScore(bucket uint32, r uint32, maxTermWeight float32) float32 {
	quant := 1.0 / float64(r)
	return float32(quant*float64(bucket+1)) * maxTermWeight
}

func log2Ceil(r uint32) uint {
	k := uint(0)
	for (uint32(1) << k) < r {
		k++
	}
	return k
}

// BuildCompressed quantizes a RawTerm's per-block scores into a reference
// table of size R (must be a power of two) and packs them into an
// Elias-Fano sequence keyed by (docid << log2(R)) | bucket.
func BuildCompressed(raw *RawTerm, numDocs uint32, r uint32) *CompressedTerm {
	if !raw.Prunable() {
		return &CompressedTerm{R: r, K: log2Ceil(r)}
	}
	k := log2Ceil(r)

	keys := make([]uint64, len(raw.LastDocid))
	for i, d := range raw.LastDocid {
		var norm float64
		if raw.MaxTermWeight > 0 {
			norm = float64(raw.MaxScore[i] / raw.MaxTermWeight)
		}
		bucket := quantizeScore(norm, r)
		keys[i] = (uint64(d) << k) | uint64(bucket)
	}
	universe := (uint64(numDocs) << k) + uint64(r)
	entries := ef.BuildCompact(keys, universe)

	return &CompressedTerm{MaxTermWeight: raw.MaxTermWeight, K: k, R: r, entries: entries}
}

// CompressedCursor walks a CompressedTerm's quantized block sequence.
type CompressedCursor struct {
	term *CompressedTerm
	inner *ef.Cursor
}

// NewCursor returns a cursor over a CompressedTerm's quantized blocks.
func (t *CompressedTerm) NewCursor() *CompressedCursor {
	var inner *ef.Cursor
	if t.entries != nil {
		inner = t.entries.NewCursor()
	}
	return &CompressedCursor{term: t, inner: inner}
}

// MaxScore returns the reconstructed (upper-bound) max score of the block
// covering docid d, advancing the cursor forward. ok is false once d is
// past every block.
func (c *CompressedCursor) MaxScore(d uint32) (float32, bool) {
	if !c.term.Prunable() {
		return 0, false
	}
	target := uint64(d) << c.term.K
	v := c.inner.NextGeq(target)
	if v == ef.EndOfSequence {
		return 0, false
	}
	bucket := uint32(v & ((uint64(1) << c.term.K) - 1))
	return reconstructScore(bucket, c.term.R, c.term.MaxTermWeight), true
}
