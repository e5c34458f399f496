// Package wanddata builds the precomputed per-term and per-block maximum
// score metadata that WAND-family query algorithms prune against: a raw
// form (explicit float scores) and a compressed form (scores quantized into
// a shared reference table and packed alongside docids in an Elias-Fano
// sequence).
package wanddata

import (
	"math"

	"github.com/kittclouds/ixcore/pkg/blockcodec"
	"github.com/kittclouds/ixcore/pkg/ef"
	"github.com/kittclouds/ixcore/pkg/scorer"
)

// BlockSizeVariant is the two-variant sum type the component design calls
// for in place of a boost::variant: either fixed-size blocks, or
// variable-size blocks chosen by the cost-minimizing DP with parameter
// Lambda.
type BlockSizeVariant struct {
	Fixed  bool
	Size   uint32
	Lambda float32
}

// FixedBlockSize returns a fixed-block-size variant of the given size.
func FixedBlockSize(size uint32) BlockSizeVariant {
	return BlockSizeVariant{Fixed: true, Size: size}
}

// VariableBlockSize returns a cost-minimizing variable-block variant.
func VariableBlockSize(lambda float32) BlockSizeVariant {
	return BlockSizeVariant{Fixed: false, Lambda: lambda}
}

// RawTerm is the uncompressed WAND metadata for one term: a global maximum
// score (0 for terms under the build threshold, which must be treated as
// non-prunable) and, for prunable terms, a per-block (last docid, max
// score) pair.
type RawTerm struct {
	MaxTermWeight float32
	LastDocid     []uint32
	MaxScore      []float32
}

// Prunable reports whether this term carries real block metadata, as
// opposed to the below-threshold sentinel.
func (t *RawTerm) Prunable() bool { return len(t.LastDocid) > 0 }

const defaultVariableWindow = 256

// BuildRaw computes WAND metadata for one term's postings. docLenOf maps a
// docid to its document length (needed to re-derive the score). Terms with
// n <= threshold get the zero sentinel and must be treated as
// non-prunable by query algorithms.
func BuildRaw(docs []uint32, freqs []uint32, docLenOf func(uint32) uint32, score scorer.Scorer, threshold int, variant BlockSizeVariant) *RawTerm {
	n := len(docs)
	if n <= threshold {
		return &RawTerm{}
	}

	scores := make([]float32, n)
	var maxWeight float32
	for i := range docs {
		s := score(freqs[i], docLenOf(docs[i]))
		scores[i] = s
		if s > maxWeight {
			maxWeight = s
		}
	}

	var bounds []int
	if variant.Fixed {
		size := int(variant.Size)
		if size <= 0 {
			size = blockcodec.BlockSize
		}
		for end := size; ; end += size {
			if end >= n {
				bounds = append(bounds, n)
				break
			}
			bounds = append(bounds, end)
		}
	} else {
		bounds = variableBlocks(scores, variant.Lambda)
	}

	lastDocids := make([]uint32, len(bounds))
	maxScores := make([]float32, len(bounds))
	start := 0
	for bi, end := range bounds {
		var m float32
		for i := start; i < end; i++ {
			if scores[i] > m {
				m = scores[i]
			}
		}
		lastDocids[bi] = docs[end-1]
		maxScores[bi] = m
		start = end
	}

	return &RawTerm{MaxTermWeight: maxWeight, LastDocid: lastDocids, MaxScore: maxScores}
}

// variableBlocks runs a windowed DP minimizing sum(max_score_block*len + lambda)
// over candidate split points, mirroring the prefix-max-table approach the
// component design describes, pruned to a practical window.
func variableBlocks(scores []float32, lambda float32) []int {
	n := len(scores)
	if n == 0 {
		return nil
	}
	const inf = math.MaxFloat64
	dp := make([]float64, n+1)
	parent := make([]int, n+1)
	for i := range dp {
		dp[i] = inf
	}
	dp[0] = 0

	for j := 1; j <= n; j++ {
		lo := 0
		if j > defaultVariableWindow {
			lo = j - defaultVariableWindow
		}
		var runningMax float32
		for i := j - 1; i >= lo; i-- {
			if scores[i] > runningMax {
				runningMax = scores[i]
			}
			if dp[i] == inf {
				continue
			}
			size := j - i
			cost := dp[i] + float64(runningMax)*float64(size) + float64(lambda)
			if cost < dp[j] {
				dp[j] = cost
				parent[j] = i
			}
		}
	}

	var bounds []int
	for j := n; j > 0; {
		i := parent[j]
		bounds = append(bounds, j)
		j = i
	}
	for l, r := 0, len(bounds)-1; l < r; l, r = l+1, r-1 {
		bounds[l], bounds[r] = bounds[r], bounds[l]
	}
	return bounds
}

// RawCursor walks a RawTerm's block list to answer "what is the maximum
// score of the block covering this docid".
type RawCursor struct {
	term *RawTerm
	idx  int
}

// NewCursor returns a cursor over a RawTerm's blocks.
func (t *RawTerm) NewCursor() *RawCursor { return &RawCursor{term: t} }

// MaxScore returns the max score of the block covering docid d, advancing
// the cursor forward. ok is false if d is past every block (no bound
// available; callers should treat this as score 0 / exhausted).
func (c *RawCursor) MaxScore(d uint32) (float32, bool) {
	if !c.term.Prunable() {
		return 0, false
	}
	for c.idx < len(c.term.LastDocid) && c.term.LastDocid[c.idx] < d {
		c.idx++
	}
	if c.idx >= len(c.term.LastDocid) {
		return 0, false
	}
	return c.term.MaxScore[c.idx], true
}
