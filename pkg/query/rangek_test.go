package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRestrictToRangeMatchesDirectTopK is the Range-k scenario: partition a
// corpus into docid windows, run RankedOr over RestrictToRange output per
// window, merge the partial top-k's with MergeTopK, and check the result
// agrees with a single top-k computed over the whole corpus. A seek that
// leaves the wrapped cursor pre-advanced past the first in-range posting
// (rather than deferring the seek to the first Next() call) drops that
// posting from every window and this test catches it.
func TestRestrictToRangeMatchesDirectTopK(t *testing.T) {
	tc := newTinyCorpus()
	s0, s1, s2 := bm25(tc, 3), bm25(tc, 2), bm25(tc, 4)

	direct := RankedOr([]Cursor{
		tc.scoredCursor(t, 0, s0),
		tc.scoredCursor(t, 1, s1),
		tc.scoredCursor(t, 2, s2),
	}, 4)

	windows := Windows(tc.numDocs, 2)
	require.Len(t, windows, 2)

	var partials [][]Hit
	for _, w := range windows {
		cursors := RestrictToRange([]Cursor{
			tc.scoredCursor(t, 0, s0),
			tc.scoredCursor(t, 1, s1),
			tc.scoredCursor(t, 2, s2),
		}, w)
		partials = append(partials, RankedOr(cursors, 4))
	}

	merged := MergeTopK(partials, 4)

	directDocs := map[uint32]float32{}
	for _, h := range direct {
		directDocs[h.Docid] = h.Score
	}
	mergedDocs := map[uint32]float32{}
	for _, h := range merged {
		mergedDocs[h.Docid] = h.Score
	}
	require.Equal(t, directDocs, mergedDocs)
}

// TestRestrictToRangeIncludesWindowStart checks the specific regression: a
// term whose first posting in a window sits exactly at the window's start
// docid must still be returned by a single Next() call.
func TestRestrictToRangeIncludesWindowStart(t *testing.T) {
	tc := newTinyCorpus()
	s2 := bm25(tc, 4)

	c := tc.scoredCursor(t, 2, s2)
	restricted := RestrictToRange([]Cursor{c}, Range{Start: 2, End: 4})[0]

	require.Equal(t, uint32(2), restricted.Next())
	require.Equal(t, uint32(3), restricted.Next())
	require.Equal(t, DocidMax, restricted.Next())
}

func TestRestrictMaxToRangeIncludesWindowStart(t *testing.T) {
	tc := newTinyCorpus()
	s2 := bm25(tc, 4)

	c := tc.maxScoredCursor(t, 2, s2)
	restricted := RestrictMaxToRange([]MaxCursor{c}, Range{Start: 2, End: 4})[0]

	require.Equal(t, uint32(2), restricted.Next())
	require.Equal(t, uint32(3), restricted.Next())
	require.Equal(t, DocidMax, restricted.Next())
}
