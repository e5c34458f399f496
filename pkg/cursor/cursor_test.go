package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kittclouds/ixcore/pkg/posting"
	"github.com/kittclouds/ixcore/pkg/scorer"
	"github.com/kittclouds/ixcore/pkg/wanddata"
)

func openPostings(t *testing.T, docs, freqs []uint32, numDocs uint32) *posting.Cursor {
	t.Helper()
	ds, err := posting.BuildDocStream(docs, numDocs)
	require.NoError(t, err)
	fs, err := posting.BuildFreqStream(freqs)
	require.NoError(t, err)
	c, err := posting.NewCursor(ds, fs)
	require.NoError(t, err)
	return c
}

func TestScoredCursorScore(t *testing.T) {
	docs := []uint32{0, 2, 5}
	freqs := []uint32{2, 1, 3}
	p := openPostings(t, docs, freqs, 10)
	s := scorer.BM25(scorer.DefaultConfig(), 1.5, 20)
	docLenOf := func(d uint32) uint32 { return 20 }

	c := NewScoredCursor(p, s, docLenOf)
	require.Equal(t, float32(0), c.Score()) // not started

	c.Next()
	require.Equal(t, uint32(0), c.Docid())
	require.Greater(t, c.Score(), float32(0))
}

func TestBlockMaxScoredCursorDelegation(t *testing.T) {
	docs := []uint32{0, 1, 2, 3}
	freqs := []uint32{1, 1, 1, 1}
	p := openPostings(t, docs, freqs, 10)
	s := scorer.BM25(scorer.DefaultConfig(), 1, 10)
	docLenOf := func(d uint32) uint32 { return 10 }

	raw := wanddata.BuildRaw(docs, freqs, docLenOf, s, 0, wanddata.FixedBlockSize(2))
	rc := raw.NewCursor()

	bmc := NewBlockMaxScoredCursor(p, s, docLenOf, raw.MaxTermWeight, rc)
	m, ok := bmc.BlockMaxScore(0)
	require.True(t, ok)
	require.Greater(t, m, float32(0))
}

func TestBlockMaxScoredCursorNilBlocks(t *testing.T) {
	docs := []uint32{0, 1}
	freqs := []uint32{1, 1}
	p := openPostings(t, docs, freqs, 10)
	s := scorer.BM25(scorer.DefaultConfig(), 1, 10)
	docLenOf := func(d uint32) uint32 { return 10 }

	bmc := NewBlockMaxScoredCursor(p, s, docLenOf, 0.5, nil)
	m, ok := bmc.BlockMaxScore(0)
	require.True(t, ok)
	require.Equal(t, float32(0.5), m)
}
