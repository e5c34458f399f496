package scorer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBM25MonotonicInTermFrequency(t *testing.T) {
	cfg := DefaultConfig()
	s := BM25(cfg, IDF(1000, 10), 50)
	low := s(1, 50)
	high := s(10, 50)
	require.Greater(t, high, low)
}

func TestBM25ZeroFrequency(t *testing.T) {
	cfg := DefaultConfig()
	s := BM25(cfg, IDF(1000, 10), 50)
	require.Equal(t, float32(0), s(0, 50))
}

func TestBM25PenalizesLongDocuments(t *testing.T) {
	cfg := DefaultConfig()
	s := BM25(cfg, IDF(1000, 100), 50)
	short := s(3, 20)
	long := s(3, 500)
	require.Greater(t, short, long)
}

func TestQLMonotonicInTermFrequency(t *testing.T) {
	cfg := DefaultConfig()
	s := QL(cfg, 1000, 100000)
	low := s(1, 100)
	high := s(5, 100)
	require.Greater(t, high, low)
}

func TestResolveUnknownScorer(t *testing.T) {
	_, err := Resolve("nonexistent", DefaultConfig(), 1, 10, 1, 100)
	require.Error(t, err)
}

func TestResolveKnownScorers(t *testing.T) {
	_, err := Resolve("bm25", DefaultConfig(), 1, 10, 1, 100)
	require.NoError(t, err)
	_, err = Resolve("ql", DefaultConfig(), 1, 10, 1, 100)
	require.NoError(t, err)
}
