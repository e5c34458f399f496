package posting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildList(t *testing.T, docs, freqs []uint32, numDocs uint32) *Cursor {
	t.Helper()
	ds, err := BuildDocStream(docs, numDocs)
	require.NoError(t, err)
	fs, err := BuildFreqStream(freqs)
	require.NoError(t, err)
	c, err := NewCursor(ds, fs)
	require.NoError(t, err)
	return c
}

func TestCursorFullScan(t *testing.T) {
	docs := []uint32{0, 2, 3, 7, 20, 21, 100, 1000}
	freqs := []uint32{1, 3, 2, 1, 5, 1, 2, 4}
	c := buildList(t, docs, freqs, 1001)

	for i, want := range docs {
		got := c.Next()
		require.Equal(t, want, got)
		require.Equal(t, freqs[i], c.Freq())
	}
	require.Equal(t, DocidMax, c.Next())
}

func TestCursorNextGeqSweep(t *testing.T) {
	docs := []uint32{0, 1, 2, 3}
	freqs := []uint32{1, 1, 1, 1}
	c := buildList(t, docs, freqs, 4)

	probes := []uint32{0, 1, 2, 3, 4}
	want := []uint32{0, 1, 2, 3, DocidMax}
	for i, p := range probes {
		require.Equal(t, want[i], c.NextGeq(p))
	}
}

func TestCursorNextGeqIdempotent(t *testing.T) {
	docs := []uint32{5, 10, 15, 20}
	freqs := []uint32{1, 2, 3, 4}
	c := buildList(t, docs, freqs, 21)

	first := c.NextGeq(12)
	second := c.NextGeq(12)
	require.Equal(t, first, second)
	require.Equal(t, uint32(15), first)
	require.Equal(t, uint32(3), c.Freq())
}

func TestCursorSpansMultipleBlocks(t *testing.T) {
	n := 500
	docs := make([]uint32, n)
	freqs := make([]uint32, n)
	for i := 0; i < n; i++ {
		docs[i] = uint32(i * 2)
		freqs[i] = uint32(i%7 + 1)
	}
	c := buildList(t, docs, freqs, uint32(n*2))

	for i := 0; i < n; i += 37 {
		got := c.NextGeq(docs[i])
		require.Equal(t, docs[i], got)
		require.Equal(t, freqs[i], c.Freq())
	}
}

func TestBuildRejectsNonIncreasing(t *testing.T) {
	_, err := BuildDocStream([]uint32{1, 1}, 10)
	require.Error(t, err)
}

func TestBuildRejectsZeroFrequency(t *testing.T) {
	_, err := BuildFreqStream([]uint32{1, 0, 2})
	require.Error(t, err)
}

func TestOpenRoundTrip(t *testing.T) {
	docs := []uint32{0, 4, 130, 131, 260}
	freqs := []uint32{1, 2, 3, 4, 5}
	ds, err := BuildDocStream(docs, 300)
	require.NoError(t, err)
	fs, err := BuildFreqStream(freqs)
	require.NoError(t, err)

	ds2, err := OpenDocStream(ds.Bytes(), 300)
	require.NoError(t, err)
	fs2, err := OpenFreqStream(fs.Bytes())
	require.NoError(t, err)

	c, err := NewCursor(ds2, fs2)
	require.NoError(t, err)
	for i, want := range docs {
		got := c.Next()
		require.Equal(t, want, got)
		require.Equal(t, freqs[i], c.Freq())
	}
}
