package ef

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildCompactRoundTrip(t *testing.T) {
	values := []uint64{0, 2, 3, 7, 20, 21, 100, 1000}
	universe := uint64(1001)
	enc := BuildCompact(values, universe)
	require.Equal(t, uint64(len(values)), enc.Len())

	c := enc.NewCursor()
	for i, want := range values {
		pos, got := c.Move(uint64(i))
		require.Equal(t, uint64(i), pos)
		require.Equal(t, want, got)
	}
}

func TestNextGeqMatchesLinearScan(t *testing.T) {
	values := []uint64{0, 1, 2, 3}
	universe := uint64(4)
	enc := BuildCompact(values, universe)
	c := enc.NewCursor()

	for _, probe := range []uint64{0, 1, 2, 3, 4} {
		var want uint64 = EndOfSequence
		for _, v := range values {
			if v >= probe {
				want = v
				break
			}
		}
		got := c.NextGeq(probe)
		require.Equal(t, want, got, "probe=%d", probe)
	}
}

func TestNextGeqIdempotent(t *testing.T) {
	values := []uint64{5, 10, 15, 20}
	enc := BuildCompact(values, 21)
	c := enc.NewCursor()
	first := c.NextGeq(12)
	second := c.NextGeq(12)
	require.Equal(t, first, second)
	require.Equal(t, uint64(15), first)
}

func TestNextGeqPastEnd(t *testing.T) {
	values := []uint64{1, 2, 3}
	enc := BuildCompact(values, 4)
	c := enc.NewCursor()
	require.Equal(t, EndOfSequence, c.NextGeq(10))
}

func TestEmptySequence(t *testing.T) {
	enc := BuildCompact(nil, 0)
	require.Equal(t, uint64(0), enc.Len())
	c := enc.NewCursor()
	require.Equal(t, EndOfSequence, c.NextGeq(0))
}

func TestSingleElement(t *testing.T) {
	enc := BuildCompact([]uint64{42}, 100)
	c := enc.NewCursor()
	require.Equal(t, uint64(42), c.NextGeq(0))
	c2 := enc.NewCursor()
	require.Equal(t, uint64(42), c2.NextGeq(42))
	c3 := enc.NewCursor()
	require.Equal(t, EndOfSequence, c3.NextGeq(43))
}

func TestLargeSequenceSweep(t *testing.T) {
	n := 2000
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(i * 3)
	}
	universe := uint64(n*3 + 1)
	enc := BuildCompact(values, universe)

	c := enc.NewCursor()
	idx := 0
	for probe := uint64(0); probe < universe; probe += 7 {
		for idx < n && values[idx] < probe {
			idx++
		}
		var want uint64 = EndOfSequence
		if idx < n {
			want = values[idx]
		}
		got := c.NextGeq(probe)
		require.Equal(t, want, got, "probe=%d", probe)
	}
}
