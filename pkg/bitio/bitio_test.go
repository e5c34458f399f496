package bitio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendBitsRoundTrip(t *testing.T) {
	w := NewWriter()
	values := []struct {
		v uint64
		w uint
	}{
		{0, 1}, {1, 1}, {5, 3}, {0xFF, 8}, {0x1FFFFFFFF, 33},
		{0xFFFFFFFFFFFFFFFF, 64}, {12345, 20}, {0, 5},
	}
	for _, e := range values {
		w.AppendBits(e.v, e.w)
	}
	buf := w.Bytes()
	r := NewReader(buf, w.Len())
	for _, e := range values {
		got := r.ReadBits(e.w)
		mask := uint64(0xFFFFFFFFFFFFFFFF)
		if e.w < 64 {
			mask = (uint64(1) << e.w) - 1
		}
		require.Equal(t, e.v&mask, got)
	}
}

func TestAppendUnaryRoundTrip(t *testing.T) {
	w := NewWriter()
	ns := []uint64{0, 1, 7, 63, 64, 65, 130}
	for _, n := range ns {
		w.AppendUnary(n)
	}
	r := NewReader(w.Bytes(), w.Len())
	for _, n := range ns {
		require.Equal(t, n, r.ReadUnary())
	}
}

func TestAppendGammaRoundTrip(t *testing.T) {
	w := NewWriter()
	ns := []uint64{1, 2, 3, 4, 100, 1000, 1 << 20, 1 << 40}
	for _, n := range ns {
		w.AppendGamma(n)
	}
	r := NewReader(w.Bytes(), w.Len())
	for _, n := range ns {
		require.Equal(t, n, r.ReadGamma())
	}
}

func TestAppendGammaNonzeroRoundTrip(t *testing.T) {
	w := NewWriter()
	ns := []uint64{1, 2, 5, 128, 1000}
	for _, n := range ns {
		w.AppendGammaNonzero(n)
	}
	r := NewReader(w.Bytes(), w.Len())
	for _, n := range ns {
		require.Equal(t, n, r.ReadGammaNonzero())
	}
}

func TestMixedSequence(t *testing.T) {
	w := NewWriter()
	w.AppendGamma(7)
	w.AppendBits(42, 10)
	w.AppendUnary(3)
	w.AppendGammaNonzero(5)
	w.AppendBits(1, 1)

	r := NewReader(w.Bytes(), w.Len())
	require.Equal(t, uint64(7), r.ReadGamma())
	require.Equal(t, uint64(42), r.ReadBits(10))
	require.Equal(t, uint64(3), r.ReadUnary())
	require.Equal(t, uint64(5), r.ReadGammaNonzero())
	require.Equal(t, uint64(1), r.ReadBits(1))
}

func TestSeek(t *testing.T) {
	w := NewWriter()
	w.AppendBits(0xAB, 8)
	w.AppendBits(0xCD, 8)
	r := NewReader(w.Bytes(), w.Len())
	r.Seek(8)
	require.Equal(t, uint64(0xCD), r.ReadBits(8))
	r.Seek(0)
	require.Equal(t, uint64(0xAB), r.ReadBits(8))
}
