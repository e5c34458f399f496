package blockcodec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kittclouds/ixcore/pkg/bitio"
)

func TestBitpackedRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 2, 100, 255, 1000, 1 << 20}
	w := bitio.NewWriter()
	EncodeBitpacked(w, values)
	r := bitio.NewReader(w.Bytes(), w.Len())
	got := DecodeBitpacked(r, len(values))
	require.Equal(t, values, got)
}

func TestBitpackedAllZero(t *testing.T) {
	values := make([]uint32, BlockSize)
	w := bitio.NewWriter()
	EncodeBitpacked(w, values)
	r := bitio.NewReader(w.Bytes(), w.Len())
	got := DecodeBitpacked(r, len(values))
	require.Equal(t, values, got)
}

func TestVarbyteRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 16383, 16384, 1 << 30, 0xFFFFFFFF}
	w := bitio.NewWriter()
	for _, v := range values {
		EncodeVarbyte(w, v)
	}
	r := bitio.NewReader(w.Bytes(), w.Len())
	for _, want := range values {
		require.Equal(t, want, DecodeVarbyte(r))
	}
}

func TestInterpolativeRoundTrip(t *testing.T) {
	values := []uint32{2, 5, 9, 10, 15, 20, 21, 30}
	lo, hi := uint32(0), uint32(31)
	w := bitio.NewWriter()
	EncodeInterpolative(w, values, lo, hi)
	r := bitio.NewReader(w.Bytes(), w.Len())
	got := DecodeInterpolative(r, len(values), lo, hi)
	require.Equal(t, values, got)
}

func TestInterpolativeRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(120)
		universe := uint32(n + rng.Intn(500))
		seen := make(map[uint32]bool)
		values := make([]uint32, 0, n)
		for len(values) < n {
			v := uint32(rng.Intn(int(universe)))
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		sortUint32(values)

		w := bitio.NewWriter()
		EncodeInterpolative(w, values, 0, universe-1)
		r := bitio.NewReader(w.Bytes(), w.Len())
		got := DecodeInterpolative(r, n, 0, universe-1)
		require.Equal(t, values, got, "trial=%d", trial)
	}
}

func sortUint32(v []uint32) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j-1] > v[j]; j-- {
			v[j-1], v[j] = v[j], v[j-1]
		}
	}
}
