package storage

import (
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	fs, err := mem.NewFS()
	require.NoError(t, err)
	return New(fs, "snapshots")
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("index.documents", []byte("hello")))

	got, err := s.Get("index.documents")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestExists(t *testing.T) {
	s := newTestStore(t)
	require.False(t, s.Exists("missing"))

	require.NoError(t, s.Put("present", []byte("x")))
	require.True(t, s.Exists("present"))
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("gone", []byte("x")))
	require.NoError(t, s.Remove("gone"))
	require.False(t, s.Exists("gone"))

	// removing a missing name is not an error
	require.NoError(t, s.Remove("gone"))
}

func TestPutOverwrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put("k", []byte("first")))
	require.NoError(t, s.Put("k", []byte("second")))

	got, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}

func TestRootlessStore(t *testing.T) {
	fs, err := mem.NewFS()
	require.NoError(t, err)
	s := New(fs, "")

	require.NoError(t, s.Put("top.bin", []byte("v")))
	got, err := s.Get("top.bin")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}
