package lexicon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	r := NewResolver()
	require.Equal(t, uint32(0), r.Add("search"))
	require.Equal(t, uint32(1), r.Add("engine"))
	require.Equal(t, uint32(2), r.Add("index"))
	require.Equal(t, 3, r.NumTerms())
}

func TestResolveKnownAndUnknownTerms(t *testing.T) {
	r := NewResolver()
	r.Add("search")
	r.Add("engine")

	id, ok := r.Resolve("engine")
	require.True(t, ok)
	require.Equal(t, uint32(1), id)

	_, ok = r.Resolve("missing")
	require.False(t, ok)
}

func TestTermReverseLookup(t *testing.T) {
	r := NewResolver()
	r.Add("alpha")
	r.Add("beta")

	term, err := r.Term(1)
	require.NoError(t, err)
	require.Equal(t, "beta", term)

	_, err = r.Term(5)
	require.Error(t, err)
}

func TestPrefixSearch(t *testing.T) {
	r := NewResolver()
	r.Add("search")
	r.Add("sequence")
	r.Add("engine")

	matches := r.PrefixSearch("se")
	require.ElementsMatch(t, []string{"search", "sequence"}, matches)
}

func TestAddAfterResolvePanics(t *testing.T) {
	r := NewResolver()
	r.Add("one")
	_, _ = r.Resolve("one")

	require.Panics(t, func() { r.Add("two") })
}
