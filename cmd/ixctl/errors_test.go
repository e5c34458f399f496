package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitCodeForArgError(t *testing.T) {
	require.Equal(t, 1, exitCodeFor(argErrorf("bad flag")))
}

func TestExitCodeForIOError(t *testing.T) {
	require.Equal(t, 2, exitCodeFor(&ioError{err: errors.New("disk full")}))
}

func TestExitCodeForInvariantError(t *testing.T) {
	require.Equal(t, 3, exitCodeFor(&invariantError{err: errors.New("non-monotonic docids")}))
}

func TestExitCodeForUnclassifiedError(t *testing.T) {
	require.Equal(t, 1, exitCodeFor(errors.New("mystery failure")))
}
