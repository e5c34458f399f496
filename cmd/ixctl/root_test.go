package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmdHasBuildAndQuerySubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["build"])
	require.True(t, names["query"])
}

func TestBuildCmdRejectsMissingFlags(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"build"})
	err := root.Execute()
	require.Error(t, err)
}

func TestQueryCmdRejectsMissingFlags(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"query"})
	err := root.Execute()
	require.Error(t, err)
}
