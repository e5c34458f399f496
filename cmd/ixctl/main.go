// Command ixctl builds and queries index snapshots from the command
// line: ixctl build reads a forward collection out of SQLite and writes
// a sealed index; ixctl query loads one back and runs a ranked query
// against it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
