// Command plagcheck scores how much of a candidate document overlaps an
// original one and writes the score to a result file.
//
// Usage:
//
//	plagcheck [flags] <original> <candidate> <output>
//	plagcheck batch [flags] <manifest.yaml>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
