// Command cafesim runs the maid cafe management simulation.
package main

import (
	"os"

	"github.com/ayameworks/cafesim/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
