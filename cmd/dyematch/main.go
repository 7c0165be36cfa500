// Dyematch - match colours against a dye palette
//
// Dyematch finds the closest dyes to a colour, builds colour harmonies from
// real dyes and samples or extracts colours from images.
package main

import (
	"os"

	"github.com/jmylchreest/dyematch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
