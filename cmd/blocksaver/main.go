package main

import (
	"fmt"
	"os"

	"github.com/ib-77/blocksaver/internal/cli"
)

// runMain executes the command and returns the exit code.
func runMain() int {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(runMain())
}
