// Package main is the entry point for the harborview CLI/TUI.
package main

import (
	"os"

	"github.com/harborview-io/harborview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
