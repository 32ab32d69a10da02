// Package main is the entry point for the filabel CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/filabel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
