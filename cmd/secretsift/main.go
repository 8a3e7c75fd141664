// Package main is the entry point for the secretsift CLI.
package main

import (
	"os"

	"github.com/stillwater-labs/secretsift/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
