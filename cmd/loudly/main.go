// Package main is the entry point for the loudly CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/loudly/loudly/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
