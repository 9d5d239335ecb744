// Package main is the entry point for the wpactl CLI.
package main

import (
	"os"

	"github.com/avela/wpactl/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
