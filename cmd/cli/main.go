package main

import (
	"os"

	"github.com/surfaceplanner/surfaced/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
