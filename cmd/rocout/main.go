package main

import (
	"os"

	"github.com/tormodhaugland/rocout/cmd/rocout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
