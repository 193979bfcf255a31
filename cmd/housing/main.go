package main

import (
	"os"

	"github.com/anrid/recession-housing/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
