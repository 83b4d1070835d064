package main

import (
	"os"

	"github.com/art-framework-suite/fhicl-go/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
