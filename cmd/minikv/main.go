package main

import (
	"os"

	"github.com/sidquark/minikv/cmd/minikv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
