package main

import (
	"os"

	"github.com/carverml/ortbind/cmd/ortbind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
