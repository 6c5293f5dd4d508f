package main

import (
	"os"

	"github.com/jsterk/tafel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
