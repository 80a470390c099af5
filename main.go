package main

import (
	"os"

	"github.com/jesusmjunior/jesusqgis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
