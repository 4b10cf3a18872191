package main

import (
	"os"

	"github.com/ChenMel27/adaptive-recall-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
