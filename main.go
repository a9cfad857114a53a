package main

import (
	"os"

	"github.com/linkbio/linkbio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
