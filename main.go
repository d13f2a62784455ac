package main

import (
	"os"

	"github.com/quillium/quillium/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
