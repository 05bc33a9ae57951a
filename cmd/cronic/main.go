package main

import (
	"os"

	"github.com/darrow-oss/cronweave/internal/cmd"
)

func main() {
	cmd.SetOutput(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
