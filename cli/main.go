package main

import (
	"fmt"
	"os"

	"github.com/trebuchet-org/zkpm/internal/cli"
	"github.com/trebuchet-org/zkpm/internal/cli/render"
	"github.com/trebuchet-org/zkpm/internal/config"
)

// Set via -ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := cli.Execute(rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		os.Exit(1)
	}
}
