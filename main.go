// Package main is the entry point for the relctl CLI application.
package main

import (
	"os"

	"github.com/danielolaszy/relctl/cmd"
	"github.com/danielolaszy/relctl/internal/logging"
	"github.com/danielolaszy/relctl/internal/report"
)

// main executes the root command and reports any error on stderr.
func main() {
	logging.Debug("starting relctl", "args", os.Args[1:])

	if err := cmd.Execute(); err != nil {
		logging.Debug("command execution failed", "error", err)
		report.Error(os.Stderr, err)
		os.Exit(1)
	}
}
