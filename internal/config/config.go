// Package config handles application configuration and setup
package config

import (
	"os"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// UseColor returns whether listings written to the file should be highlighted with
// terminal escape codes. Color is disabled when the NO_COLOR environment variable is set
// or the file is not a terminal.
func UseColor(file *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
