// Package main implements the main entry point for the 8-bit accumulator computer simulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/eatersim/internal/cli"
	"github.com/retroenv/eatersim/internal/config"
	"github.com/retroenv/eatersim/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if opts.List {
		if err := fileprocessor.ListPrograms(os.Stdout); err != nil {
			logger.Fatal(err.Error())
		}
		return
	}

	if err := fileprocessor.ProcessProgram(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Simulation failed", log.Err(err))
		os.Exit(1)
	}
}
