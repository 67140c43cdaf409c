// Package fileprocessor handles the processing of the selected program
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/eatersim/internal/config"
	"github.com/retroenv/eatersim/internal/listing"
	"github.com/retroenv/eatersim/internal/options"
	"github.com/retroenv/eatersim/internal/pipeline"
	"github.com/retroenv/eatersim/internal/programs"
	"github.com/retroenv/retrogolib/log"
)

// ProcessProgram runs or disassembles the program selected by the options and writes the
// listing to stdout.
func ProcessProgram(ctx context.Context, logger *log.Logger, opts options.Program) error {
	listingOpts := listing.Options{
		Color:   config.UseColor(os.Stdout),
		HexDump: opts.HexDump,
	}

	pipe := pipeline.New(logger)
	if _, err := pipe.Execute(ctx, opts, os.Stdout, listingOpts); err != nil {
		return fmt.Errorf("processing program: %w", err)
	}
	return nil
}

// ListPrograms writes the names and descriptions of all built-in programs.
func ListPrograms(writer io.Writer) error {
	for _, name := range programs.Names() {
		program, err := programs.Get(name)
		if err != nil {
			return err
		}

		marker := " "
		if name == programs.Default {
			marker = "*"
		}
		if _, err := fmt.Fprintf(writer, "%s %-8s %s\n", marker, name, program.Description); err != nil {
			return fmt.Errorf("writing program list: %w", err)
		}
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("eatersim", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
