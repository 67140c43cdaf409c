// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/eatersim/internal/options"
	"github.com/retroenv/eatersim/internal/programs"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := options.Program{
		Runner: options.NewRunner(),
	}
	readOptionFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	if err := applyArgs(flags, &opts, flags.Args()); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	if opts.Program == "" && opts.Input == "" {
		opts.Program = programs.Default
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: eatersim [options] [program]\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// applyArgs takes the program name from the positional arguments.
func applyArgs(flags *flag.FlagSet, opts *options.Program, args []string) error {
	switch len(args) {
	case 0:
		return nil

	case 1:
		name := args[0]
		if opts.Program != "" && opts.Program != name {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("program %s given as argument conflicts with -p %s", name, opts.Program),
			}
		}
		opts.Program = name
		return nil

	default:
		for _, arg := range args[1:] {
			if arg != "" && arg[0] == '-' {
				return &UsageError{
					flags: flags,
					msg:   fmt.Sprintf("Potential argument %s found after program name, please pass the program name as last argument", arg),
				}
			}
		}
		return &UsageError{flags: flags, msg: "only one program can be run at a time"}
	}
}

// validateOptions checks option values and their combinations.
func validateOptions(opts options.Program) error {
	if opts.Program != "" && opts.Input != "" {
		return errors.New("a built-in program and an input file can not be combined")
	}
	if opts.StepLimit < 0 {
		return fmt.Errorf("invalid step limit %d", opts.StepLimit)
	}
	if opts.Delay < 0 {
		return fmt.Errorf("invalid delay %s", opts.Delay)
	}
	if opts.Debug && opts.Quiet {
		return errors.New("debug and quiet mode can not be combined")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Program, "p", "", "name of the built-in program to run (default \""+programs.Default+"\")")
	flags.StringVar(&opts.Input, "i", "", "name of a raw memory image file to run instead of a built-in program")
	flags.BoolVar(&opts.List, "list", false, "list the built-in programs")
	flags.IntVar(&opts.StepLimit, "steps", opts.StepLimit, "maximum number of steps to execute, 0 for no limit")
	flags.DurationVar(&opts.Delay, "delay", opts.Delay, "pause between two steps, for example 500ms")
	flags.BoolVar(&opts.Disassemble, "disasm", false, "print the disassembly listing without running the program")
	flags.BoolVar(&opts.HexDump, "hexdump", false, "include a hex dump of the memory in the listing")
	flags.BoolVar(&opts.Verify, "verify", false, "verify that the disassembly of the final memory reassembles to the same image")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
