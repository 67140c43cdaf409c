// Package pipeline orchestrates the load, run, listing and verification stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/retroenv/eatersim/internal/disasm"
	"github.com/retroenv/eatersim/internal/listing"
	"github.com/retroenv/eatersim/internal/loader"
	"github.com/retroenv/eatersim/internal/machine"
	"github.com/retroenv/eatersim/internal/options"
	"github.com/retroenv/eatersim/internal/programs"
	"github.com/retroenv/eatersim/internal/runner"
	"github.com/retroenv/eatersim/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete simulation workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// Result of a pipeline execution.
type Result struct {
	Name   string
	Image  []byte         // initial memory image
	Memory []byte         // memory after the run, equal to the image if nothing was run
	Run    *runner.Result // nil if the program was only disassembled
}

// source is a loaded program that is ready to run.
type source struct {
	name    string
	image   []byte
	machine *machine.Machine
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute loads the selected program and either disassembles or runs it, writing the
// listing to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer,
	listingOpts listing.Options) (*Result, error) {

	src, err := p.load(opts)
	if err != nil {
		return nil, err
	}
	p.printInfo(opts, src)

	listingOpts.HexDump = listingOpts.HexDump || opts.HexDump
	w := listing.New(writer, listingOpts)
	if err := w.WriteCommentHeader(src.name, src.image); err != nil {
		return nil, fmt.Errorf("writing listing header: %w", err)
	}

	result := &Result{
		Name:   src.name,
		Image:  src.image,
		Memory: src.image,
	}

	if opts.Disassemble {
		if err := w.WriteImage(src.image); err != nil {
			return nil, fmt.Errorf("writing disassembly: %w", err)
		}
	} else {
		if err := p.run(ctx, opts, src, writer, w, result); err != nil {
			return result, err
		}
	}

	if opts.Verify {
		if err := verification.Verify(p.logger, result.Memory, disasm.Disassemble(result.Memory)); err != nil {
			return result, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return result, nil
}

// load returns the built-in program or the image file selected by the options.
func (p *Pipeline) load(opts options.Program) (source, error) {
	machineOpts := []machine.Option{machine.WithLogger(p.logger)}

	if opts.Input != "" {
		image, err := p.loader.Load(opts.Input)
		if err != nil {
			return source{}, fmt.Errorf("loading image: %w", err)
		}
		m, err := machine.New(nil, image, machineOpts...)
		if err != nil {
			return source{}, fmt.Errorf("creating machine: %w", err)
		}
		return source{name: filepath.Base(opts.Input), image: image, machine: m}, nil
	}

	program, err := programs.Get(opts.Program)
	if err != nil {
		return source{}, fmt.Errorf("selecting program: %w", err)
	}
	m, err := program.NewMachine(machineOpts...)
	if err != nil {
		return source{}, err
	}
	return source{name: program.Name, image: program.Image(), machine: m}, nil
}

// run executes the program and writes its output followed by the final machine state.
// A run that hit the step limit still writes the machine state before the error is returned.
func (p *Pipeline) run(ctx context.Context, opts options.Program, src source, writer io.Writer,
	w *listing.Writer, result *Result) error {

	var writeErr error
	r := runner.New(p.logger, opts.Runner)
	r.SetOutput(func(value byte) {
		if writeErr == nil {
			_, writeErr = fmt.Fprintf(writer, "%d ", value)
		}
	})

	runResult, runErr := r.Run(ctx, src.machine)
	result.Run = &runResult
	result.Memory = src.machine.Memory()
	if writeErr != nil {
		return fmt.Errorf("writing output: %w", writeErr)
	}
	if runErr != nil && ctx.Err() != nil {
		return fmt.Errorf("running program: %w", runErr)
	}

	if len(runResult.Output) > 0 {
		if _, err := fmt.Fprint(writer, "\n\n"); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	if err := w.WriteMachine(src.machine); err != nil {
		return fmt.Errorf("writing machine state: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	p.logger.Info("Program finished",
		log.String("state", runResult.State.String()),
		log.Int("steps", runResult.Steps),
		log.Uint8("accumulator", src.machine.Accumulator()))
	return nil
}

// printInfo prints information about the program being processed.
func (p *Pipeline) printInfo(opts options.Program, src source) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing program",
		log.String("name", src.name),
		log.Int("size", len(src.image)),
		log.Int("step_limit", opts.StepLimit),
	)
}
