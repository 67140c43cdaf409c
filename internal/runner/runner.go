// Package runner executes programs on a machine until they halt.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/eatersim/internal/machine"
	"github.com/retroenv/eatersim/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// ErrStepLimit is returned when a program did not halt within the step limit.
var ErrStepLimit = errors.New("step limit reached")

// State describes how a run ended.
type State uint8

// Run states.
const (
	Running State = iota // stopped before the machine halted
	Halted
	IllegalHalted
)

// String implements the fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case Halted:
		return "halted"
	case IllegalHalted:
		return "illegal halt"
	default:
		return "running"
	}
}

// Result of a run.
type Result struct {
	Steps         int    // number of executed steps
	State         State  // state of the machine after the run
	Output        []byte // all values that were passed to the output, in order
	IllegalReason error  // cause of an illegal halt
}

// Runner steps a machine until it halts.
type Runner struct {
	logger  *log.Logger
	options options.Runner
	output  machine.OutputFunc
}

// New creates a new runner.
func New(logger *log.Logger, options options.Runner) *Runner {
	return &Runner{
		logger:  logger,
		options: options,
	}
}

// SetOutput sets a function that additionally receives every output value while running.
func (r *Runner) SetOutput(output machine.OutputFunc) {
	r.output = output
}

// Run steps the machine until it halts, the step limit is reached or the context is
// cancelled. An illegal halt is reported in the result state and is not an error.
// The output of the machine is redirected to the runner for the duration of the run,
// the previous output function is restored afterwards.
func (r *Runner) Run(ctx context.Context, m *machine.Machine) (Result, error) {
	var result Result
	previous := m.Output()
	m.SetOutput(func(value byte) {
		result.Output = append(result.Output, value)
		r.logger.Debug("Output", log.Uint8("value", value), log.Hex("address", m.ProgramCounter()))
		if r.output != nil {
			r.output(value)
		}
	})
	defer m.SetOutput(previous)

	var tick <-chan time.Time
	if r.options.Delay > 0 {
		ticker := time.NewTicker(r.options.Delay)
		defer ticker.Stop()
		tick = ticker.C
	}

	for !m.Halted() {
		if r.options.StepLimit > 0 && result.Steps >= r.options.StepLimit {
			r.finish(m, &result)
			return result, fmt.Errorf("program did not halt after %d steps: %w", result.Steps, ErrStepLimit)
		}

		if err := r.wait(ctx, tick); err != nil {
			r.finish(m, &result)
			return result, err
		}

		m.Step()
		result.Steps++
	}

	r.finish(m, &result)
	return result, nil
}

// wait blocks until the next tick if the run is paced.
func (r *Runner) wait(ctx context.Context, tick <-chan time.Time) error {
	if tick == nil {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick:
		return nil
	}
}

func (r *Runner) finish(m *machine.Machine, result *Result) {
	switch {
	case m.Flag(machine.IllegalHalt):
		result.State = IllegalHalted
		result.IllegalReason = m.IllegalReason()
		r.logger.Warn("Program stopped with illegal halt",
			log.Int("steps", result.Steps),
			log.Hex("address", m.ProgramCounter()),
			log.Err(result.IllegalReason))

	case m.Flag(machine.Halt):
		result.State = Halted
		r.logger.Debug("Program halted",
			log.Int("steps", result.Steps),
			log.Hex("address", m.ProgramCounter()),
			log.Uint8("accumulator", m.Accumulator()))

	default:
		result.State = Running
	}
}
