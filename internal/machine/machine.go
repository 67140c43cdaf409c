// Package machine implements the state and the fetch, decode and execute cycle of the
// 8-bit accumulator computer.
package machine

import (
	"errors"
	"fmt"

	"github.com/retroenv/eatersim/internal/arch/eater"
	"github.com/retroenv/retrogolib/log"
)

// Errors describing why a machine stopped with an illegal halt.
var (
	ErrMemoryTooLarge    = errors.New("memory exceeds the 8-bit address space")
	ErrAddressOutOfRange = errors.New("address out of range")
)

// OutputFunc receives the accumulator value whenever an OUT instruction executes.
type OutputFunc func(value byte)

// Machine is an 8-bit single accumulator computer.
type Machine struct {
	accumulator    byte
	programCounter byte
	flags          Flag
	memory         []byte

	output OutputFunc
	logger *log.Logger

	illegalReason error
}

// New returns a machine whose memory contains the assembled program followed by the data.
func New(program []eater.Instruction, data []byte, options ...Option) (*Machine, error) {
	memory := eater.Assemble(program)
	memory = append(memory, data...)
	if len(memory) > MaxMemorySize {
		return nil, fmt.Errorf("program with %d bytes: %w", len(memory), ErrMemoryTooLarge)
	}

	m := &Machine{
		memory: memory,
		output: printOutput,
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// Accumulator returns the contents of the A register.
func (m *Machine) Accumulator() byte {
	return m.accumulator
}

// ProgramCounter returns the address of the next instruction to execute.
func (m *Machine) ProgramCounter() byte {
	return m.programCounter
}

// SetProgramCounter moves the program counter to the address without executing anything.
func (m *Machine) SetProgramCounter(address byte) {
	m.programCounter = address
}

// SetOutput replaces the function that receives the values of OUT instructions.
func (m *Machine) SetOutput(output OutputFunc) {
	if output == nil {
		output = discardOutput
	}
	m.output = output
}

// Output returns the function that currently receives the values of OUT instructions.
func (m *Machine) Output() OutputFunc {
	return m.output
}

// Halted returns whether the machine stopped, either by a HLT instruction or by an
// illegal halt.
func (m *Machine) Halted() bool {
	return m.Flag(Halt | IllegalHalt)
}

// IllegalReason returns the cause of the illegal halt, or nil if the machine did not
// stop because of a fault.
func (m *Machine) IllegalReason() error {
	return m.illegalReason
}

// Step executes the instruction at the program counter. A halted machine does not change.
func (m *Machine) Step() {
	if m.Halted() {
		return
	}

	pc := m.programCounter
	ins, err := eater.Decode(m.memory, int(pc))
	if err != nil {
		m.illegalHalt(fmt.Errorf("fetching instruction at $%02X: %w", pc, err))
		return
	}

	m.execute(ins)
	if m.Halted() {
		if m.logger != nil {
			m.logger.Debug("Machine halted", log.Hex("address", pc))
		}
		return
	}

	next := m.next(ins)
	if next >= len(m.memory) {
		m.illegalHalt(fmt.Errorf("%s at $%02X continues at %d: %w", ins, pc, next, ErrAddressOutOfRange))
		return
	}
	m.programCounter = byte(next)
}

func (m *Machine) illegalHalt(reason error) {
	m.setFlag(IllegalHalt)
	m.illegalReason = reason

	if m.logger != nil {
		m.logger.Debug("Machine stopped with illegal halt",
			log.Hex("address", m.programCounter),
			log.Err(reason))
	}
}
