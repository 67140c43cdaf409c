// Package programs contains the built-in programs of the simulator.
package programs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/retroenv/eatersim/internal/arch/eater"
	"github.com/retroenv/eatersim/internal/machine"
)

// Default is the name of the program that runs when none is selected.
const Default = "count"

// ErrUnknownProgram is returned for a program name that is not registered.
var ErrUnknownProgram = errors.New("unknown program")

// Program is a named instruction sequence with its trailing data.
type Program struct {
	Name         string
	Description  string
	Instructions []eater.Instruction
	Data         []byte
}

var registry = map[string]Program{
	"count": {
		Name:        "count",
		Description: "count from 1 to 100 and halt",
		Instructions: []eater.Instruction{
			eater.Lda(14), // 0  load counter
			eater.Add(13), // 2  increment
			eater.Sta(14), // 4
			eater.Sub(15), // 6  compare with limit
			eater.Jpz(12), // 8
			eater.Jmp(0),  // 10
			eater.Hlt(),   // 12
		},
		Data: []byte{
			0x01, // 13 step
			0x00, // 14 counter
			100,  // 15 limit
		},
	},
	"fib": {
		Name:        "fib",
		Description: "output the Fibonacci sequence until it overflows 8 bits",
		Instructions: []eater.Instruction{
			eater.Lda(23), // 0  x
			eater.Out(),   // 2
			eater.Add(24), // 3  x + y
			eater.Sta(25), // 5  z
			eater.Lda(24), // 7
			eater.Sta(23), // 9  x = y
			eater.Lda(25), // 11
			eater.Sta(24), // 13 y = z
			eater.Jpc(19), // 15
			eater.Jmp(0),  // 17
			eater.Lda(23), // 19
			eater.Out(),   // 21
			eater.Hlt(),   // 22
		},
		Data: []byte{
			0x00, // 23 x
			0x01, // 24 y
			0x00, // 25 z
		},
	},
}

// Names returns the names of all built-in programs in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the built-in program with the given name.
func Get(name string) (Program, error) {
	program, ok := registry[name]
	if !ok {
		return Program{}, fmt.Errorf("%w '%s'", ErrUnknownProgram, name)
	}
	return program, nil
}

// Image returns the initial memory contents of the program.
func (p Program) Image() []byte {
	return append(eater.Assemble(p.Instructions), p.Data...)
}

// NewMachine returns a machine that is loaded with the program.
func (p Program) NewMachine(options ...machine.Option) (*machine.Machine, error) {
	m, err := machine.New(p.Instructions, p.Data, options...)
	if err != nil {
		return nil, fmt.Errorf("creating machine for program '%s': %w", p.Name, err)
	}
	return m, nil
}
