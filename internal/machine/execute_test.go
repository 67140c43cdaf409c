package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/eatersim/internal/arch/eater"
	"github.com/retroenv/retrogolib/assert"
)

func TestExecute(t *testing.T) {
	tests := []struct {
		name    string
		program []eater.Instruction
		data    []byte
		steps   int

		accumulator    byte
		programCounter byte
		carry          bool
		memory         []byte
	}{
		{
			name:           "nop",
			program:        []eater.Instruction{eater.Nop(), eater.Hlt()},
			steps:          1,
			programCounter: 1,
		},
		{
			name:           "ldi",
			program:        []eater.Instruction{eater.Ldi(0x0D), eater.Hlt()},
			steps:          1,
			accumulator:    0x0D,
			programCounter: 2,
		},
		{
			name:           "lda",
			program:        []eater.Instruction{eater.Lda(0x03), eater.Hlt()},
			data:           []byte{0x0E, 0x0F},
			steps:          1,
			accumulator:    0x0E,
			programCounter: 2,
		},
		{
			name:           "lda out of range keeps accumulator",
			program:        []eater.Instruction{eater.Ldi(0x21), eater.Lda(0xF0), eater.Hlt()},
			steps:          2,
			accumulator:    0x21,
			programCounter: 4,
		},
		{
			name:           "sta",
			program:        []eater.Instruction{eater.Lda(0x04), eater.Sta(0x05)},
			data:           []byte{0xCD, 0x00},
			steps:          2,
			accumulator:    0xCD,
			programCounter: 4,
			memory:         []byte{0x02, 0x04, 0x03, 0x05, 0xCD, 0xCD},
		},
		{
			name:           "add without carry",
			program:        []eater.Instruction{eater.Lda(0x05), eater.Add(0x06), eater.Hlt()},
			data:           []byte{0x3F, 0xC0},
			steps:          2,
			accumulator:    0xFF,
			programCounter: 4,
		},
		{
			name:           "add with carry",
			program:        []eater.Instruction{eater.Ldi(0xFF), eater.Add(0x05), eater.Hlt()},
			data:           []byte{0x01},
			steps:          2,
			accumulator:    0x00,
			programCounter: 4,
			carry:          true,
		},
		{
			name:           "add clears carry",
			program:        []eater.Instruction{eater.Ldi(0xFF), eater.Add(0x07), eater.Add(0x07), eater.Hlt()},
			data:           []byte{0x01},
			steps:          3,
			accumulator:    0x01,
			programCounter: 6,
		},
		{
			name:           "add out of range clears carry",
			program:        []eater.Instruction{eater.Ldi(0xFF), eater.Add(0x07), eater.Add(0xF0), eater.Hlt()},
			data:           []byte{0x01},
			steps:          3,
			accumulator:    0x00,
			programCounter: 6,
		},
		{
			name:           "sub without borrow",
			program:        []eater.Instruction{eater.Lda(0x05), eater.Sub(0x06), eater.Hlt()},
			data:           []byte{0xC0, 0x3F},
			steps:          2,
			accumulator:    0x81,
			programCounter: 4,
		},
		{
			name:           "sub with borrow",
			program:        []eater.Instruction{eater.Ldi(0x01), eater.Sub(0x05), eater.Hlt()},
			data:           []byte{0x02},
			steps:          2,
			accumulator:    0xFF,
			programCounter: 4,
			carry:          true,
		},
		{
			name:           "sub equal values",
			program:        []eater.Instruction{eater.Ldi(0x05), eater.Sub(0x05), eater.Hlt()},
			data:           []byte{0x05},
			steps:          2,
			accumulator:    0x00,
			programCounter: 4,
		},
		{
			name:           "jmp",
			program:        []eater.Instruction{eater.Jmp(0x03), eater.Hlt(), eater.Hlt()},
			steps:          1,
			programCounter: 3,
		},
		{
			name:           "jpz taken",
			program:        []eater.Instruction{eater.Jpz(0x03), eater.Hlt(), eater.Hlt()},
			steps:          1,
			programCounter: 3,
		},
		{
			name:           "jpz not taken",
			program:        []eater.Instruction{eater.Ldi(0x01), eater.Jpz(0x00), eater.Hlt()},
			steps:          2,
			accumulator:    0x01,
			programCounter: 4,
		},
		{
			name:           "jpc not taken",
			program:        []eater.Instruction{eater.Jpc(0xDD), eater.Hlt()},
			steps:          1,
			programCounter: 2,
		},
		{
			name: "jpc taken",
			program: []eater.Instruction{
				eater.Jpc(0xDD), eater.Ldi(0xFF), eater.Add(0x01), eater.Jpc(0x00), eater.Hlt(),
			},
			steps:          4,
			accumulator:    0xDC,
			programCounter: 0,
			carry:          true,
		},
		{
			name:           "hlt",
			program:        []eater.Instruction{eater.Hlt()},
			steps:          1,
			programCounter: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.program, tt.data)
			for range tt.steps {
				m.Step()
			}

			assert.False(t, m.Flag(IllegalHalt), "unexpected illegal halt: %v", m.IllegalReason())
			assert.Equal(t, tt.accumulator, m.Accumulator())
			assert.Equal(t, tt.programCounter, m.ProgramCounter())
			assert.Equal(t, tt.carry, m.Flag(Carry))
			if tt.memory != nil {
				assert.Equal(t, tt.memory, m.Memory())
			}
		})
	}
}

func TestExecute_Out(t *testing.T) {
	var output []byte
	m := newTestMachine(t, []eater.Instruction{eater.Ldi(0x0D), eater.Out(), eater.Hlt()}, nil,
		WithOutput(func(value byte) {
			output = append(output, value)
		}))

	runUntilHalted(m, 10)

	assert.Equal(t, []byte{0x0D}, output)
	assert.Equal(t, byte(3), m.ProgramCounter())
	assert.True(t, m.Flag(Halt))
}

func TestExecute_JumpOutOfRange(t *testing.T) {
	m := newTestMachine(t, []eater.Instruction{eater.Jmp(0x02), eater.Jmp(0xCC)}, []byte{0x15})

	m.Step()
	assert.Equal(t, byte(2), m.ProgramCounter())
	assert.False(t, m.Halted())

	m.Step()
	assert.True(t, m.Flag(IllegalHalt))
	assert.Equal(t, byte(2), m.ProgramCounter())
}

func TestExecute_JumpTargetOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		program []eater.Instruction
		data    []byte
		steps   int

		illegal        bool
		programCounter byte
	}{
		{
			name:    "jmp",
			program: []eater.Instruction{eater.Jmp(0xCC)},
			steps:   1,
			illegal: true,
		},
		{
			name:    "jmp to memory length",
			program: []eater.Instruction{eater.Jmp(0x02)},
			steps:   1,
			illegal: true,
		},
		{
			name:    "jpz taken",
			program: []eater.Instruction{eater.Jpz(0xCC), eater.Hlt()},
			steps:   1,
			illegal: true,
		},
		{
			name:           "jpz not taken",
			program:        []eater.Instruction{eater.Ldi(0x01), eater.Jpz(0xCC), eater.Hlt()},
			steps:          2,
			programCounter: 4,
		},
		{
			name:           "jpc taken",
			program:        []eater.Instruction{eater.Ldi(0xFF), eater.Add(0x07), eater.Jpc(0xCC), eater.Hlt()},
			data:           []byte{0x01},
			steps:          3,
			illegal:        true,
			programCounter: 4,
		},
		{
			name:           "jpc not taken",
			program:        []eater.Instruction{eater.Jpc(0xCC), eater.Hlt()},
			steps:          1,
			programCounter: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.program, tt.data)
			for range tt.steps {
				m.Step()
			}

			assert.Equal(t, tt.illegal, m.Flag(IllegalHalt), "illegal reason: %v", m.IllegalReason())
			assert.Equal(t, tt.programCounter, m.ProgramCounter())
			if tt.illegal {
				assert.True(t, errors.Is(m.IllegalReason(), ErrAddressOutOfRange))
			}
		})
	}
}
