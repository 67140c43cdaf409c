package eater

import (
	"errors"
	"fmt"
)

// Decode errors.
var (
	ErrMissingOpcode  = errors.New("no opcode byte")
	ErrInvalidOpcode  = errors.New("invalid opcode")
	ErrMissingOperand = errors.New("missing operand byte")
)

// BuildState is the state of an instruction after its opcode byte has been read.
type BuildState uint8

// Build states.
const (
	Invalid BuildState = iota
	Complete
	NeedsOperand
)

// Builder is the result of the first decode phase.
type Builder struct {
	state  BuildState
	opcode Opcode
}

// FromOpcode starts decoding an instruction from its opcode byte.
func FromOpcode(b byte) Builder {
	opcode := Opcode(b)
	switch {
	case !opcode.Valid():
		return Builder{state: Invalid, opcode: opcode}
	case opcode.HasOperand():
		return Builder{state: NeedsOperand, opcode: opcode}
	default:
		return Builder{state: Complete, opcode: opcode}
	}
}

// State returns the decode state.
func (b Builder) State() BuildState {
	return b.state
}

// Opcode returns the opcode that was read.
func (b Builder) Opcode() Opcode {
	return b.opcode
}

// Instruction returns the decoded instruction of a complete builder.
func (b Builder) Instruction() Instruction {
	return Instruction{opcode: b.opcode}
}

// WithOperand completes an instruction that needs an operand byte.
func (b Builder) WithOperand(operand byte) Instruction {
	return Instruction{opcode: b.opcode, operand: operand}
}

// Decode decodes the instruction at the given offset of the memory.
func Decode(memory []byte, offset int) (Instruction, error) {
	if offset < 0 || offset >= len(memory) {
		return Instruction{}, fmt.Errorf("decoding at offset %d: %w", offset, ErrMissingOpcode)
	}

	builder := FromOpcode(memory[offset])
	switch builder.State() {
	case Complete:
		return builder.Instruction(), nil

	case NeedsOperand:
		if offset+1 >= len(memory) {
			return Instruction{}, fmt.Errorf("decoding %s at offset %d: %w",
				builder.Opcode().Name(), offset, ErrMissingOperand)
		}
		return builder.WithOperand(memory[offset+1]), nil

	default:
		return Instruction{}, fmt.Errorf("decoding opcode $%02X at offset %d: %w",
			memory[offset], offset, ErrInvalidOpcode)
	}
}
