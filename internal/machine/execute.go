package machine

import (
	"fmt"

	"github.com/retroenv/eatersim/internal/arch/eater"
)

// execute applies the effect of the instruction to the machine state.
func (m *Machine) execute(ins eater.Instruction) {
	switch ins.Opcode() {
	case eater.NopOpcode, eater.JmpOpcode, eater.JpzOpcode, eater.JpcOpcode:
		// no effect besides advancing the program counter

	case eater.LdiOpcode:
		m.accumulator = ins.Operand()

	case eater.LdaOpcode:
		if value, ok := m.Read(ins.Operand()); ok {
			m.accumulator = value
		}

	case eater.StaOpcode:
		m.Write(ins.Operand(), m.accumulator)

	case eater.AddOpcode:
		m.clearFlag(Carry)
		if value, ok := m.Read(ins.Operand()); ok {
			if int(m.accumulator)+int(value) > 0xFF {
				m.setFlag(Carry)
			}
			m.accumulator += value
		}

	case eater.SubOpcode:
		m.clearFlag(Carry)
		if value, ok := m.Read(ins.Operand()); ok {
			if m.accumulator < value {
				m.setFlag(Carry)
			}
			m.accumulator -= value
		}

	case eater.OutOpcode:
		m.output(m.accumulator)

	case eater.HltOpcode:
		m.setFlag(Halt)

	default:
		m.illegalHalt(fmt.Errorf("executing opcode %s: %w", ins.Opcode(), eater.ErrInvalidOpcode))
	}
}

// next returns the address of the instruction that follows the executed one. It is
// computed without 8-bit wraparound so that running off the end of the address space is
// detected.
func (m *Machine) next(ins eater.Instruction) int {
	pc := int(m.programCounter)

	switch ins.Opcode() {
	case eater.JmpOpcode:
		return int(ins.Operand())

	case eater.JpzOpcode:
		if m.accumulator == 0 {
			return int(ins.Operand())
		}

	case eater.JpcOpcode:
		if m.Flag(Carry) {
			return int(ins.Operand())
		}

	case eater.HltOpcode:
		return pc
	}

	return pc + ins.Size()
}
