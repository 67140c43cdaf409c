// Package eater provides the instruction set of a minimal 8-bit single accumulator computer.
//
// # Architecture Overview
//
// The machine has a single 8-bit accumulator register A, an 8-bit program counter, a carry
// flag and up to 256 bytes of flat memory that holds both code and data.
//
// # Instruction Set
//
// Every instruction is encoded as an opcode byte, optionally followed by a single operand byte
// that is either an immediate value or a memory address:
//   - Load and store: LDI, LDA, STA
//   - Arithmetic: ADD, SUB (set the carry flag on overflow or borrow)
//   - Flow control: JMP, JPZ, JPC
//   - Misc: NOP, OUT, HLT
//
// Opcodes 9 to 13 are not assigned and decode as invalid, as does every opcode above 15.
//
// # Decoding
//
// Decoding is a two phase process. The opcode byte alone determines whether the instruction
// is complete or still needs its operand byte:
//
//	builder := eater.FromOpcode(b)
//	switch builder.State() {
//	case eater.Complete:
//		ins = builder.Instruction()
//	case eater.NeedsOperand:
//		ins = builder.WithOperand(operand)
//	}
//
// Decode combines both phases for instructions stored in memory.
package eater
