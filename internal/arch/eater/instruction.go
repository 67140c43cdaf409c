package eater

import "fmt"

// Instruction is an immutable decoded or programmatically constructed instruction.
// The zero value is a NOP.
type Instruction struct {
	opcode  Opcode
	operand byte
}

// Nop does nothing.
func Nop() Instruction { return Instruction{opcode: NopOpcode} }

// Ldi loads the immediate value into A.
func Ldi(value byte) Instruction { return Instruction{opcode: LdiOpcode, operand: value} }

// Lda loads the memory cell at the address into A.
func Lda(address byte) Instruction { return Instruction{opcode: LdaOpcode, operand: address} }

// Sta stores A into the memory cell at the address.
func Sta(address byte) Instruction { return Instruction{opcode: StaOpcode, operand: address} }

// Add adds the memory cell at the address to A.
func Add(address byte) Instruction { return Instruction{opcode: AddOpcode, operand: address} }

// Sub subtracts the memory cell at the address from A.
func Sub(address byte) Instruction { return Instruction{opcode: SubOpcode, operand: address} }

// Jmp jumps to the address.
func Jmp(address byte) Instruction { return Instruction{opcode: JmpOpcode, operand: address} }

// Jpz jumps to the address if A is zero.
func Jpz(address byte) Instruction { return Instruction{opcode: JpzOpcode, operand: address} }

// Jpc jumps to the address if the carry flag is set.
func Jpc(address byte) Instruction { return Instruction{opcode: JpcOpcode, operand: address} }

// Out passes A to the output of the machine.
func Out() Instruction { return Instruction{opcode: OutOpcode} }

// Hlt halts the machine.
func Hlt() Instruction { return Instruction{opcode: HltOpcode} }

// Opcode returns the opcode of the instruction.
func (i Instruction) Opcode() Opcode {
	return i.opcode
}

// Operand returns the operand byte, it is 0 for instructions without operand.
func (i Instruction) Operand() byte {
	return i.operand
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.opcode.Name()
}

// Size returns the encoded size of the instruction in bytes.
func (i Instruction) Size() int {
	return i.opcode.Size()
}

// IsJump returns whether the instruction can transfer control to its operand address.
func (i Instruction) IsJump() bool {
	return i.opcode.IsJump()
}

// Target returns the jump target address for jump instructions.
func (i Instruction) Target() (byte, bool) {
	if !i.IsJump() {
		return 0, false
	}
	return i.operand, true
}

// Bytes returns the encoded instruction.
func (i Instruction) Bytes() []byte {
	if i.opcode.HasOperand() {
		return []byte{byte(i.opcode), i.operand}
	}
	return []byte{byte(i.opcode)}
}

// String returns the instruction in assembly notation, for example "LDA $17".
func (i Instruction) String() string {
	info, ok := i.opcode.Info()
	if !ok {
		return i.opcode.Name()
	}

	switch info.Operand {
	case ImmediateOperand:
		return fmt.Sprintf("%s #$%02X", info.Name, i.operand)
	case AddressOperand:
		return fmt.Sprintf("%s $%02X", info.Name, i.operand)
	default:
		return info.Name
	}
}

// Assemble encodes the instructions in order into a single byte slice.
func Assemble(program []Instruction) []byte {
	var size int
	for _, ins := range program {
		size += ins.Size()
	}

	data := make([]byte, 0, size)
	for _, ins := range program {
		data = append(data, ins.Bytes()...)
	}
	return data
}
