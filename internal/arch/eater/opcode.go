package eater

import (
	"fmt"

	"github.com/retroenv/retrogolib/set"
)

// Opcode is the first byte of an encoded instruction.
type Opcode uint8

// Assigned opcodes. 9 to 13 are left free for future instructions.
const (
	NopOpcode Opcode = 0
	LdiOpcode Opcode = 1
	LdaOpcode Opcode = 2
	StaOpcode Opcode = 3
	AddOpcode Opcode = 4
	SubOpcode Opcode = 5
	JmpOpcode Opcode = 6
	JpzOpcode Opcode = 7
	JpcOpcode Opcode = 8
	OutOpcode Opcode = 14
	HltOpcode Opcode = 15
)

// OperandType defines what the operand byte of an instruction refers to.
type OperandType uint8

// Operand types.
const (
	NoOperand OperandType = iota
	ImmediateOperand
	AddressOperand
)

// OpcodeInfo contains the static properties of an opcode.
type OpcodeInfo struct {
	Name    string
	Operand OperandType
}

// opcodeTable maps every assigned opcode to its properties, unassigned entries have an
// empty name.
var opcodeTable = [...]OpcodeInfo{
	NopOpcode: {Name: "NOP", Operand: NoOperand},
	LdiOpcode: {Name: "LDI", Operand: ImmediateOperand},
	LdaOpcode: {Name: "LDA", Operand: AddressOperand},
	StaOpcode: {Name: "STA", Operand: AddressOperand},
	AddOpcode: {Name: "ADD", Operand: AddressOperand},
	SubOpcode: {Name: "SUB", Operand: AddressOperand},
	JmpOpcode: {Name: "JMP", Operand: AddressOperand},
	JpzOpcode: {Name: "JPZ", Operand: AddressOperand},
	JpcOpcode: {Name: "JPC", Operand: AddressOperand},
	OutOpcode: {Name: "OUT", Operand: NoOperand},
	HltOpcode: {Name: "HLT", Operand: NoOperand},
}

// JumpOpcodes contains all opcodes that can transfer control to their operand address.
var JumpOpcodes = newOpcodeSet(JmpOpcode, JpzOpcode, JpcOpcode)

func newOpcodeSet(opcodes ...Opcode) set.Set[Opcode] {
	s := set.New[Opcode]()
	for _, op := range opcodes {
		s.Add(op)
	}
	return s
}

// Info returns the properties of the opcode and whether the opcode is assigned.
func (o Opcode) Info() (OpcodeInfo, bool) {
	if int(o) >= len(opcodeTable) {
		return OpcodeInfo{}, false
	}
	info := opcodeTable[o]
	return info, info.Name != ""
}

// Valid returns whether the opcode is assigned to an instruction.
func (o Opcode) Valid() bool {
	_, ok := o.Info()
	return ok
}

// Name returns the mnemonic of the opcode.
func (o Opcode) Name() string {
	info, ok := o.Info()
	if !ok {
		return fmt.Sprintf("$%02X", uint8(o))
	}
	return info.Name
}

// HasOperand returns whether the opcode is followed by an operand byte.
func (o Opcode) HasOperand() bool {
	info, ok := o.Info()
	return ok && info.Operand != NoOperand
}

// Size returns the encoded size in bytes of an instruction using this opcode.
func (o Opcode) Size() int {
	if o.HasOperand() {
		return 2
	}
	return 1
}

// IsJump returns whether the opcode is a conditional or unconditional jump.
func (o Opcode) IsJump() bool {
	return JumpOpcodes.Contains(o)
}

// String implements the fmt.Stringer interface.
func (o Opcode) String() string {
	return o.Name()
}
