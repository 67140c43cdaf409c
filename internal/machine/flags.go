package machine

import "strings"

// Flag is a single status bit of the machine.
type Flag uint8

// Status flags.
const (
	Carry       Flag = 1 << iota // unsigned overflow or borrow of the last ADD or SUB
	Halt                         // stopped by a HLT instruction
	IllegalHalt                  // stopped by a decode failure or an out of range jump
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{Carry, "carry"},
	{Halt, "halt"},
	{IllegalHalt, "illegal halt"},
}

// String implements the fmt.Stringer interface.
func (f Flag) String() string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Flag returns whether the given flag is set.
func (m *Machine) Flag(flag Flag) bool {
	return m.flags&flag != 0
}

// Flags returns all status flags.
func (m *Machine) Flags() Flag {
	return m.flags
}

func (m *Machine) setFlag(flag Flag) {
	m.flags |= flag
}

func (m *Machine) clearFlag(flag Flag) {
	m.flags &^= flag
}
