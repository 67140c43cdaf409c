package machine

// MaxMemorySize is the size of the 8-bit address space.
const MaxMemorySize = 256

// Len returns the current length of the memory in bytes.
func (m *Machine) Len() int {
	return len(m.memory)
}

// Read returns the memory cell at the address. The second return value is false if the
// address is past the end of the memory.
func (m *Machine) Read(address byte) (byte, bool) {
	if int(address) >= len(m.memory) {
		return 0, false
	}
	return m.memory[address], true
}

// ReadRange returns a copy of up to length bytes starting at the address, clamped to the
// end of the memory.
func (m *Machine) ReadRange(address byte, length int) []byte {
	start := int(address)
	if start >= len(m.memory) || length <= 0 {
		return []byte{}
	}
	end := min(start+length, len(m.memory))

	data := make([]byte, end-start)
	copy(data, m.memory[start:end])
	return data
}

// Memory returns a copy of the whole memory.
func (m *Machine) Memory() []byte {
	return m.ReadRange(0, len(m.memory))
}

// Write stores the value at the address. Writing past the end of the memory grows it to
// include the address, the gap is filled with zeros.
func (m *Machine) Write(address byte, value byte) {
	if int(address) >= len(m.memory) {
		padding := make([]byte, int(address)-len(m.memory)+1)
		m.memory = append(m.memory, padding...)
	}
	m.memory[address] = value
}
