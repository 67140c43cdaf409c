package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/eatersim/internal/arch/eater"
)

// SegmentKind defines whether a segment was classified as code or as data.
type SegmentKind uint8

// Segment kinds.
const (
	DataSegment SegmentKind = iota
	InstructionSegment
)

// String implements the fmt.Stringer interface.
func (k SegmentKind) String() string {
	if k == InstructionSegment {
		return "instruction"
	}
	return "data"
}

// Segment is a contiguous range of the disassembled buffer.
type Segment struct {
	kind   SegmentKind
	offset int
	data   []byte

	instruction eater.Instruction // only set for instruction segments
}

// Kind returns whether the segment is code or data.
func (s Segment) Kind() SegmentKind {
	return s.kind
}

// IsInstruction returns whether the segment holds a single decoded instruction.
func (s Segment) IsInstruction() bool {
	return s.kind == InstructionSegment
}

// Offset returns the start of the segment in the buffer.
func (s Segment) Offset() int {
	return s.offset
}

// Len returns the number of bytes covered by the segment.
func (s Segment) Len() int {
	return len(s.data)
}

// End returns the offset of the first byte after the segment.
func (s Segment) End() int {
	return s.offset + len(s.data)
}

// Contains returns whether the offset is covered by the segment.
func (s Segment) Contains(offset int) bool {
	return offset >= s.offset && offset < s.End()
}

// Instruction returns the decoded instruction of an instruction segment.
func (s Segment) Instruction() (eater.Instruction, bool) {
	if s.kind != InstructionSegment {
		return eater.Instruction{}, false
	}
	return s.instruction, true
}

// Bytes returns the raw bytes covered by the segment.
func (s Segment) Bytes() []byte {
	data := make([]byte, len(s.data))
	copy(data, s.data)
	return data
}

// String returns the segment in assembly notation, data is written as a byte directive.
func (s Segment) String() string {
	if s.kind == InstructionSegment {
		return s.instruction.String()
	}
	return byteDirective(s.data)
}

func byteDirective(data []byte) string {
	buf := &strings.Builder{}
	buf.WriteString(".byte ")
	for i, b := range data {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "$%02X", b)
	}
	return buf.String()
}
