package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrogolib/set"
)

const labelNaming = "_label_%02x"

// Label is a named jump destination.
type Label struct {
	Name   string
	Offset int

	// Misaligned is set when the destination is not the first byte of a segment,
	// for example a jump into the operand byte of an instruction.
	Misaligned bool
	// IntoData is set when the destination lies inside a data segment.
	IntoData bool
}

// Labels returns the jump destinations of all instruction segments, sorted by offset.
// Destinations outside of the disassembled buffer do not get a label.
func Labels(segments []Segment) []Label {
	if len(segments) == 0 {
		return nil
	}
	end := segments[len(segments)-1].End()

	destinations := set.New[int]()
	for _, seg := range segments {
		ins, ok := seg.Instruction()
		if !ok {
			continue
		}
		if target, ok := ins.Target(); ok && int(target) < end {
			destinations.Add(int(target))
		}
	}

	offsets := make([]int, 0, len(destinations))
	for offset := range destinations {
		offsets = append(offsets, offset)
	}
	slices.Sort(offsets)

	labels := make([]Label, 0, len(offsets))
	for _, offset := range offsets {
		seg, _ := findSegment(segments, offset)
		labels = append(labels, Label{
			Name:       fmt.Sprintf(labelNaming, offset),
			Offset:     offset,
			Misaligned: seg.Offset() != offset,
			IntoData:   !seg.IsInstruction(),
		})
	}
	return labels
}

// findSegment returns the segment that contains the offset.
func findSegment(segments []Segment, offset int) (Segment, bool) {
	index, found := slices.BinarySearchFunc(segments, offset, func(seg Segment, offset int) int {
		switch {
		case seg.End() <= offset:
			return -1
		case seg.Offset() > offset:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return Segment{}, false
	}
	return segments[index], true
}
