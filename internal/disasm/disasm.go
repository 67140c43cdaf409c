// Package disasm implements a control flow following disassembler that partitions a
// program image into instruction and data segments.
package disasm

import (
	"slices"
	"sort"

	"github.com/retroenv/eatersim/internal/arch/eater"
	"github.com/retroenv/retrogolib/set"
)

// disasm holds the state of a single disassembly run.
type disasm struct {
	data     []byte
	segments []Segment

	offsetsToParse      []int
	offsetsToParseAdded set.Set[int]
}

// Disassemble splits the buffer into an ordered list of segments that cover every byte
// exactly once. Decoding starts at offset 0 and follows the targets of all jump
// instructions, bytes that are not reached this way are returned as data segments.
func Disassemble(data []byte) []Segment {
	if len(data) == 0 {
		return nil
	}

	dis := &disasm{
		data:                slices.Clone(data),
		offsetsToParseAdded: set.New[int](),
	}
	dis.segments = []Segment{{kind: DataSegment, data: dis.data}}

	dis.addOffsetToParse(0)
	for len(dis.offsetsToParse) > 0 {
		last := len(dis.offsetsToParse) - 1
		offset := dis.offsetsToParse[last]
		dis.offsetsToParse = dis.offsetsToParse[:last]

		dis.parseSegmentAt(offset)
	}

	return dis.segments
}

// Assemble recreates the byte image that the segments were disassembled from.
func Assemble(segments []Segment) []byte {
	var size int
	for _, seg := range segments {
		size += seg.Len()
	}

	data := make([]byte, 0, size)
	for _, seg := range segments {
		data = append(data, seg.data...)
	}
	return data
}

// addOffsetToParse queues an offset for parsing. Offsets outside of the buffer and
// offsets that were queued before are ignored.
func (dis *disasm) addOffsetToParse(offset int) {
	if offset < 0 || offset >= len(dis.data) {
		return
	}
	if dis.offsetsToParseAdded.Contains(offset) {
		return
	}
	dis.offsetsToParseAdded.Add(offset)
	dis.offsetsToParse = append(dis.offsetsToParse, offset)
}

// parseSegmentAt peels instructions off the front of the data segment that contains the
// offset until a byte sequence can not be decoded or the segment is used up. Decoding
// always starts at the segment start, even if the offset lies further inside it.
func (dis *disasm) parseSegmentAt(offset int) {
	index := dis.segmentIndex(offset)
	if dis.segments[index].kind != DataSegment {
		return
	}

	for {
		seg := &dis.segments[index]
		ins, err := eater.Decode(seg.data, 0)
		if err != nil {
			return
		}

		size := ins.Size()
		code := Segment{
			kind:        InstructionSegment,
			offset:      seg.offset,
			data:        seg.data[:size:size],
			instruction: ins,
		}
		seg.offset += size
		seg.data = seg.data[size:]
		remaining := len(seg.data)

		// seg is invalidated by the insert
		dis.segments = slices.Insert(dis.segments, index, code)
		index++

		if target, ok := ins.Target(); ok {
			dis.addOffsetToParse(int(target))
		}

		if remaining == 0 {
			dis.segments = slices.Delete(dis.segments, index, index+1)
			return
		}
	}
}

// segmentIndex returns the index of the segment that contains the offset.
func (dis *disasm) segmentIndex(offset int) int {
	return sort.Search(len(dis.segments), func(i int) bool {
		return dis.segments[i].End() > offset
	})
}
