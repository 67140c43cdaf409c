// Package verification verifies that a disassembly recreates the memory image it was
// created from.
package verification

import (
	"fmt"

	"github.com/retroenv/eatersim/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

const maxLoggedMismatches = 10

// Verify reassembles the segments and compares the result to the image.
func Verify(logger *log.Logger, image []byte, segments []disasm.Segment) error {
	if err := checkPartition(image, segments); err != nil {
		return fmt.Errorf("checking segment layout: %w", err)
	}

	output := disasm.Assemble(segments)
	if err := checkBufferEqual(logger, image, output); err != nil {
		return fmt.Errorf("reassembled image mismatch: %w", err)
	}
	return nil
}

// checkPartition checks that the segments are ordered, non empty and do not overlap.
func checkPartition(image []byte, segments []disasm.Segment) error {
	var next int
	for _, seg := range segments {
		if seg.Offset() != next {
			return fmt.Errorf("segment at offset %d, expected offset %d", seg.Offset(), next)
		}
		if seg.Len() == 0 {
			return fmt.Errorf("empty segment at offset %d", seg.Offset())
		}
		next = seg.End()
	}
	if next != len(image) {
		return fmt.Errorf("segments cover %d bytes of %d", next, len(image))
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
