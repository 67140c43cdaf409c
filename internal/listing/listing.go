// Package listing writes human readable disassembly listings, hex dumps and machine
// state summaries.
package listing

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/eatersim/internal/disasm"
	"github.com/retroenv/eatersim/internal/machine"
)

const (
	dataBytesPerLine    = 2
	hexDumpBytesPerLine = 16

	highlightStart = "\x1b[7m"
	highlightEnd   = "\x1b[0m"
)

// NoProgramCounter disables the program counter marker of a disassembly listing.
const NoProgramCounter = -1

// Options of the writer.
type Options struct {
	Color   bool // highlight the program counter line using terminal escape codes
	HexDump bool // append a hex dump to machine listings
}

// Writer writes listings to an output.
type Writer struct {
	options Options
	writer  io.Writer
}

// line is a single line of a disassembly listing.
type line struct {
	offset int
	end    int
	text   string
}

// New creates a new listing writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteCommentHeader writes the name, size and CRC32 checksum of the image as comments.
func (w *Writer) WriteCommentHeader(name string, image []byte) error {
	if _, err := fmt.Fprintf(w.writer, "; Program: %s\n", name); err != nil {
		return fmt.Errorf("writing program name: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Size: %d bytes\n", len(image)); err != nil {
		return fmt.Errorf("writing program size: %w", err)
	}
	crc32q := crc32.MakeTable(crc32.IEEE)
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n\n", crc32.Checksum(image, crc32q)); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	return nil
}

// WriteMachine writes the register summary and the disassembly of the current memory
// of the machine, followed by a hex dump if enabled.
func (w *Writer) WriteMachine(m *machine.Machine) error {
	if err := w.WriteRegisters(m); err != nil {
		return err
	}

	return w.writeImage(m.Memory(), int(m.ProgramCounter()))
}

// WriteImage writes the disassembly of a memory image without program counter marker,
// followed by a hex dump if enabled.
func (w *Writer) WriteImage(image []byte) error {
	return w.writeImage(image, NoProgramCounter)
}

func (w *Writer) writeImage(image []byte, programCounter int) error {
	segments := disasm.Disassemble(image)
	if err := w.WriteDisassembly(segments, programCounter); err != nil {
		return err
	}

	if !w.options.HexDump {
		return nil
	}
	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return w.WriteHexDump(image)
}

// WriteRegisters writes the accumulator, the program counter and the flags.
func (w *Writer) WriteRegisters(m *machine.Machine) error {
	_, err := fmt.Fprintf(w.writer, "A: $%02X (%d)  PC: $%02X  C: %d  H: %d  I: %d\n\n",
		m.Accumulator(), m.Accumulator(), m.ProgramCounter(),
		flagBit(m, machine.Carry), flagBit(m, machine.Halt), flagBit(m, machine.IllegalHalt))
	if err != nil {
		return fmt.Errorf("writing registers: %w", err)
	}
	return nil
}

// WriteDisassembly writes the segments, one instruction or up to two data bytes per line.
// The line that contains the program counter is marked, pass NoProgramCounter to omit
// the marker.
func (w *Writer) WriteDisassembly(segments []disasm.Segment, programCounter int) error {
	labels := disasm.Labels(segments)

	for i, ln := range splitLines(segments) {
		if err := w.writeLabels(i, ln, labels); err != nil {
			return err
		}

		text := fmt.Sprintf("%02x: %s", ln.offset, ln.text)
		if comment := misalignedComment(ln, labels); comment != "" {
			text = fmt.Sprintf("%-24s ; %s", text, comment)
		}

		if err := w.writeLine(text, programCounter >= ln.offset && programCounter < ln.end); err != nil {
			return err
		}
	}
	return nil
}

// WriteHexDump writes the data as rows of hexadecimal bytes prefixed by their offset.
func (w *Writer) WriteHexDump(data []byte) error {
	for offset := 0; offset < len(data); offset += hexDumpBytesPerLine {
		end := min(offset+hexDumpBytesPerLine, len(data))

		buf := &strings.Builder{}
		fmt.Fprintf(buf, "%02x:", offset)
		for _, b := range data[offset:end] {
			fmt.Fprintf(buf, " %02x", b)
		}

		if _, err := fmt.Fprintf(w.writer, "%s\n", buf.String()); err != nil {
			return fmt.Errorf("writing hex dump line: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeLabels(index int, ln line, labels []disasm.Label) error {
	for _, label := range labels {
		if label.Offset != ln.offset {
			continue
		}

		if index > 0 {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w.writer, "%s:\n", label.Name); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeLine(text string, current bool) error {
	var err error
	switch {
	case !current:
		_, err = fmt.Fprintf(w.writer, "  %s\n", text)
	case w.options.Color:
		_, err = fmt.Fprintf(w.writer, "%s> %s%s\n", highlightStart, text, highlightEnd)
	default:
		_, err = fmt.Fprintf(w.writer, "> %s\n", text)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// splitLines converts the segments to listing lines, data segments are split into lines
// of dataBytesPerLine bytes.
func splitLines(segments []disasm.Segment) []line {
	var lines []line
	for _, seg := range segments {
		if seg.IsInstruction() {
			lines = append(lines, line{offset: seg.Offset(), end: seg.End(), text: seg.String()})
			continue
		}

		data := seg.Bytes()
		for i := 0; i < len(data); i += dataBytesPerLine {
			end := min(i+dataBytesPerLine, len(data))
			lines = append(lines, line{
				offset: seg.Offset() + i,
				end:    seg.Offset() + end,
				text:   byteLine(data[i:end]),
			})
		}
	}
	return lines
}

func byteLine(data []byte) string {
	values := make([]string, 0, len(data))
	for _, b := range data {
		values = append(values, fmt.Sprintf("$%02X", b))
	}
	return ".byte " + strings.Join(values, ", ")
}

// misalignedComment returns a comment naming the labels that point into the middle of
// the line.
func misalignedComment(ln line, labels []disasm.Label) string {
	var comments []string
	for _, label := range labels {
		if !label.Misaligned || label.Offset <= ln.offset || label.Offset >= ln.end {
			continue
		}
		if label.IntoData {
			comments = append(comments, "branch into data detected: "+label.Name)
		} else {
			comments = append(comments, "branch into instruction detected: "+label.Name)
		}
	}
	return strings.Join(comments, ", ")
}

func flagBit(m *machine.Machine, flag machine.Flag) int {
	if m.Flag(flag) {
		return 1
	}
	return 0
}
