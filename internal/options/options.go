// Package options contains the program options.
package options

import "time"

// DefaultStepLimit is the number of steps after which a run is aborted.
const DefaultStepLimit = 10000

// Parameters contains program selection options.
type Parameters struct {
	Program string `flag:"p" usage:"name of the built-in program to run"`
	Input   string `flag:"i" usage:"raw memory image file to run instead of a built-in program"`
}

// Flags contains behavior options.
type Flags struct {
	List        bool `flag:"list" usage:"list the built-in programs"`
	Disassemble bool `flag:"disasm" usage:"print the disassembly listing without running the program"`
	HexDump     bool `flag:"hexdump" usage:"include a hex dump of the memory"`
	Verify      bool `flag:"verify" usage:"verify that the disassembly reassembles to the memory image"`
	Debug       bool `flag:"debug" usage:"enable debug logging"`
	Quiet       bool `flag:"q" usage:"quiet mode"`
}

// Program options of the simulator.
type Program struct {
	Parameters
	Flags
	Runner
}

// Runner defines options to control program execution.
type Runner struct {
	StepLimit int           // maximum number of steps, 0 for no limit
	Delay     time.Duration // pause between two steps, 0 runs unpaced
}

// NewRunner returns a new options instance with default options.
func NewRunner() Runner {
	return Runner{
		StepLimit: DefaultStepLimit,
	}
}
