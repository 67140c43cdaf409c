package machine

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Option configures a machine on creation.
type Option func(*Machine)

// WithOutput sets the function that receives the values of OUT instructions.
func WithOutput(output OutputFunc) Option {
	return func(m *Machine) {
		m.SetOutput(output)
	}
}

// WithLogger enables debug logging of halts.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

func printOutput(value byte) {
	fmt.Printf("%d ", value)
}

func discardOutput(byte) {}
