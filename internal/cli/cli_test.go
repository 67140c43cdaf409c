package cli

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/retroenv/eatersim/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"eatersim"}, args...)

	return ParseFlags()
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			want: options.Program{
				Parameters: options.Parameters{Program: "count"},
				Runner:     options.Runner{StepLimit: options.DefaultStepLimit},
			},
		},
		{
			name: "program flag",
			args: []string{"-p", "fib"},
			want: options.Program{
				Parameters: options.Parameters{Program: "fib"},
				Runner:     options.Runner{StepLimit: options.DefaultStepLimit},
			},
		},
		{
			name: "positional program",
			args: []string{"-disasm", "fib"},
			want: options.Program{
				Parameters: options.Parameters{Program: "fib"},
				Flags:      options.Flags{Disassemble: true},
				Runner:     options.Runner{StepLimit: options.DefaultStepLimit},
			},
		},
		{
			name: "same program as flag and argument",
			args: []string{"-p", "fib", "fib"},
			want: options.Program{
				Parameters: options.Parameters{Program: "fib"},
				Runner:     options.Runner{StepLimit: options.DefaultStepLimit},
			},
		},
		{
			name: "input file",
			args: []string{"-i", "image.bin", "-hexdump", "-verify"},
			want: options.Program{
				Parameters: options.Parameters{Input: "image.bin"},
				Flags:      options.Flags{HexDump: true, Verify: true},
				Runner:     options.Runner{StepLimit: options.DefaultStepLimit},
			},
		},
		{
			name: "runner flags",
			args: []string{"-steps", "50", "-delay", "250ms", "-q"},
			want: options.Program{
				Parameters: options.Parameters{Program: "count"},
				Flags:      options.Flags{Quiet: true},
				Runner:     options.Runner{StepLimit: 50, Delay: 250 * time.Millisecond},
			},
		},
		{
			name: "list",
			args: []string{"-list", "-debug"},
			want: options.Program{
				Parameters: options.Parameters{Program: "count"},
				Flags:      options.Flags{List: true, Debug: true},
				Runner:     options.Runner{StepLimit: options.DefaultStepLimit},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_UsageErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"unknown flag", []string{"-unknown"}, "flag provided but not defined"},
		{"help", []string{"-h"}, ""},
		{"conflicting program names", []string{"-p", "fib", "count"}, "conflicts with -p fib"},
		{"flag after program", []string{"fib", "-q"}, "found after program name"},
		{"multiple programs", []string{"fib", "count"}, "only one program"},
		{"program and input", []string{"-p", "fib", "-i", "image.bin"}, "can not be combined"},
		{"negative steps", []string{"-steps", "-1"}, "invalid step limit"},
		{"negative delay", []string{"-delay", "-1s"}, "invalid delay"},
		{"debug and quiet", []string{"-debug", "-q"}, "can not be combined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}
