// Package loader handles memory image file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/eatersim/internal/machine"
)

// ErrImageTooLarge is returned for images that do not fit into the address space.
var ErrImageTooLarge = errors.New("image exceeds the 8-bit address space")

// Loader handles loading raw memory images from disk.
type Loader struct{}

// New creates a new image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the raw memory image stored in the file.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	image, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading image %s: %w", path, err)
	}
	return image, nil
}

// LoadFromReader reads a raw memory image from the reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// one byte more than allowed to detect oversized images without reading them fully
	image, err := io.ReadAll(io.LimitReader(reader, machine.MaxMemorySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(image) > machine.MaxMemorySize {
		return nil, fmt.Errorf("more than %d bytes: %w", machine.MaxMemorySize, ErrImageTooLarge)
	}
	return image, nil
}
