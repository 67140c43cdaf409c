package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/eatersim/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load image file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x01, 0x2A, 0x0E, 0x0F})

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x2A, 0x0E, 0x0F}, image)
	})

	t.Run("load full address space", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, machine.MaxMemorySize))

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, image, machine.MaxMemorySize)
	})

	t.Run("load empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Empty(t, image)
	})

	t.Run("error on oversized image", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, machine.MaxMemorySize+1))

		_, err := New().Load(tmpFile)
		assert.True(t, errors.Is(err, ErrImageTooLarge))
		assert.ErrorContains(t, err, tmpFile)
	})

	t.Run("error on missing file", func(t *testing.T) {
		_, err := New().Load(filepath.Join(t.TempDir(), "missing.bin"))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestLoadFromReader(t *testing.T) {
	image, err := New().LoadFromReader(bytes.NewReader([]byte{0x0F}))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x0F}, image)

	_, err = New().LoadFromReader(bytes.NewReader(make([]byte, 1024)))
	assert.True(t, errors.Is(err, ErrImageTooLarge))
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.bin")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
