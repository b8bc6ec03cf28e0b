package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File stores the blob in a local file, like the browser's local storage
// did for the dashboard.
type File struct {
	path string
}

// NewFile returns a sink writing to path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) ReadBlob(_ context.Context) (string, bool, error) {
	content, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cannot read %q: %w", f.path, err)
	}
	return string(content), true, nil
}

// WriteBlob replaces the file content. It writes to a temporary file first so
// that a failed write never leaves a truncated fund behind.
func (f *File) WriteBlob(_ context.Context, blob string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create directory for %q: %w", f.path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", f.path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("cannot write %q: %w", f.path, err)
	}
	return nil
}

func (f *File) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
