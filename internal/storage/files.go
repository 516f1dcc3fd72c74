package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

const (
	// PlainFileMode is used for documents written as plain text.
	PlainFileMode fs.FileMode = 0644

	// SealedFileMode is used for encrypted envelopes.
	SealedFileMode fs.FileMode = 0600
)

// Files reads and writes documents on the OS filesystem.
type Files struct {
	// Mode is the permission for newly created files. Existing files keep theirs.
	Mode fs.FileMode
}

// NewFiles returns a Files that creates plain documents with PlainFileMode.
func NewFiles() *Files {
	return &Files{Mode: PlainFileMode}
}

// ReadFile returns the contents of path.
func (f *Files) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrRead, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrRead, err)
	}
	return data, nil
}

// WriteFile atomically replaces path with data.
func (f *Files) WriteFile(ctx context.Context, path string, data []byte) error {
	mode := f.Mode
	if mode == 0 {
		mode = PlainFileMode
	}
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return f.write(ctx, path, data, mode)
}

// WriteSealed atomically replaces path with an envelope. New files get
// SealedFileMode and existing files lose any group or other bits.
func (f *Files) WriteSealed(ctx context.Context, path string, data []byte) error {
	mode := SealedFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm() & SealedFileMode
	}
	return f.write(ctx, path, data, mode)
}

func (f *Files) write(ctx context.Context, path string, data []byte, mode fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", verrors.ErrWrite, err)
	}
	if err := WriteAtomic(path, data, mode); err != nil {
		return fmt.Errorf("%w: %v", verrors.ErrWrite, err)
	}
	return nil
}

// WriteAtomic writes data to a temporary file next to path and renames it into place.
func WriteAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing %s: %w", tmpPath, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions on %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
