package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// Local is a file handle backed by a file that already sits on the local
// filesystem, typically a temporary location written by another transport.
// MoveTo renames it into place, falling back to copy-then-unlink across devices.
type Local struct {
	field string
	path  string
	name  string
	size  int64
	moved bool
}

// NewLocal creates a handle for the regular file at path.
// name is the display name reported to callers; it defaults to the base of path.
func NewLocal(field, path, name string) (*Local, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if name == "" {
		name = filepath.Base(path)
	}

	return &Local{
		field: field,
		path:  path,
		name:  name,
		size:  info.Size(),
	}, nil
}

func (l *Local) Field() string     { return l.field }
func (l *Local) Name() string      { return l.name }
func (l *Local) Size() int64       { return l.size }
func (l *Local) Extension() string { return Extension(l.name) }

// Path returns the current location of the file. After a successful move it
// points at the destination.
func (l *Local) Path() string { return l.path }

// IsUploaded reports whether the handle still refers to an unmoved regular file.
func (l *Local) IsUploaded() bool {
	if l.moved {
		return false
	}
	info, err := os.Stat(l.path)
	return err == nil && info.Mode().IsRegular()
}

// Open opens the file content for reading.
func (l *Local) Open() (io.ReadCloser, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}

// MoveTo relocates the file to dst. On failure the source is left untouched.
func (l *Local) MoveTo(dst string) error {
	if l.moved {
		return ErrAlreadyMoved
	}
	if dst == "" {
		return ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	err := os.Rename(l.path, dst)
	if errors.Is(err, syscall.EXDEV) {
		err = l.copyAndUnlink(dst)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToMoveFile, err)
	}

	l.path = dst
	l.moved = true
	return nil
}

func (l *Local) copyAndUnlink(dst string) error {
	src, err := l.Open()
	if err != nil {
		return err
	}
	_, err = CopyTo(src, dst)
	_ = src.Close()
	if err != nil {
		return err
	}
	if err := os.Remove(l.path); err != nil {
		_ = os.Remove(dst) // Keep the source authoritative
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// CopyTo writes everything from src into a new file at dst, creating parent
// directories as needed. Partial files are removed on error.
// Returns the number of bytes written.
func CopyTo(src io.Reader, dst string) (int64, error) {
	if dst == "" {
		return 0, ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	// Create with restrictive permissions (644 = rw-r--r--)
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	written := int64(0)
	buf := make([]byte, 32*1024) // 32KB balances memory usage and syscall overhead
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			nw, writeErr := out.Write(buf[:n])
			if writeErr != nil {
				_ = out.Close()
				_ = os.Remove(dst)
				return 0, fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
			written += int64(nw)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = out.Close()
			_ = os.Remove(dst)
			return 0, fmt.Errorf("%w: %v", ErrFailedToReadFile, readErr)
		}
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return written, nil
}

// Remove deletes the file at path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
