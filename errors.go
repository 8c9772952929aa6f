package uploader

import (
	"errors"
	"fmt"
)

var (
	ErrNoDestination       = errors.New("no destination directory configured")
	ErrDuplicatePath       = errors.New("destination path already used by another file")
	ErrNoFiles             = errors.New("no files uploaded")
	ErrUnsupportedCallable = errors.New("unsupported callable rule value")
	ErrInvalidRule         = errors.New("invalid rule value")
)

// Warning reports a configuration gap. Warnings never fail validation.
type Warning struct {
	Rule    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Rule, w.Message)
}

// MoveFailure records a file that could not be placed.
type MoveFailure struct {
	Field string
	File  string
	Path  string
	Err   error
}

func (f MoveFailure) Error() string {
	if f.Path == "" {
		return fmt.Sprintf("move %s (%s): %v", f.File, f.Field, f.Err)
	}
	return fmt.Sprintf("move %s (%s) to %s: %v", f.File, f.Field, f.Path, f.Err)
}

func (f MoveFailure) Unwrap() error { return f.Err }
