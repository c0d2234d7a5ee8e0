// Package errdefs defines the error kinds shared by the scaffolding engine.
// Callers match them with errors.Is; the wrapped error keeps its own chain so
// the underlying *fs.PathError stays reachable with errors.As.
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a missing or malformed root, template path,
	// template name, or option value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a walk root or required file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedMergeType indicates a merge between file types that cannot
	// be merged, or between files that failed to parse.
	ErrUnsupportedMergeType = errors.New("unsupported merge type")

	// ErrParse indicates a structured document failed to parse.
	ErrParse = errors.New("parse error")

	// ErrIO indicates a read, write, or mkdir failure from the filesystem.
	ErrIO = errors.New("i/o failure")
)

// IO wraps a filesystem error so it matches ErrIO. A nil err returns nil.
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// InvalidInput returns an error matching ErrInvalidInput.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound returns an error matching ErrNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
