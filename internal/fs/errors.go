package fs

import (
	"errors"
	"fmt"
	"syscall"
)

// IOError is the single error class for filesystem failures: missing paths,
// insufficient permissions and rename target collisions. Callers inspect the
// cause with errors.Is against io/fs.ErrNotExist, ErrPermission and ErrExist.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Wrap returns err as an *IOError unless it already is one.
func Wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// isTransient decides whether an operation should retry or fail immediately.
func isTransient(err error) bool {
	if errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	// extend here for network-mounted build dirs if needed
	return false
}
