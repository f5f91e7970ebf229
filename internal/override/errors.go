package override

import (
	"errors"
	"fmt"
)

// ErrPersistFailed is the sentinel matched by PersistError via errors.Is.
var ErrPersistFailed = errors.New("custom dictionary persistence failed")

// PersistError reports a failed custom-dictionary read or write.
// The in-memory set remains authoritative for the session; writes are
// retried on the next mutation.
type PersistError struct {
	// Op is the operation that failed ("load" or "save").
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	return fmt.Sprintf("custom dictionary %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match PersistError with ErrPersistFailed.
func (e *PersistError) Is(target error) bool {
	return target == ErrPersistFailed
}
