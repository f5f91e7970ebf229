package dictionary

import (
	"errors"
	"fmt"
)

// Errors returned by dictionary operations.
var (
	// ErrUnknownLanguage is returned when a source has no word list
	// for the requested language code.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrNotActive is returned when an operation requires an active
	// language that is not active.
	ErrNotActive = errors.New("language is not active")

	// ErrLoadFailed is the sentinel matched by LoadError via errors.Is.
	ErrLoadFailed = errors.New("dictionary load failed")
)

// LoadError reports a failed dictionary load for one language.
// The language stays inactive for the session; callers may retry
// explicitly via Provider.Retry.
type LoadError struct {
	// Lang is the language code whose load failed.
	Lang string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("dictionary load failed for %s: %v", e.Lang, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match LoadError with ErrLoadFailed.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailed
}
