package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue indicates a configuration value is out of range.
var ErrInvalidValue = errors.New("invalid config value")

// ParseError reports a configuration file that failed to parse.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
