package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every lookup miss (unknown product, customer or bill).
var ErrNotFound = errors.New("not found")

// NotFound returns an error for an unknown entity ID that matches ErrNotFound.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}

// ParseError reports malformed raw input, such as a non-numeric price or a
// date that is not YYYY-MM-DD. Always recoverable: ask again.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports well-formed but unacceptable input, such as a
// negative price or a zero quantity.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PersistenceError reports an I/O or decoding failure in a store.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s ledger %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
