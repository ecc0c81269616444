// Package gridqlerr defines the typed error conditions named in the
// error taxonomy: malformed queries, unknown entities, per-cell type
// mismatches, and I/O failures.
package gridqlerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError reports a malformed query, surfaced to the user verbatim
// with the byte offset of the failure.
type ParseError struct {
	Position int
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: expected %s, found %s", e.Position, e.Expected, e.Found)
}

// UnknownTableError reports a query naming a table that was never loaded.
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q", e.Table)
}

// UnknownColumnError reports a query naming a column absent from the
// table's schema.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// TypeError reports an operator or method applied to an incompatible
// cell type. Callers treat this as a recoverable, per-row condition:
// the row is excluded and a one-time warning recorded, evaluation
// continues.
type TypeError struct {
	Column string
	Method string
	Reason string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: %s.%s: %s", e.Column, e.Method, e.Reason)
}

// NoActiveBufferError reports an operation requiring a current buffer
// (execute a query, save view state) issued while no buffer is open.
type NoActiveBufferError struct{}

func (e *NoActiveBufferError) Error() string {
	return "no active buffer"
}

// IOError wraps a failed file or JSON read/write with the path that
// triggered it. No retry is implied.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Wrap attaches op/path context to err using pkg/errors, returning an
// *IOError. A nil err returns nil.
func Wrap(err error, op, path string) error {
	if err == nil {
		return nil
	}
	return &IOError{Path: path, Op: op, Err: errors.WithStack(err)}
}
