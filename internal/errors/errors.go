// Package errors implements the closed error taxonomy of spec.md §7:
// a fixed set of Kind values, each optionally carrying a source
// (line, column) location, wrapped with golang.org/x/xerrors the way the
// teacher's errors package wraps syntax errors with a caller frame.
package errors

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/tidepoolcode/toon-go/internal/token"
)

// Kind enumerates the closed error taxonomy from spec.md §7. Io and Custom
// carry their own message instead of a canned one.
type Kind int

const (
	InvalidSyntax Kind = iota
	InvalidEscape
	UnterminatedString
	MissingColon
	IndentationError
	BlankLineInArray
	CountMismatch
	WidthMismatch
	ExpansionConflict
	DelimiterMismatch
	InvalidHeader
	Io
	Custom
)

func (k Kind) String() string {
	switch k {
	case InvalidSyntax:
		return "InvalidSyntax"
	case InvalidEscape:
		return "InvalidEscape"
	case UnterminatedString:
		return "UnterminatedString"
	case MissingColon:
		return "MissingColon"
	case IndentationError:
		return "IndentationError"
	case BlankLineInArray:
		return "BlankLineInArray"
	case CountMismatch:
		return "CountMismatch"
	case WidthMismatch:
		return "WidthMismatch"
	case ExpansionConflict:
		return "ExpansionConflict"
	case DelimiterMismatch:
		return "DelimiterMismatch"
	case InvalidHeader:
		return "InvalidHeader"
	case Io:
		return "Io"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// SyntaxError is the single error type the decoder and encoder raise. It
// carries the closed Kind, a human message, and — where derivable — a
// 1-based source position.
type SyntaxError struct {
	kind    Kind
	msg     string
	pos     *token.Position
	frame   xerrors.Frame
	wrapped error
}

// New builds a position-less SyntaxError of the given kind.
func New(kind Kind, msg string) *SyntaxError {
	return &SyntaxError{kind: kind, msg: msg, frame: xerrors.Caller(1)}
}

// NewAt builds a SyntaxError located at line/column.
func NewAt(kind Kind, msg string, line, column int) *SyntaxError {
	return &SyntaxError{
		kind:  kind,
		msg:   msg,
		pos:   &token.Position{Line: line, Column: column},
		frame: xerrors.Caller(1),
	}
}

// Wrap turns an arbitrary error (e.g. from an io.Reader, or crossing the
// reflective-bridge boundary) into a Custom/Io SyntaxError, per spec.md §7:
// "Errors crossing the reflective-bridge boundary are wrapped as Custom.
// I/O failures in the reader/writer wrappers surface as Io."
func Wrap(kind Kind, err error) *SyntaxError {
	return &SyntaxError{kind: kind, msg: err.Error(), wrapped: err, frame: xerrors.Caller(1)}
}

// Kind reports the error's taxonomy entry.
func (e *SyntaxError) Kind() Kind { return e.kind }

// Position reports the 1-based (line, column) location, or (0, 0, false)
// if none could be derived.
func (e *SyntaxError) Position() (line, column int, ok bool) {
	if e.pos == nil {
		return 0, 0, false
	}
	return e.pos.Line, e.pos.Column, true
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.pos != nil {
		return fmt.Sprintf("%s: [%d:%d] %s", e.kind, e.pos.Line, e.pos.Column, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Unwrap exposes the wrapped error, if any, for errors.Is/As chains that
// cross the reflective-bridge boundary.
func (e *SyntaxError) Unwrap() error { return e.wrapped }

// FormatError implements xerrors.Formatter so %+v prints a caller frame,
// matching the teacher's syntaxError.FormatError behavior.
func (e *SyntaxError) FormatError(p xerrors.Printer) error {
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return nil
}
