package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Kind classifies a compile failure.
type Kind int

const (
	// KindLex reports runaway or oversized tokens and end of input inside a
	// token, string or data block.
	KindLex Kind = iota + 1

	// KindSyntax reports missing delimiters, unknown chunk names, malformed
	// numeric literals and bad tokens in a given grammar position.
	KindSyntax

	// KindSemantic reports ordering and cardinality violations, incomplete
	// groups and payload size mismatches.
	KindSemantic

	// KindCodec reports values rejected by the image codec.
	KindCodec
)

// String returns a string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindSyntax:
		return "syntax"
	case KindSemantic:
		return "semantic"
	case KindCodec:
		return "codec"
	default:
		return "unknown"
	}
}

// Predefined errors (sentinel values).
//
// Each matches any [Error] of the same [Kind] with [errors.Is].
var (
	ErrLex      = &Error{kind: KindLex, msg: "lexical error"}
	ErrSyntax   = &Error{kind: KindSyntax, msg: "syntax error"}
	ErrSemantic = &Error{kind: KindSemantic, msg: "semantic error"}
	ErrCodec    = &Error{kind: KindCodec, msg: "codec error"}
)

// EOF is the line number recorded for diagnostics raised after the whole
// input has been consumed.
const EOF = -1

// Position identifies the source location of a diagnostic.
type Position struct {
	Source string
	Line   int // EOF after end of input
}

// String formats the position as "<source>:<line>" or "<source>:EOF".
func (p Position) String() string {
	if p.Line == EOF {
		return p.Source + ":EOF"
	}

	return p.Source + ":" + strconv.Itoa(p.Line)
}

// Error is a fatal compile diagnostic with optional structured logging
// attributes. It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  Kind
	pos   *Position
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// Errorf creates a new Error of the receiver's kind at pos.
func (e *Error) Errorf(pos Position, format string, args ...any) *Error {
	return &Error{
		kind:  e.kind,
		pos:   &pos,
		msg:   fmt.Sprintf(format, args...),
		attrs: e.attrs,
	}
}

// WrapError wraps a standard error into an Error of the given kind.
// An err that already is an [*Error] is returned unchanged.
func WrapError(kind Kind, pos Position, err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{kind: kind, pos: &pos, err: err}
}

// Kind returns the classification of the error.
func (e *Error) Kind() Kind { return e.kind }

// Position returns the source location of the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Message returns the diagnostic text without the position prefix.
func (e *Error) Message() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Error implements the error interface. Positioned errors render as a single
// diagnostic line "<source>:<line-or-EOF>: <message>".
func (e *Error) Error() string {
	if e.pos == nil {
		return e.Message()
	}

	return e.pos.String() + ": " + e.Message()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel of the receiver's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.pos != nil || t.err != nil {
		return false
	}

	return t.kind == e.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.pos != nil {
		attrs = append(attrs, slog.String("position", e.pos.String()))
	}

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:  e.kind,
		pos:   e.pos,
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		kind:  e.kind,
		pos:   e.pos,
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}
