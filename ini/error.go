package ini

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrMalformedSectionHeader = NewError("malformed section header")
	ErrMalformedKeyValue      = NewError("malformed key-value line")
	ErrKeyValueOutsideSection = NewError("key-value line outside of any section")
	ErrReadInput              = NewError("failed to read input")
	ErrFilterCompile          = NewError("filter compilation failed")
	ErrFilterEvaluate         = NewError("filter evaluation failed")
)

// Error represents an error with optional source position and structured
// logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with [Error.Wrap], [Error.With], or
// [Error.At] still match that sentinel with [errors.Is].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
	pos   Position
	text  string
	root  *Error
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message from whichever fields are set:
	//
	//   "line <n>: <msg>: <text>: <err>"
	part := make([]string, 0, 4)

	if e.pos.IsValid() {
		part = append(part, "line "+strconv.Itoa(e.pos.Line))
	}

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.pos.IsValid() {
		part = append(part, strconv.Quote(e.text))
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is e or the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	return e == t || e.base() == t.base()
}

// Position returns the source position of the offending line, if any.
func (e *Error) Position() Position { return e.pos }

// Line returns the 1-based line number of the offending line, or 0.
func (e *Error) Line() int { return e.pos.Line }

// Text returns the offending line with its line terminator removed.
func (e *Error) Text() string { return e.text }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos.IsValid() {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.String("text", e.text),
		)
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// At returns a copy of e located at pos on the given source line.
func (e *Error) At(pos Position, text string) *Error {
	c := e.clone()
	c.pos = pos
	c.text = text

	return c
}

// Context renders the offending line with its line number and a caret under
// the first offending column, suitable for terminal display.
// It returns the empty string when e has no position.
func (e *Error) Context() string {
	if !e.pos.IsValid() {
		return ""
	}

	num := strconv.Itoa(e.pos.Line)

	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(num)
	b.WriteString(" | ")
	b.WriteString(e.text)
	b.WriteByte('\n')

	// 2 leading spaces + " | "
	b.WriteString(strings.Repeat(" ", len(num)+5))

	if e.pos.Column > 1 {
		b.WriteString(strings.Repeat(" ", e.pos.Column-1))
	}

	b.WriteString("^\n")

	return b.String()
}

func (e *Error) clone() *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: e.attrs,
		pos:   e.pos,
		text:  e.text,
		root:  e.base(),
	}
}

func (e *Error) base() *Error {
	if e.root != nil {
		return e.root
	}

	return e
}
