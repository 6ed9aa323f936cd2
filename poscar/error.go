package poscar

import (
	"errors"
	"fmt"
)

// errUnexpectedEOF marks the "content was expected but the input ended"
// condition so callers can tell it apart from other parse failures.
var errUnexpectedEOF = errors.New("unexpected end of file")

// FloatError reports a token that could not be parsed as a real number.
type FloatError struct {
	Token string
}

func (e *FloatError) Error() string {
	return fmt.Sprintf("invalid float literal %q", e.Token)
}

// LogicalError reports a token that is not a valid Fortran logical value.
type LogicalError struct {
	Token string
}

func (e *LogicalError) Error() string {
	return fmt.Sprintf("invalid Fortran logical value %q", e.Token)
}

// UnsignedError reports a token that is not a valid unsigned integer.
// A leading '+' is rejected even though a signed-integer parse would take it.
type UnsignedError struct {
	Token string
}

func (e *UnsignedError) Error() string {
	return fmt.Sprintf("invalid unsigned integer %q", e.Token)
}

// ParseError is a non-IO error produced while parsing a POSCAR.
//
// Line and Col are zero-based; Error renders them one-based by convention.
// Col is -1 when the error concerns a whole line rather than a single token,
// and Line is -1 on the rare errors that have no position at all.
type ParseError struct {
	Path string // empty when the input has no name
	Line int
	Col  int
	Err  error
}

func (e *ParseError) Error() string {
	prefix := "<input>"
	if e.Path != "" {
		prefix = e.Path
	}
	switch {
	case e.Line < 0:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	case e.Col < 0:
		return fmt.Sprintf("%s:%d: %v", prefix, e.Line+1, e.Err)
	default:
		return fmt.Sprintf("%s:%d:%d: %v", prefix, e.Line+1, e.Col+1, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
