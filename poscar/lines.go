package poscar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
)

// Lines reads an input line by line, handing out Spanned values that
// remember where they came from. Line terminators are stripped.
type Lines struct {
	path    string
	scanner *bufio.Scanner
	cur     int
	done    bool
	ioErr   error
}

// NewLines wraps r. The path may be empty; it is only used in error messages.
func NewLines(r io.Reader, path string) *Lines {
	scanner := bufio.NewScanner(r)
	// Comment lines may be arbitrarily long; lift the Scanner's default
	// 64KiB per-line cap.
	scanner.Buffer(nil, math.MaxInt)
	return &Lines{
		path:    path,
		scanner: scanner,
	}
}

// Next returns the next line. Once the input is exhausted every further call
// keeps failing with "unexpected end of file" at the current line; an input
// can never un-end.
func (ls *Lines) Next() (Spanned, error) {
	if ls.done {
		if ls.ioErr != nil {
			return Spanned{}, ls.ioErr
		}
		return Spanned{}, ls.eofError()
	}
	if !ls.scanner.Scan() {
		ls.done = true
		if err := ls.scanner.Err(); err != nil {
			ls.ioErr = err
			return Spanned{}, err
		}
		return Spanned{}, ls.eofError()
	}
	s := Spanned{Path: ls.path, Line: ls.cur, Col: 0, Text: ls.scanner.Text()}
	ls.cur++
	return s, nil
}

func (ls *Lines) eofError() error {
	return &ParseError{Path: ls.path, Line: ls.cur, Col: -1, Err: errUnexpectedEOF}
}

// ExpectBlankUntilEOF drains the remaining input, succeeding only if every
// remaining line is empty or all-whitespace. The first stray token fails
// with "expected end of file" at the token's exact position.
func (ls *Lines) ExpectBlankUntilEOF() error {
	for {
		line, err := ls.Next()
		if err != nil {
			if errors.Is(err, errUnexpectedEOF) {
				return nil
			}
			return err
		}
		if word, ok := line.Words().Next(); ok {
			return word.Errorf("expected end of file")
		}
	}
}

// Spanned is a piece of line text plus the position it was read from.
// Line and Col are zero-based.
type Spanned struct {
	Path string
	Line int
	Col  int
	Text string
}

// Slice returns the sub-span Text[start:end], with Col offset accordingly.
func (s Spanned) Slice(start, end int) Spanned {
	return Spanned{
		Path: s.Path,
		Line: s.Line,
		Col:  s.Col + start,
		Text: s.Text[start:end],
	}
}

// ControlChar returns the line's first character verbatim, whitespace
// included. Flag characters in this format are positional, not token-based.
func (s Spanned) ControlChar() (byte, bool) {
	if s.Text == "" {
		return 0, false
	}
	return s.Text[0], true
}

// Words tokenizes the line on ASCII whitespace. Tokens are produced lazily
// and keep their true column.
func (s Spanned) Words() *Words {
	return &Words{src: s}
}

// Errorf builds a ParseError at this span's exact position.
func (s Spanned) Errorf(format string, args ...any) *ParseError {
	return s.spanError(fmt.Errorf(format, args...))
}

func (s Spanned) spanError(err error) *ParseError {
	return &ParseError{Path: s.Path, Line: s.Line, Col: s.Col, Err: err}
}

// Words iterates over the whitespace-delimited tokens of one line.
// It is not restartable; take a fresh one from Spanned.Words.
type Words struct {
	src Spanned
	pos int
}

// Next returns the next token, or false when the line has no more.
func (w *Words) Next() (Spanned, bool) {
	text := w.src.Text
	for w.pos < len(text) && isASCIISpace(text[w.pos]) {
		w.pos++
	}
	if w.pos >= len(text) {
		return Spanned{}, false
	}
	start := w.pos
	for w.pos < len(text) && !isASCIISpace(text[w.pos]) {
		w.pos++
	}
	return w.src.Slice(start, w.pos), true
}

// NextOrErr returns the next token, or a line-tagged error carrying msg.
func (w *Words) NextOrErr(msg string) (Spanned, error) {
	word, ok := w.Next()
	if !ok {
		return Spanned{}, &ParseError{
			Path: w.src.Path,
			Line: w.src.Line,
			Col:  -1,
			Err:  errors.New(msg),
		}
	}
	return word, nil
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
