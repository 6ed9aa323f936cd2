package poscar

import "strings"

// LineClass is the five-way classification of a coordinate-system line.
//
// The controlling character is an unchecked single-byte flag in real files
// and many producers leave it off-spec, so classification never fails; the
// fishy categories exist so a caller can choose to warn.
type LineClass int

const (
	// First character is in "cCkK".
	LineCartesian LineClass = iota
	// First character is in "dD".
	LineDirect
	// Nothing but whitespace. Implies direct, but may also just be
	// trailing crud at the end of the file.
	LineEmptyOrWhitespace
	// Whitespace followed by text. Implies direct, and deserves a warning.
	LineIndentedText
	// Any other first character. Implies direct, but is not sanctioned by
	// the format description.
	LineSuspiciouslyDirect
)

func (c LineClass) String() string {
	switch c {
	case LineCartesian:
		return "Cartesian"
	case LineDirect:
		return "Direct"
	case LineEmptyOrWhitespace:
		return "EmptyOrWhitespace"
	case LineIndentedText:
		return "IndentedText"
	case LineSuspiciouslyDirect:
		return "SuspiciouslyDirect"
	}
	return "Unknown"
}

// ClassifyCoordLine classifies a coordinate-system line by its first byte
// after trimming trailing whitespace. It accepts every input.
func ClassifyCoordLine(line string) LineClass {
	line = strings.TrimRight(line, " \t\r\n")
	if line == "" {
		return LineEmptyOrWhitespace
	}
	switch b := line[0]; {
	case b == 'c' || b == 'C' || b == 'k' || b == 'K':
		return LineCartesian
	case b == 'd' || b == 'D':
		return LineDirect
	case isASCIISpace(b):
		return LineIndentedText
	default:
		return LineSuspiciouslyDirect
	}
}

// Warning is an advisory diagnostic about input that parses fine but is
// almost certainly not what the producer intended.
type Warning struct {
	Path    string
	Line    int // zero-based
	Message string
}
