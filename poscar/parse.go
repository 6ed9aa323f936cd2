package poscar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

type Option func(*parser)

// WithPath attaches a path to every error and warning produced by the parse.
func WithPath(path string) Option {
	return func(p *parser) {
		p.path = path
	}
}

// WithWarnings registers a callback for advisory diagnostics about inputs
// that parse fine but are almost certainly producer mistakes.
func WithWarnings(fn func(Warning)) Option {
	return func(p *parser) {
		p.warn = fn
	}
}

type parser struct {
	path  string
	warn  func(Warning)
	lines *Lines
}

// Parse reads a POSCAR from r.
//
// A successful parse always consumes r to EOF; that is the nature of the
// format. To extract a POSCAR embedded in a larger stream, hand Parse a
// bounded reader.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	p := &parser{}
	for _, opt := range opts {
		opt(p)
	}
	p.lines = NewLines(r, p.path)
	return p.parse()
}

// ParseBytes reads a POSCAR from an in-memory buffer.
func ParseBytes(data []byte, opts ...Option) (*Document, error) {
	return Parse(bytes.NewReader(data), opts...)
}

// ParseFile reads a POSCAR from the filesystem. The path shows up in any
// error the parse produces.
func ParseFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open POSCAR file: %w", err)
	}
	defer f.Close()
	return Parse(f, append([]Option{WithPath(path)}, opts...)...)
}

func (p *parser) parse() (*Document, error) {
	comment, err := p.lines.Next()
	if err != nil {
		return nil, err
	}

	scale, err := p.parseScale()
	if err != nil {
		return nil, err
	}

	var lattice [3][3]float64
	for i := 0; i < 3; i++ {
		line, err := p.lines.Next()
		if err != nil {
			return nil, err
		}
		words := line.Words()
		for j := 0; j < 3; j++ {
			word, err := words.NextOrErr("expected three components for lattice vector")
			if err != nil {
				return nil, err
			}
			if lattice[i][j], err = word.Float(); err != nil {
				return nil, err
			}
		}
		// rest of the line is freeform comment
	}

	symbols, counts, n, err := p.parseSpeciesCounts()
	if err != nil {
		return nil, err
	}

	positions, dynamics, err := p.parsePositions(n)
	if err != nil {
		return nil, err
	}

	velocities, err := p.parseVelocities(n)
	if err != nil {
		return nil, err
	}

	// Anything beyond this point (e.g. predictor-corrector data) may only
	// exist when velocities do, and we model no such sections.
	if err := p.lines.ExpectBlankUntilEOF(); err != nil {
		return nil, err
	}

	doc := &Document{
		Comment:        comment.Text,
		Scale:          scale,
		LatticeVectors: lattice,
		Symbols:        symbols,
		Counts:         counts,
		Positions:      positions,
		Dynamics:       dynamics,
		Velocities:     velocities,
	}
	doc.checkInvariants()
	return doc, nil
}

func (p *parser) parseScale() (Scale, error) {
	line, err := p.lines.Next()
	if err != nil {
		return Scale{}, err
	}
	words := line.Words()

	word, err := words.NextOrErr("expected scale")
	if err != nil {
		return Scale{}, err
	}
	value, err := word.Float()
	if err != nil {
		return Scale{}, err
	}

	var scale Scale
	switch {
	case math.IsNaN(value):
		return Scale{}, word.Errorf("scale cannot be nan")
	case value == 0:
		return Scale{}, word.Errorf("scale cannot be zero")
	case value < 0:
		scale = Scale{Kind: ScaleVolume, Value: -value}
	default:
		scale = Scale{Kind: ScaleFactor, Value: value}
	}

	// VASP 5.4.1 has an undocumented "feature": exactly three floats here
	// are per-axis scales. Nobody uses it on purpose, not even VASP handles
	// it properly, and a second float here usually means the scale line was
	// omitted entirely, which would misalign the rest of the file. Reject.
	if word, ok := words.Next(); ok {
		if _, err := word.Float(); err == nil {
			return Scale{}, word.Errorf("too many floats on scale line (expected just one)")
		}
	}

	return scale, nil
}

func (p *parser) parseSpeciesCounts() (symbols []string, counts []int, n int, err error) {
	line, err := p.lines.Next()
	if err != nil {
		return nil, nil, 0, err
	}
	if _, err := line.Words().NextOrErr("expected at least one element or count"); err != nil {
		return nil, nil, 0, err
	}

	// Since VASP 5 a line with elemental symbols may precede the counts.
	countsLine := line
	trimmed := strings.TrimSpace(line.Text)
	if trimmed[0] < '0' || trimmed[0] > '9' {
		words := line.Words()
		for {
			word, ok := words.Next()
			if !ok {
				break
			}
			if !IsValidSymbol(word.Text) {
				return nil, nil, 0, word.Errorf("invalid symbol")
			}
			symbols = append(symbols, word.Text)
		}
		if countsLine, err = p.lines.Next(); err != nil {
			return nil, nil, 0, err
		}
	}

	// Counts stop at the first token that is not an unsigned integer; the
	// remainder of the line is freeform comment.
	words := countsLine.Words()
	for {
		word, ok := words.Next()
		if !ok {
			break
		}
		v, err := word.Unsigned()
		if err != nil {
			break
		}
		if v > math.MaxInt {
			return nil, nil, 0, word.Errorf("atom count is too large")
		}
		counts = append(counts, int(v))
	}

	if symbols != nil && len(symbols) != len(counts) {
		return nil, nil, 0, countsLine.Errorf("inconsistent number of counts")
	}

	for _, c := range counts {
		if c > math.MaxInt-n {
			return nil, nil, 0, countsLine.Errorf("atom count is too large")
		}
		n += c
	}
	if n == 0 {
		return nil, nil, 0, countsLine.Errorf("there must be at least one atom")
	}
	return symbols, counts, n, nil
}

func (p *parser) parsePositions(n int) (Coords, [][3]bool, error) {
	line, err := p.lines.Next()
	if err != nil {
		return Coords{}, nil, err
	}

	selective := false
	if c, ok := line.ControlChar(); ok && (c == 's' || c == 'S') {
		selective = true
		if line, err = p.lines.Next(); err != nil {
			return Coords{}, nil, err
		}
	}

	system := Direct
	class := ClassifyCoordLine(line.Text)
	if class == LineCartesian {
		system = Cartesian
	}
	p.warnFishy(line, class)
	// rest of the line is freeform comment

	// n comes straight from the counts line, so the slices grow as lines
	// actually arrive; a file with fewer lines than n fails on the EOF
	// path rather than in an n-sized allocation.
	var data [][3]float64
	var dynamics [][3]bool
	for i := 0; i < n; i++ {
		line, err := p.lines.Next()
		if err != nil {
			return Coords{}, nil, err
		}
		words := line.Words()

		var pos [3]float64
		for j := 0; j < 3; j++ {
			word, err := words.NextOrErr("expected 3 coordinates")
			if err != nil {
				return Coords{}, nil, err
			}
			if pos[j], err = word.Float(); err != nil {
				return Coords{}, nil, err
			}
		}
		data = append(data, pos)

		if selective {
			var flags [3]bool
			for j := 0; j < 3; j++ {
				word, err := words.NextOrErr("expected 3 boolean flags")
				if err != nil {
					return Coords{}, nil, err
				}
				if flags[j], err = word.Logical(); err != nil {
					return Coords{}, nil, err
				}
			}
			dynamics = append(dynamics, flags)
		}
		// rest of the line is freeform comment
	}

	return Coords{System: system, Data: data}, dynamics, nil
}

// velocityPresence tracks what the lookahead has established about the
// velocity block so far.
type velocityPresence int

const (
	velocityNotYetDetermined velocityPresence = iota
	// velocityRequired: a non-blank control line promised data.
	velocityRequired
	// velocityPossible: a blank line that might be padding, might be a
	// blank Direct control line.
	velocityPossible
)

// classifyVelocityHeader fixes the coordinate system for a would-be velocity
// block and says whether the block must follow or only might.
func classifyVelocityHeader(class LineClass) (CoordSystem, velocityPresence) {
	switch class {
	case LineCartesian:
		return Cartesian, velocityRequired
	case LineEmptyOrWhitespace:
		return Direct, velocityPossible
	default:
		return Direct, velocityRequired
	}
}

// parseVelocities resolves the inherent ambiguity between "trailing blank
// line" and "velocity block begins here" with exactly one line of lookahead
// and no backtracking.
//
// In the no-velocity cases it also consumes the trailer, since nothing may
// legitimately follow positions when velocities are absent.
func (p *parser) parseVelocities(n int) (*Coords, error) {
	// Does the file just end?
	header, err := p.lines.Next()
	if err != nil {
		if errors.Is(err, errUnexpectedEOF) {
			return nil, nil
		}
		return nil, err
	}

	// We hold either a trailing blank line (possibly the first of many) or
	// the control line for the velocity block.
	class := ClassifyCoordLine(header.Text)
	system, presence := classifyVelocityHeader(class)
	p.warnFishy(header, class)

	// Eagerly read one more line to disambiguate.
	first, err := p.lines.Next()
	if err != nil {
		if !errors.Is(err, errUnexpectedEOF) {
			return nil, err
		}
		if presence == velocityRequired {
			// The file ends right after a non-blank control line. That
			// could only describe a structure with zero atoms, and those
			// are already forbidden.
			return nil, err
		}
		// Just one blank line after the positions. No velocities.
		return nil, nil
	}

	if presence == velocityPossible && strings.TrimSpace(first.Text) == "" {
		// Two blank lines in a row: safely no velocities. Nothing else may
		// exist in the file, since the predictor corrector is not present
		// unless velocity is.
		if err := p.lines.ExpectBlankUntilEOF(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	// Velocities must be present, and first is the first of n data lines.
	var data [][3]float64
	for i := 0; i < n; i++ {
		line := first
		if i > 0 {
			if line, err = p.lines.Next(); err != nil {
				return nil, err
			}
		}
		words := line.Words()
		var v [3]float64
		for j := 0; j < 3; j++ {
			word, err := words.NextOrErr("expected 3 coordinates")
			if err != nil {
				return nil, err
			}
			if v[j], err = word.Float(); err != nil {
				return nil, err
			}
		}
		data = append(data, v)
	}

	return &Coords{System: system, Data: data}, nil
}

func (p *parser) warnFishy(line Spanned, class LineClass) {
	if p.warn == nil {
		return
	}
	switch class {
	case LineIndentedText:
		p.warn(Warning{
			Path:    line.Path,
			Line:    line.Line,
			Message: "indented text on coordinate-system line; assuming direct coordinates",
		})
	case LineSuspiciouslyDirect:
		c, _ := line.ControlChar()
		p.warn(Warning{
			Path:    line.Path,
			Line:    line.Line,
			Message: fmt.Sprintf("unrecognized coordinate-system flag %q; assuming direct coordinates", string(c)),
		})
	}
}
