package poscar

// ScaleKind distinguishes the two meanings of the scale line.
type ScaleKind int

const (
	// ScaleFactor multiplies the lattice vectors directly.
	ScaleFactor ScaleKind = iota
	// ScaleVolume is a target cell volume to solve for. It is encoded in
	// the file as a negated value; Value stores the absolute value.
	ScaleVolume
)

// Scale is the parsed scale line. Value is always positive.
type Scale struct {
	Kind  ScaleKind
	Value float64
}

// CoordSystem tags a block of coordinate data.
type CoordSystem int

const (
	// Cartesian coordinates are in absolute length units.
	Cartesian CoordSystem = iota
	// Direct coordinates are fractions of the lattice vectors.
	Direct
)

func (c CoordSystem) String() string {
	if c == Cartesian {
		return "Cartesian"
	}
	return "Direct"
}

// Coords is a block of per-atom 3-vectors tagged with its coordinate system.
type Coords struct {
	System CoordSystem
	Data   [][3]float64
}

// Document is a fully parsed POSCAR. It is built once by the parser, which
// establishes the invariants below; nothing re-checks them afterwards and
// the writer assumes them as preconditions.
//
// Invariants: Counts is non-empty and sums to n >= 1; Symbols, when present,
// has the same length as Counts; Positions.Data has length n; Dynamics and
// Velocities, when present, have length n; Comment contains no newline.
type Document struct {
	Comment        string
	Scale          Scale
	LatticeVectors [3][3]float64
	Symbols        []string // nil when the file has no symbol line
	Counts         []int
	Positions      Coords
	Dynamics       [][3]bool // nil unless selective dynamics is enabled
	Velocities     *Coords   // nil when the file has no velocity block
}

// NumAtoms returns the total atom count, the sum of Counts.
func (d *Document) NumAtoms() int {
	n := 0
	for _, c := range d.Counts {
		n += c
	}
	return n
}

// checkInvariants re-checks what parsing already established. A violation
// here is an internal defect, not a user input error.
func (d *Document) checkInvariants() {
	n := d.NumAtoms()
	bug := func(cond bool) {
		if cond {
			panic("poscar: an invariant was not checked during parsing (this is a bug)")
		}
	}
	bug(len(d.Counts) == 0)
	bug(n < 1)
	bug(d.Symbols != nil && len(d.Symbols) != len(d.Counts))
	bug(len(d.Positions.Data) != n)
	bug(d.Dynamics != nil && len(d.Dynamics) != n)
	bug(d.Velocities != nil && len(d.Velocities.Data) != n)
	for i := 0; i < len(d.Comment); i++ {
		bug(d.Comment[i] == '\n' || d.Comment[i] == '\r')
	}
}
