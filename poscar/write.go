package poscar

import (
	"fmt"
	"io"
	"strconv"
)

// writer mirrors the sticky-error reader used when decoding binary formats:
// every emit checks err first, so the call sites stay linear.
type writer struct {
	w   io.Writer
	err error
}

func (sw *writer) printf(format string, args ...any) {
	if sw.err != nil {
		return
	}
	_, sw.err = fmt.Fprintf(sw.w, format, args...)
}

// ftoa formats a float with the shortest representation that round-trips.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write emits doc as canonical POSCAR text.
//
// Given a Document that satisfies the parser-established invariants, Write
// cannot fail on format grounds; the only possible errors are I/O errors
// from w. Output is structurally round-trip stable: parsing it yields an
// equal Document, though not necessarily byte-identical input text.
func Write(w io.Writer, doc *Document) error {
	sw := &writer{w: w}

	sw.printf("%s\n", doc.Comment)

	switch doc.Scale.Kind {
	case ScaleFactor:
		sw.printf("  %s\n", ftoa(doc.Scale.Value))
	case ScaleVolume:
		sw.printf("  -%s\n", ftoa(doc.Scale.Value))
	}

	for _, row := range doc.LatticeVectors {
		sw.printf("    %s %s %s\n", ftoa(row[0]), ftoa(row[1]), ftoa(row[2]))
	}

	if doc.Symbols != nil {
		sw.printf(" ")
		for _, s := range doc.Symbols {
			sw.printf(" %2s", s)
		}
		sw.printf("\n")
	}

	sw.printf(" ")
	for _, c := range doc.Counts {
		sw.printf(" %2d", c)
	}
	sw.printf("\n")

	if doc.Dynamics != nil {
		sw.printf("Selective Dynamics\n")
	}
	sw.printf("%s\n", doc.Positions.System)

	for i, pos := range doc.Positions.Data {
		sw.printf("  %s %s %s", ftoa(pos[0]), ftoa(pos[1]), ftoa(pos[2]))
		if doc.Dynamics != nil {
			for _, flag := range doc.Dynamics[i] {
				if flag {
					sw.printf(" T")
				} else {
					sw.printf(" F")
				}
			}
		}
		sw.printf("\n")
	}

	if doc.Velocities != nil {
		switch doc.Velocities.System {
		case Cartesian:
			sw.printf("Cartesian\n")
		case Direct:
			// Blank, the way CONTCAR files look; pymatgen expects this form.
			sw.printf("\n")
		}
		for _, v := range doc.Velocities.Data {
			sw.printf("  %s %s %s\n", ftoa(v[0]), ftoa(v[1]), ftoa(v[2]))
		}
	}

	return sw.err
}
