// Package poscar reads and writes the VASP POSCAR file format.
//
// # Overview
//
// POSCAR is a line-oriented text format describing a crystal: a comment, a
// scale line, three lattice vectors, species counts, atomic positions, and
// optionally per-atom freeze flags and a velocity block. Producers of the
// format are wildly inconsistent, so the parser is strict about genuinely
// malformed input (every error carries an exact line and column) while
// accepting every real-world variant, including several undocumented legacy
// quirks.
//
// # Architecture
//
//	┌─────────────┐     ┌──────────────┐     ┌─────────────┐
//	│   Input     │────▶│    Lines     │────▶│   parser    │
//	│  (lines)    │     │  (Spanned)   │     │ (Document)  │
//	└─────────────┘     └──────────────┘     └─────────────┘
//	                           │                    │
//	                           ▼                    ▼
//	                    ┌──────────────┐     ┌─────────────┐
//	                    │    Words     │     │    Write    │
//	                    │ (tokenizing) │     │ (canonical) │
//	                    └──────────────┘     └─────────────┘
//
// Parsing is a single forward pass with exactly one line of lookahead. The
// lookahead exists for one reason: after the position data, a blank line is
// ambiguous between "trailing padding" and "the control line of a velocity
// block written in direct coordinates". The parser resolves this without
// backtracking.
//
// # Usage
//
//	doc, err := poscar.ParseFile("POSCAR")
//	if err != nil {
//	    log.Fatal(err) // e.g. POSCAR:7:3: invalid float literal "x"
//	}
//	fmt.Println(doc.NumAtoms())
//	poscar.Write(os.Stdout, doc)
//
// A successful parse always consumes the input to EOF. The first error
// aborts the parse; there is no recovery, multi-error accumulation, or
// partial result.
//
// Write is total over valid Documents: output text may differ byte-for-byte
// from the input the Document came from, but parsing it back always yields
// a structurally equal Document.
package poscar
