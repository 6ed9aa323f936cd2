package poscar

import (
	"bytes"
	"reflect"
	"testing"
)

// Writing a document and parsing the result must yield a structurally equal
// document. The raw text is allowed to differ from the original input; the
// data model is not.
func TestRoundTripDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
	}{
		{
			name: "minimal",
			doc: &Document{
				Comment:        "x",
				Scale:          Scale{Kind: ScaleFactor, Value: 1},
				LatticeVectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
				Counts:         []int{1},
				Positions:      Coords{System: Direct, Data: [][3]float64{{0, 0, 0}}},
			},
		},
		{
			name: "volume scale",
			doc: &Document{
				Comment:        "volume",
				Scale:          Scale{Kind: ScaleVolume, Value: 27},
				LatticeVectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
				Counts:         []int{1},
				Positions:      Coords{System: Cartesian, Data: [][3]float64{{0.5, 0.5, 0.5}}},
			},
		},
		{
			name: "symbols and dynamics",
			doc: &Document{
				Comment:        "NaCl",
				Scale:          Scale{Kind: ScaleFactor, Value: 5.64},
				LatticeVectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
				Symbols:        []string{"Na", "Cl"},
				Counts:         []int{1, 1},
				Positions: Coords{System: Direct, Data: [][3]float64{
					{0, 0, 0},
					{0.5, 0.5, 0.5},
				}},
				Dynamics: [][3]bool{
					{true, true, true},
					{false, true, false},
				},
			},
		},
		{
			name: "cartesian velocities",
			doc: &Document{
				Comment:        "moving",
				Scale:          Scale{Kind: ScaleFactor, Value: 1},
				LatticeVectors: [3][3]float64{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}},
				Counts:         []int{2},
				Positions: Coords{System: Cartesian, Data: [][3]float64{
					{0, 0, 0},
					{1, 1, 1},
				}},
				Velocities: &Coords{System: Cartesian, Data: [][3]float64{
					{0.01, -0.02, 0.03},
					{0, 0, 0},
				}},
			},
		},
		{
			name: "direct velocities with blank header",
			doc: &Document{
				Comment:        "contcar",
				Scale:          Scale{Kind: ScaleFactor, Value: 1},
				LatticeVectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
				Counts:         []int{1},
				Positions:      Coords{System: Direct, Data: [][3]float64{{0.1, 0.2, 0.3}}},
				Velocities:     &Coords{System: Direct, Data: [][3]float64{{-0.5, 0.25, 0}}},
			},
		},
		{
			name: "awkward float values",
			doc: &Document{
				Comment:        "tiny and huge",
				Scale:          Scale{Kind: ScaleFactor, Value: 1e-7},
				LatticeVectors: [3][3]float64{{1e21, 0, 0}, {0, 0.1, 0}, {0, 0, 3.0000000000000004}},
				Counts:         []int{1},
				Positions:      Coords{System: Direct, Data: [][3]float64{{1.0 / 3.0, 2.0 / 3.0, 0}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.doc); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			got, err := ParseBytes(buf.Bytes())
			if err != nil {
				t.Fatalf("ParseBytes() error = %v\ninput:\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(got, tt.doc) {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v\ntext:\n%s", got, tt.doc, buf.String())
			}
		})
	}
}

// Parsing real-world-shaped input, writing it, and parsing again must be a
// fixed point of the data model.
func TestRoundTripInputs(t *testing.T) {
	inputs := map[string]string{
		"minimal": minimalInput,
		"selective dynamics": `comment
1.0
1 0 0
0 1 0
0 0 1
Si  C
 1  1
Selective dynamics
Direct
0.0 0.0 0.0 T T F
0.5 0.5 0.5 F F F
`,
		"velocities after blank header": minimalInput + "\n0.1 0.2 0.3\n",
		"messy but legal": `  messy comment with trailing spaces
   -27.0   after the scale is comment
1 0 0 trailing
0 1 0 junk
0 0 1 here
  2 not-a-count
direct something
0.1 0.2 0.3 more junk
0.4 0.5 0.6
`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			first, err := ParseBytes([]byte(input))
			if err != nil {
				t.Fatalf("first parse error = %v", err)
			}
			var buf bytes.Buffer
			if err := Write(&buf, first); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			second, err := ParseBytes(buf.Bytes())
			if err != nil {
				t.Fatalf("second parse error = %v\ntext:\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip mismatch:\nfirst  %+v\nsecond %+v", first, second)
			}
		})
	}
}
