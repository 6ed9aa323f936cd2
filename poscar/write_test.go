package poscar

import (
	"bytes"
	"errors"
	"testing"
)

func writeToString(t *testing.T, doc *Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.String()
}

func TestWriteMinimal(t *testing.T) {
	doc := &Document{
		Comment:        "x",
		Scale:          Scale{Kind: ScaleFactor, Value: 1},
		LatticeVectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Counts:         []int{1},
		Positions:      Coords{System: Direct, Data: [][3]float64{{0, 0, 0}}},
	}

	want := `x
  1
    1 0 0
    0 1 0
    0 0 1
   1
Direct
  0 0 0
`
	if got := writeToString(t, doc); got != want {
		t.Errorf("Write() =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteFull(t *testing.T) {
	doc := &Document{
		Comment:        "cubic diamond",
		Scale:          Scale{Kind: ScaleFactor, Value: 3.7},
		LatticeVectors: [3][3]float64{{0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
		Symbols:        []string{"C"},
		Counts:         []int{2},
		Positions: Coords{System: Direct, Data: [][3]float64{
			{0, 0, 0},
			{0.25, 0.25, 0.25},
		}},
		Dynamics: [][3]bool{
			{true, true, false},
			{false, false, false},
		},
		Velocities: &Coords{System: Cartesian, Data: [][3]float64{
			{0, 0, 0},
			{0.1, 0.2, 0.3},
		}},
	}

	want := `cubic diamond
  3.7
    0 0.5 0.5
    0.5 0 0.5
    0.5 0.5 0
   C
   2
Selective Dynamics
Direct
  0 0 0 T T F
  0.25 0.25 0.25 F F F
Cartesian
  0 0 0
  0.1 0.2 0.3
`
	if got := writeToString(t, doc); got != want {
		t.Errorf("Write() =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteVolumeScaleIsNegated(t *testing.T) {
	doc := &Document{
		Comment:        "v",
		Scale:          Scale{Kind: ScaleVolume, Value: 27},
		LatticeVectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Counts:         []int{1},
		Positions:      Coords{System: Cartesian, Data: [][3]float64{{0, 0, 0}}},
	}

	want := `v
  -27
    1 0 0
    0 1 0
    0 0 1
   1
Cartesian
  0 0 0
`
	if got := writeToString(t, doc); got != want {
		t.Errorf("Write() =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteDirectVelocityHeaderIsBlank(t *testing.T) {
	doc := &Document{
		Comment:        "contcar style",
		Scale:          Scale{Kind: ScaleFactor, Value: 1},
		LatticeVectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Counts:         []int{1},
		Positions:      Coords{System: Direct, Data: [][3]float64{{0, 0, 0}}},
		Velocities:     &Coords{System: Direct, Data: [][3]float64{{0.1, 0.2, 0.3}}},
	}

	want := `contcar style
  1
    1 0 0
    0 1 0
    0 0 1
   1
Direct
  0 0 0

  0.1 0.2 0.3
`
	if got := writeToString(t, doc); got != want {
		t.Errorf("Write() =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteSymbolsRightAligned(t *testing.T) {
	doc := &Document{
		Comment:        "alignment",
		Scale:          Scale{Kind: ScaleFactor, Value: 1},
		LatticeVectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Symbols:        []string{"H", "Si", "Uuo"},
		Counts:         []int{1, 2, 10},
		Positions: Coords{System: Direct, Data: make([][3]float64, 13)},
	}

	got := writeToString(t, doc)
	wantSymbols := "   H Si Uuo\n"
	wantCounts := "   1  2 10\n"
	if !bytes.Contains([]byte(got), []byte(wantSymbols)) {
		t.Errorf("output missing symbol line %q:\n%s", wantSymbols, got)
	}
	if !bytes.Contains([]byte(got), []byte(wantCounts)) {
		t.Errorf("output missing counts line %q:\n%s", wantCounts, got)
	}
}

type failingWriter struct{}

var errSink = errors.New("sink closed")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errSink
}

func TestWritePropagatesIOErrors(t *testing.T) {
	doc := &Document{
		Comment:        "x",
		Scale:          Scale{Kind: ScaleFactor, Value: 1},
		LatticeVectors: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Counts:         []int{1},
		Positions:      Coords{System: Direct, Data: [][3]float64{{0, 0, 0}}},
	}
	if err := Write(failingWriter{}, doc); !errors.Is(err, errSink) {
		t.Errorf("Write() error = %v, want %v", err, errSink)
	}
}
