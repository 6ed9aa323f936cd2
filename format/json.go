package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/poscar/poscar"
)

type JSONEncoder struct {
	w   io.Writer
	doc *poscar.Document
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *poscar.Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildDocumentData(e.doc), "", "  ")
}

type jsonDocument struct {
	Comment        string        `json:"comment"`
	Scale          jsonScale     `json:"scale"`
	LatticeVectors [3][3]float64 `json:"latticeVectors"`
	Symbols        []string      `json:"symbols,omitempty"`
	Counts         []int         `json:"counts"`
	NumAtoms       int           `json:"numAtoms"`
	Positions      jsonCoords    `json:"positions"`
	Dynamics       [][3]bool     `json:"dynamics,omitempty"`
	Velocities     *jsonCoords   `json:"velocities,omitempty"`
}

type jsonScale struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}

type jsonCoords struct {
	System string       `json:"system"`
	Data   [][3]float64 `json:"data"`
}

func buildDocumentData(doc *poscar.Document) jsonDocument {
	out := jsonDocument{
		Comment:        doc.Comment,
		Scale:          jsonScale{Kind: scaleKindName(doc.Scale.Kind), Value: doc.Scale.Value},
		LatticeVectors: doc.LatticeVectors,
		Symbols:        doc.Symbols,
		Counts:         doc.Counts,
		NumAtoms:       doc.NumAtoms(),
		Positions:      jsonCoords{System: doc.Positions.System.String(), Data: doc.Positions.Data},
		Dynamics:       doc.Dynamics,
	}
	if doc.Velocities != nil {
		out.Velocities = &jsonCoords{
			System: doc.Velocities.System.String(),
			Data:   doc.Velocities.Data,
		}
	}
	return out
}

func scaleKindName(kind poscar.ScaleKind) string {
	if kind == poscar.ScaleVolume {
		return "volume"
	}
	return "factor"
}
