package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/poscar/poscar"
)

// TextEncoder emits the canonical POSCAR text form.
type TextEncoder struct {
	w   io.Writer
	doc *poscar.Document
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(doc *poscar.Document) error {
	e.doc = doc
	return poscar.Write(e.w, doc)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := poscar.Write(&buf, e.doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
