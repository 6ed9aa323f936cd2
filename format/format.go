package format

import (
	"encoding"

	"github.com/dhamidi/poscar/poscar"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *poscar.Document) error
}
