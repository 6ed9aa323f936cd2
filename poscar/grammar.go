package poscar

import (
	"strconv"
	"strings"
)

// Float parses the span as a real number, wrapping any failure with the
// span's exact position. Go-only literal forms that strconv would take,
// hexadecimal floats and underscore digit separators, are rejected.
func (s Spanned) Float() (float64, error) {
	if !plainFloatToken(s.Text) {
		return 0, s.spanError(&FloatError{Token: s.Text})
	}
	v, err := strconv.ParseFloat(s.Text, 64)
	if err != nil {
		return 0, s.spanError(&FloatError{Token: s.Text})
	}
	return v, nil
}

func plainFloatToken(text string) bool {
	if strings.Contains(text, "_") {
		return false
	}
	if len(text) > 0 && (text[0] == '+' || text[0] == '-') {
		text = text[1:]
	}
	return !(len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X'))
}

// Logical parses the span the way Fortran's read(*) fills a LOGICAL:
// an optional leading '.', then exactly one case-insensitive letter.
// 't'/'T' is true, 'f'/'F' is false, anything else fails. Whatever follows
// the letter is ignored, so ".TRUE." and "T" are equivalent.
func (s Spanned) Logical() (bool, error) {
	text := s.Text
	if len(text) > 0 && text[0] == '.' {
		text = text[1:]
	}
	if len(text) == 0 {
		return false, s.spanError(&LogicalError{Token: s.Text})
	}
	switch text[0] {
	case 't', 'T':
		return true, nil
	case 'f', 'F':
		return false, nil
	default:
		return false, s.spanError(&LogicalError{Token: s.Text})
	}
}

// Unsigned parses the span as a non-negative integer. Unlike a plain
// unsigned-integer parse, a leading '+' is rejected.
func (s Spanned) Unsigned() (uint64, error) {
	if len(s.Text) > 0 && s.Text[0] == '+' {
		return 0, s.spanError(&UnsignedError{Token: s.Text})
	}
	v, err := strconv.ParseUint(s.Text, 10, 64)
	if err != nil {
		return 0, s.spanError(&UnsignedError{Token: s.Text})
	}
	return v, nil
}

// IsValidSymbol reports whether a token may appear on the species-symbol
// line: non-empty, no whitespace, and no leading digit.
func IsValidSymbol(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if isASCIISpace(s[i]) {
			return false
		}
	}
	return !(s[0] >= '0' && s[0] <= '9')
}
