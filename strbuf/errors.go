package strbuf

import "errors"

var (
	// ErrInvalidRune is returned when pushing a rune that is not a Unicode
	// scalar value (a surrogate or a value above U+10FFFF).
	ErrInvalidRune = errors.New("strbuf: invalid Unicode scalar value")

	// ErrInteriorNul is returned when C string input contains a NUL byte
	// before its end.
	ErrInteriorNul = errors.New("strbuf: interior NUL byte")

	// ErrMissingNul is returned when bytes given to CStringFromBytes do not
	// end with a NUL byte.
	ErrMissingNul = errors.New("strbuf: missing NUL terminator")
)
