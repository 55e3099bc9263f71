package view

import (
	"errors"
	"fmt"
)

var (
	// ErrLayoutMismatch is returned when two slices differ in length or
	// stride, or when a byte view is requested from a slice whose stride is not 1.
	ErrLayoutMismatch = errors.New("view: slice layout mismatch")

	// ErrInvalidLayout is returned by checked constructors given a
	// non-positive stride, a length whose byte size overflows, or a nil
	// pointer with a non-zero length.
	ErrInvalidLayout = errors.New("view: invalid slice layout")
)

// BoundsError is the panic value raised by out-of-range sub-views.
// It signals a programming error and is not meant to be recovered.
type BoundsError struct {
	Op    string
	Start int
	End   int
	Len   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("view: %s [%d:%d] out of bounds for length %d", e.Op, e.Start, e.End, e.Len)
}

// EncodingError reports bytes that are not valid UTF-8.
type EncodingError struct {
	Offset int // byte offset of the first invalid sequence
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("view: invalid UTF-8 at byte %d", e.Offset)
}

// ParseError reports text that is not a valid number of the requested kind.
type ParseError struct {
	Input string
	Kind  string // target type, e.g. "int32" or "float64"
	Err   error  // underlying strconv error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("view: parse %q as %s: %v", e.Input, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
