package view

import (
	"unicode/utf8"
	"unsafe"

	"github.com/pavanmanishd/nstd/internal/mem"
)

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns End - Start.
func (r Range) Len() int { return r.End - r.Start }

// Str is a read-only view of UTF-8 encoded text.
type Str struct {
	ptr unsafe.Pointer
	len int // bytes
}

// StrFromBytes returns a view of b after validating it as UTF-8.
// Invalid input yields an *EncodingError.
func StrFromBytes(b []byte) (Str, error) {
	if off := invalidOffset(b); off >= 0 {
		return Str{}, &EncodingError{Offset: off}
	}
	return StrFromBytesUnchecked(b), nil
}

// StrFromBytesUnchecked returns a view of b. b must be valid UTF-8.
func StrFromBytesUnchecked(b []byte) Str {
	return Str{ptr: unsafe.Pointer(unsafe.SliceData(b)), len: len(b)}
}

// StrFromSlice returns a text view of a stride-1 Slice, validating it.
func StrFromSlice(s Slice) (Str, error) {
	if s.stride != 1 {
		return Str{}, ErrLayoutMismatch
	}
	return StrFromBytes(s.Bytes())
}

// StrFromCStr returns a text view of c's bytes (without NUL), validating them.
func StrFromCStr(c CStr) (Str, error) {
	return StrFromBytes(c.bytesWithoutNul())
}

// StrFromCStrUnchecked is StrFromCStr without validation.
func StrFromCStrUnchecked(c CStr) Str {
	return StrFromBytesUnchecked(c.bytesWithoutNul())
}

// StrOf returns a view of the bytes of s. Go strings are immutable, so the
// view must only be read.
func StrOf(s string) Str {
	return Str{ptr: unsafe.Pointer(unsafe.StringData(s)), len: len(s)}
}

// Len returns the number of Unicode scalar values in s.
func (s Str) Len() int { return utf8.RuneCount(s.AsBytes()) }

// ByteLen returns the length of s in bytes.
func (s Str) ByteLen() int { return s.len }

// AsPtr returns the address of the first byte.
func (s Str) AsPtr() unsafe.Pointer { return s.ptr }

// AsBytes returns the underlying bytes. They must not be modified.
func (s Str) AsBytes() []byte { return mem.Bytes(s.ptr, s.len) }

// AsSlice returns s as a stride-1 Slice.
func (s Str) AsSlice() Slice { return Slice{ptr: s.ptr, stride: 1, len: s.len} }

// String returns a copy of s as a Go string.
func (s Str) String() string { return string(s.AsBytes()) }

// GetChar returns the scalar value at character index pos.
func (s Str) GetChar(pos int) (rune, bool) {
	if pos < 0 {
		return 0, false
	}
	b := s.AsBytes()
	for i := 0; len(b) > 0; i++ {
		r, n := utf8.DecodeRune(b)
		if i == pos {
			return r, true
		}
		b = b[n:]
	}
	return 0, false
}

// Substr returns the sub-view of bytes r.Start to r.End. It panics with a
// *BoundsError when r.End > ByteLen, r.Start > r.End, or either end does
// not fall on a character boundary. The range is never clamped.
func (s Str) Substr(r Range) Str {
	b := s.AsBytes()
	if r.Start < 0 || r.Start > r.End || r.End > len(b) ||
		!boundary(b, r.Start) || !boundary(b, r.End) {
		panic(&BoundsError{Op: "Substr", Start: r.Start, End: r.End, Len: len(b)})
	}
	return Str{ptr: unsafe.Add(s.ptr, r.Start), len: r.Len()}
}

func boundary(b []byte, i int) bool {
	return i == len(b) || utf8.RuneStart(b[i])
}

// invalidOffset returns the offset of the first invalid UTF-8 sequence in
// b, or -1 if b is valid.
func invalidOffset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && n == 1 {
			return i
		}
		i += n
	}
	return -1
}
