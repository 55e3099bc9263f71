// Package strbuf provides owned, growable text buffers built on vec.Vec:
// String holds valid UTF-8 and CString holds bytes followed by a NUL
// terminator. Every mutator keeps the invariant: it either completes or
// leaves the buffer unchanged.
package strbuf

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/pavanmanishd/nstd/alloc"
	"github.com/pavanmanishd/nstd/vec"
	"github.com/pavanmanishd/nstd/view"
)

// String is an owned UTF-8 string.
type String struct {
	bytes vec.Vec
}

// NewString returns an empty String. Nothing is allocated.
func NewString(a alloc.Allocator) String {
	return String{bytes: vec.New(a, 1)}
}

// NewStringWithCap returns an empty String with room for capacity bytes.
func NewStringWithCap(a alloc.Allocator, capacity int) String {
	return String{bytes: vec.NewWithCap(a, 1, capacity)}
}

// StringFromStr returns an owned copy of s. An allocation failure is fatal.
func StringFromStr(a alloc.Allocator, s view.Str) String {
	if s.ByteLen() == 0 {
		return NewString(a)
	}
	str := NewStringWithCap(a, s.ByteLen())
	if err := str.bytes.Extend(s.AsSlice()); err != nil {
		alloc.Fatal("strbuf.StringFromStr", err)
	}
	return str
}

// StringFromBytes takes ownership of b after validating it as UTF-8.
// On failure it returns a *view.EncodingError and b stays with the caller.
// It panics if b's stride is not 1.
func StringFromBytes(b vec.Vec) (String, error) {
	mustBeBytes(&b)
	if _, err := view.StrFromBytes(b.Bytes()); err != nil {
		return String{}, err
	}
	return String{bytes: b}, nil
}

// StringFromBytesUnchecked takes ownership of b, which must hold valid UTF-8.
func StringFromBytesUnchecked(b vec.Vec) String {
	mustBeBytes(&b)
	return String{bytes: b}
}

func mustBeBytes(b *vec.Vec) {
	if b.Stride() != 1 {
		panic(fmt.Sprintf("strbuf: byte buffer with stride %d", b.Stride()))
	}
}

// fromGo copies a Go string into a new String.
func fromGo(a alloc.Allocator, s string) String {
	return StringFromStr(a, view.StrOf(s))
}

// Clone returns a deep copy of s.
func (s *String) Clone() String {
	return String{bytes: s.bytes.Clone()}
}

// AsStr returns a view of the text, valid until the next mutation.
func (s *String) AsStr() view.Str {
	return view.StrFromBytesUnchecked(s.bytes.Bytes())
}

// AsBytes returns a byte view of the text.
func (s *String) AsBytes() view.Slice { return s.bytes.AsSlice() }

// AsPtr returns the address of the first byte.
func (s *String) AsPtr() unsafe.Pointer { return s.bytes.AsPtr() }

// IntoBytes returns the underlying byte vector, leaving s empty.
func (s *String) IntoBytes() vec.Vec {
	b := s.bytes
	s.bytes = vec.New(b.Allocator(), 1)
	return b
}

// Len returns the number of Unicode scalar values.
func (s *String) Len() int { return utf8.RuneCount(s.bytes.Bytes()) }

// ByteLen returns the length in bytes.
func (s *String) ByteLen() int { return s.bytes.Len() }

// Cap returns the capacity in bytes.
func (s *String) Cap() int { return s.bytes.Cap() }

func (s *String) Allocator() alloc.Allocator { return s.bytes.Allocator() }

// String returns a copy of the text as a Go string.
func (s *String) String() string { return string(s.bytes.Bytes()) }

// Push appends the UTF-8 encoding of r.
func (s *String) Push(r rune) error {
	if !utf8.ValidRune(r) {
		return ErrInvalidRune
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return s.bytes.Extend(view.SliceOf(buf[:n]))
}

// PushStr appends str.
func (s *String) PushStr(str view.Str) error {
	return s.bytes.Extend(str.AsSlice())
}

// Pop removes and returns the last scalar value.
func (s *String) Pop() (rune, bool) {
	r, n := utf8.DecodeLastRune(s.bytes.Bytes())
	if n == 0 {
		return 0, false
	}
	s.bytes.Truncate(s.bytes.Len() - n)
	return r, true
}

// Clear removes all text and keeps the capacity.
func (s *String) Clear() { s.bytes.Clear() }

// Free releases the buffer.
func (s *String) Free() { s.bytes.Free() }
