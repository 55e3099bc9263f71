package strbuf

import (
	"bytes"
	"unsafe"

	"github.com/pavanmanishd/nstd/alloc"
	"github.com/pavanmanishd/nstd/vec"
	"github.com/pavanmanishd/nstd/view"
)

// CString is an owned C string. Its buffer always ends with a NUL byte
// that is not counted by Len, and holds no other NUL.
type CString struct {
	bytes vec.Vec
}

var nul byte

// NewCString returns an empty C string; only the terminator is allocated.
func NewCString(a alloc.Allocator) CString {
	return NewCStringWithCap(a, 1)
}

// NewCStringWithCap returns an empty C string with room for capacity bytes,
// terminator included. A capacity below 1 is raised to 1.
func NewCStringWithCap(a alloc.Allocator, capacity int) CString {
	c := CString{bytes: vec.NewWithCap(a, 1, max(1, capacity))}
	_ = c.bytes.Push(unsafe.Pointer(&nul))
	return c
}

// CStringFromCStr returns an owned copy of cstr, or ErrInteriorNul if
// cstr contains a NUL byte.
func CStringFromCStr(a alloc.Allocator, cstr view.CStr) (CString, error) {
	if cstr.GetNul() != nil {
		return CString{}, ErrInteriorNul
	}
	return CStringFromCStrUnchecked(a, cstr), nil
}

// CStringFromCStrUnchecked returns an owned copy of cstr, which must not
// contain a NUL byte.
func CStringFromCStrUnchecked(a alloc.Allocator, cstr view.CStr) CString {
	c := NewCStringWithCap(a, cstr.Len()+1)
	c.bytes.Clear()
	// Capacity is already sufficient; neither call can fail.
	_ = c.bytes.Extend(cstr.AsSlice())
	_ = c.bytes.Push(unsafe.Pointer(&nul))
	return c
}

// CStringFromBytes takes ownership of b, which must end with its only NUL
// byte. On failure b stays with the caller. It panics if b's stride is not 1.
func CStringFromBytes(b vec.Vec) (CString, error) {
	mustBeBytes(&b)
	data := b.Bytes()
	switch i := bytes.IndexByte(data, 0); {
	case i < 0:
		return CString{}, ErrMissingNul
	case i != len(data)-1:
		return CString{}, ErrInteriorNul
	}
	return CString{bytes: b}, nil
}

// Clone returns a deep copy of c.
func (c *CString) Clone() CString {
	return CString{bytes: c.bytes.Clone()}
}

// AsCStr returns a view of the text without the terminator. The viewed
// memory is still followed by the NUL, so AsCStr().AsPtr() is a valid C string.
func (c *CString) AsCStr() view.CStr {
	return view.NewCStr(c.bytes.AsPtr(), c.Len())
}

// AsBytes returns a view of the buffer including the terminator.
func (c *CString) AsBytes() view.Slice { return c.bytes.AsSlice() }

// AsPtr returns a pointer to the NUL-terminated text.
func (c *CString) AsPtr() unsafe.Pointer { return c.bytes.AsPtr() }

// IntoBytes returns the underlying vector, terminator included. c must
// not be used afterwards.
func (c *CString) IntoBytes() vec.Vec {
	b := c.bytes
	c.bytes = vec.Vec{}
	return b
}

// Len returns the length without the terminator.
func (c *CString) Len() int { return c.bytes.Len() - 1 }

// LenWithNul returns the length including the terminator.
func (c *CString) LenWithNul() int { return c.bytes.Len() }

// Cap returns the capacity in bytes.
func (c *CString) Cap() int { return c.bytes.Cap() }

func (c *CString) Allocator() alloc.Allocator { return c.bytes.Allocator() }

// String returns the text without the terminator as a Go string.
func (c *CString) String() string {
	return string(c.bytes.Bytes()[:c.Len()])
}

// Push appends ch before the terminator. A NUL ch is ignored.
func (c *CString) Push(ch byte) error {
	if ch == 0 {
		return nil
	}
	return c.bytes.Insert(unsafe.Pointer(&ch), c.Len())
}

// PushCStr appends cstr before the terminator, or returns ErrInteriorNul
// if cstr contains a NUL byte.
func (c *CString) PushCStr(cstr view.CStr) error {
	if cstr.GetNul() != nil {
		return ErrInteriorNul
	}
	if err := c.bytes.Reserve(cstr.Len()); err != nil {
		return err
	}
	c.bytes.Truncate(c.Len())
	_ = c.bytes.Extend(cstr.AsSlice())
	_ = c.bytes.Push(unsafe.Pointer(&nul))
	return nil
}

// Pop removes and returns the last byte before the terminator.
func (c *CString) Pop() (byte, bool) {
	n := c.Len()
	if n <= 0 {
		return 0, false
	}
	b := c.bytes.Bytes()
	ch := b[n-1]
	b[n-1] = 0
	c.bytes.Truncate(n)
	return ch, true
}

// Clear empties the string, keeping the terminator and the capacity.
func (c *CString) Clear() {
	c.bytes.Bytes()[0] = 0
	c.bytes.Truncate(1)
}

// Free releases the buffer.
func (c *CString) Free() { c.bytes.Free() }
