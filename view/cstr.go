package view

import (
	"unsafe"

	"github.com/pavanmanishd/nstd/internal/mem"
)

// CStr is a read-only view of C string bytes. The viewed bytes may or may
// not end in a NUL terminator; IsNulTerminated tells.
type CStr struct {
	ptr unsafe.Pointer
	len int
}

// NewCStr returns a view of n bytes at ptr. Nothing is checked.
func NewCStr(ptr unsafe.Pointer, n int) CStr {
	return CStr{ptr: ptr, len: n}
}

// CStrFromRaw views the NUL-terminated string at ptr, excluding the NUL.
func CStrFromRaw(ptr unsafe.Pointer) CStr {
	return CStr{ptr: ptr, len: RawLen(ptr)}
}

// CStrFromRawWithNul views the NUL-terminated string at ptr, including the NUL.
func CStrFromRawWithNul(ptr unsafe.Pointer) CStr {
	return CStr{ptr: ptr, len: RawLenWithNul(ptr)}
}

// CStrOf returns a view of b.
func CStrOf(b []byte) CStr {
	return CStr{ptr: unsafe.Pointer(unsafe.SliceData(b)), len: len(b)}
}

// AsPtr returns the address of the first byte.
func (c CStr) AsPtr() unsafe.Pointer { return c.ptr }

// Len returns the number of viewed bytes, including a NUL if one is viewed.
func (c CStr) Len() int { return c.len }

// AsBytes returns the viewed bytes.
func (c CStr) AsBytes() []byte { return mem.Bytes(c.ptr, c.len) }

// AsSlice returns c as a stride-1 Slice.
func (c CStr) AsSlice() Slice { return Slice{ptr: c.ptr, stride: 1, len: c.len} }

// IsNulTerminated reports whether the view's only NUL is its last byte.
func (c CStr) IsNulTerminated() bool {
	nul := c.GetNul()
	return nul != nil && uintptr(nul)-uintptr(c.ptr) == uintptr(c.len-1)
}

// GetNul returns a pointer to the first NUL byte, or nil if there is none.
func (c CStr) GetNul() unsafe.Pointer {
	return mem.Search(c.ptr, c.len, 0)
}

// Get returns a pointer to byte pos, or nil if pos is out of range.
func (c CStr) Get(pos int) unsafe.Pointer {
	if pos < 0 || pos >= c.len {
		return nil
	}
	return unsafe.Add(c.ptr, pos)
}

// First returns a pointer to the first byte, or nil if c is empty.
func (c CStr) First() unsafe.Pointer { return c.Get(0) }

// Last returns a pointer to the last byte, or nil if c is empty.
func (c CStr) Last() unsafe.Pointer { return c.Get(c.len - 1) }

// String returns the bytes before the first NUL as a Go string.
func (c CStr) String() string { return string(c.bytesWithoutNul()) }

func (c CStr) bytesWithoutNul() []byte {
	b := c.AsBytes()
	if nul := c.GetNul(); nul != nil {
		b = b[:uintptr(nul)-uintptr(c.ptr)]
	}
	return b
}

// RawLen returns the length of the NUL-terminated string at p, excluding the NUL.
func RawLen(p unsafe.Pointer) int {
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return n
}

// RawLenWithNul returns the length of the NUL-terminated string at p, including the NUL.
func RawLenWithNul(p unsafe.Pointer) int {
	return RawLen(p) + 1
}

// RawCompare reports whether the NUL-terminated strings at a and b are equal.
func RawCompare(a, b unsafe.Pointer) bool {
	if a == b {
		return true
	}
	for i := 0; ; i++ {
		ca, cb := *(*byte)(unsafe.Add(a, i)), *(*byte)(unsafe.Add(b, i))
		if ca != cb {
			return false
		}
		if ca == 0 {
			return true
		}
	}
}

// RawCopy copies the NUL-terminated string at src to dst, without the NUL.
func RawCopy(dst, src unsafe.Pointer) {
	mem.Copy(dst, src, RawLen(src))
}

// RawCopyWithNul copies the NUL-terminated string at src to dst, with the NUL.
func RawCopyWithNul(dst, src unsafe.Pointer) {
	mem.Copy(dst, src, RawLenWithNul(src))
}
