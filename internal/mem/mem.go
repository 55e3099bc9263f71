// Package mem holds the byte-level primitives shared by the owning types.
// Every function works on raw (pointer, length) pairs; callers guarantee
// that the regions are valid for the given number of bytes.
package mem

import (
	"bytes"
	"unsafe"
)

// Bytes returns a []byte view of n bytes starting at p.
// Returns nil if n <= 0 or p is nil.
func Bytes(p unsafe.Pointer, n int) []byte {
	if n <= 0 || p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

// Copy copies n bytes from src to dst. The regions may overlap.
func Copy(dst, src unsafe.Pointer, n int) {
	if n <= 0 {
		return
	}
	copy(Bytes(dst, n), Bytes(src, n))
}

// Zero sets n bytes at p to zero.
func Zero(p unsafe.Pointer, n int) {
	clear(Bytes(p, n))
}

// Fill sets n bytes at p to b.
func Fill(p unsafe.Pointer, n int, b byte) {
	buf := Bytes(p, n)
	for i := range buf {
		buf[i] = b
	}
}

// Compare reports whether the n bytes at a and b are equal.
func Compare(a, b unsafe.Pointer, n int) bool {
	if a == b {
		return true
	}
	return bytes.Equal(Bytes(a, n), Bytes(b, n))
}

// Search returns a pointer to the first byte equal to delim within n bytes
// at p, or nil if there is none.
func Search(p unsafe.Pointer, n int, delim byte) unsafe.Pointer {
	i := bytes.IndexByte(Bytes(p, n), delim)
	if i < 0 {
		return nil
	}
	return unsafe.Add(p, i)
}

// Swap exchanges n bytes between x and y. The regions must not overlap.
func Swap(x, y unsafe.Pointer, n int) {
	bx, by := Bytes(x, n), Bytes(y, n)
	for i := range bx {
		bx[i], by[i] = by[i], bx[i]
	}
}

// Align rounds n up to the next multiple of align, which must be a power of two.
func Align(n, align uintptr) uintptr {
	mask := align - 1
	return (n + mask) & ^mask
}
