// Package view provides non-owning windows over memory owned elsewhere:
// Slice and SliceMut for fixed-stride elements, Str for UTF-8 text and
// CStr for C strings.
//
// A view is a pointer plus a length. It never allocates or frees and must
// not outlive the buffer it borrows from. Every view type has a checked
// constructor that validates its input and an unchecked one that trusts
// the caller.
package view

import (
	"math"
	"unsafe"

	"github.com/pavanmanishd/nstd/internal/mem"
)

// Slice is a read-only view of Len elements of Stride bytes each.
type Slice struct {
	ptr    unsafe.Pointer
	stride int
	len    int
}

// NewSlice returns a view of n elements of stride bytes at ptr, or
// ErrInvalidLayout if stride is not positive, n is negative, n*stride
// overflows, or ptr is nil while n > 0.
func NewSlice(ptr unsafe.Pointer, stride, n int) (Slice, error) {
	if err := checkLayout(ptr, stride, n); err != nil {
		return Slice{}, err
	}
	return Slice{ptr: ptr, stride: stride, len: n}, nil
}

// NewSliceUnchecked is NewSlice without validation.
func NewSliceUnchecked(ptr unsafe.Pointer, stride, n int) Slice {
	return Slice{ptr: ptr, stride: stride, len: n}
}

// SliceOf returns a stride-1 view of b.
func SliceOf(b []byte) Slice {
	return Slice{ptr: unsafe.Pointer(unsafe.SliceData(b)), stride: 1, len: len(b)}
}

// SliceOfValues returns a view of s with the element size of T as stride.
func SliceOfValues[T any](s []T) Slice {
	var zero T
	return Slice{ptr: unsafe.Pointer(unsafe.SliceData(s)), stride: int(unsafe.Sizeof(zero)), len: len(s)}
}

func checkLayout(ptr unsafe.Pointer, stride, n int) error {
	switch {
	case stride <= 0, n < 0:
		return ErrInvalidLayout
	case n > 0 && ptr == nil:
		return ErrInvalidLayout
	case n > math.MaxInt/stride:
		return ErrInvalidLayout
	}
	return nil
}

// Ptr returns the address of the first element.
func (s Slice) Ptr() unsafe.Pointer { return s.ptr }

// Len returns the number of elements.
func (s Slice) Len() int { return s.len }

// Stride returns the size of one element in bytes.
func (s Slice) Stride() int { return s.stride }

// ByteLen returns Len * Stride.
func (s Slice) ByteLen() int { return s.len * s.stride }

// Get returns a pointer to element i, or nil if i is out of range.
func (s Slice) Get(i int) unsafe.Pointer {
	if i < 0 || i >= s.len {
		return nil
	}
	return unsafe.Add(s.ptr, i*s.stride)
}

// First returns a pointer to the first element, or nil if s is empty.
func (s Slice) First() unsafe.Pointer { return s.Get(0) }

// Last returns a pointer to the last element, or nil if s is empty.
func (s Slice) Last() unsafe.Pointer { return s.Get(s.len - 1) }

// Bytes returns the viewed memory as a []byte of ByteLen bytes.
func (s Slice) Bytes() []byte { return mem.Bytes(s.ptr, s.ByteLen()) }

// SliceMut is a writable view of Len elements of Stride bytes each.
type SliceMut struct {
	ptr    unsafe.Pointer
	stride int
	len    int
}

// NewSliceMut is the writable counterpart of NewSlice.
func NewSliceMut(ptr unsafe.Pointer, stride, n int) (SliceMut, error) {
	if err := checkLayout(ptr, stride, n); err != nil {
		return SliceMut{}, err
	}
	return SliceMut{ptr: ptr, stride: stride, len: n}, nil
}

// NewSliceMutUnchecked is NewSliceMut without validation.
func NewSliceMutUnchecked(ptr unsafe.Pointer, stride, n int) SliceMut {
	return SliceMut{ptr: ptr, stride: stride, len: n}
}

// SliceMutOf returns a writable stride-1 view of b.
func SliceMutOf(b []byte) SliceMut {
	return SliceMut{ptr: unsafe.Pointer(unsafe.SliceData(b)), stride: 1, len: len(b)}
}

// AsConst returns a read-only view of the same memory.
func (s SliceMut) AsConst() Slice {
	return Slice{ptr: s.ptr, stride: s.stride, len: s.len}
}

func (s SliceMut) Ptr() unsafe.Pointer { return s.ptr }
func (s SliceMut) Len() int { return s.len }
func (s SliceMut) Stride() int { return s.stride }
func (s SliceMut) ByteLen() int { return s.len * s.stride }

// Get returns a pointer to element i, or nil if i is out of range.
func (s SliceMut) Get(i int) unsafe.Pointer { return s.AsConst().Get(i) }

// First returns a pointer to the first element, or nil if s is empty.
func (s SliceMut) First() unsafe.Pointer { return s.Get(0) }

// Last returns a pointer to the last element, or nil if s is empty.
func (s SliceMut) Last() unsafe.Pointer { return s.Get(s.len - 1) }

// Bytes returns the viewed memory as a writable []byte.
func (s SliceMut) Bytes() []byte { return mem.Bytes(s.ptr, s.ByteLen()) }

// Copy overwrites the elements of s with those of src. Both views must
// have the same length and stride; otherwise ErrLayoutMismatch is
// returned and s is left untouched. The views may overlap.
func (s SliceMut) Copy(src Slice) error {
	if s.len != src.len || s.stride != src.stride {
		return ErrLayoutMismatch
	}
	mem.Copy(s.ptr, src.ptr, s.ByteLen())
	return nil
}
