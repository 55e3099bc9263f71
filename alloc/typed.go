package alloc

import "unsafe"

// New returns a pointer to a zeroed T allocated from a.
// The caller releases it with Delete. T must not contain Go pointers
// unless a is a GoHeap.
func New[T any](a Allocator) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return &zero
	}
	return (*T)(MustAllocateZeroed(Or(a), "alloc.New", size))
}

// Delete releases a value obtained from New.
func Delete[T any](a Allocator, p *T) error {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return nil
	}
	return Or(a).Deallocate(unsafe.Pointer(p), size)
}

// MakeSlice allocates a zeroed slice of n elements of type T from a.
// Returns nil if n <= 0. The caller releases it with DeleteSlice.
func MakeSlice[T any](a Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n)
	}
	p := MustAllocateZeroed(Or(a), "alloc.MakeSlice", elemSize*n)
	return unsafe.Slice((*T)(p), n)
}

// DeleteSlice releases a slice obtained from MakeSlice. s must be the
// slice exactly as returned, not a reslice.
func DeleteSlice[T any](a Allocator, s []T) error {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if len(s) == 0 || elemSize == 0 {
		return nil
	}
	return Or(a).Deallocate(unsafe.Pointer(unsafe.SliceData(s)), elemSize*len(s))
}
