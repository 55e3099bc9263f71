package alloc

import (
	"fmt"
	"unsafe"
)

// Allocator is the raw memory backend used by every owning type in nstd.
//
// Sizes are byte counts and must be greater than zero; this is a
// precondition and is not checked by all implementations. The allocator
// does not remember block sizes: callers pass the exact size used at
// allocation time back to Reallocate and Deallocate.
type Allocator interface {
	// Allocate returns a new uninitialized block of size bytes, or nil on failure.
	Allocate(size int) unsafe.Pointer

	// AllocateZeroed returns a new zero-filled block of size bytes, or nil on failure.
	AllocateZeroed(size int) unsafe.Pointer

	// Reallocate resizes the block at *ptr from oldSize to newSize bytes.
	// On success *ptr is updated and the first min(oldSize, newSize) bytes
	// are preserved. On failure *ptr and its contents are left untouched.
	Reallocate(ptr *unsafe.Pointer, oldSize, newSize int) error

	// Deallocate releases the block at ptr, which must have been obtained
	// from this allocator with the same size.
	Deallocate(ptr unsafe.Pointer, size int) error
}

// Default is the allocator used when an owning type is given a nil Allocator.
var Default Allocator = NewGoHeap()

// Or returns a, or Default if a is nil.
func Or(a Allocator) Allocator {
	if a == nil {
		return Default
	}
	return a
}

// Fatal reports an allocation failure that the caller cannot recover from.
// It logs the failure and panics with an error wrapping err, so the
// original Error code stays reachable through errors.Is / errors.As.
func Fatal(op string, err error) {
	Logger().Error("fatal allocation failure", "op", op, "err", err)
	panic(fmt.Errorf("%s: %w", op, err))
}

// MustAllocate allocates size bytes from a, calling Fatal on failure.
func MustAllocate(a Allocator, op string, size int) unsafe.Pointer {
	p := a.Allocate(size)
	if p == nil {
		Fatal(op, ErrOutOfMemory)
	}
	return p
}

// MustAllocateZeroed is the zero-filling variant of MustAllocate.
func MustAllocateZeroed(a Allocator, op string, size int) unsafe.Pointer {
	p := a.AllocateZeroed(size)
	if p == nil {
		Fatal(op, ErrOutOfMemory)
	}
	return p
}
