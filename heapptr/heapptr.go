// Package heapptr provides HeapPtr, a single-owner pointer to one value of
// a run-time size.
//
// A HeapPtr owns exactly one allocation. Cloning makes an independent deep
// copy; Free releases the allocation. Calling Free twice on the same handle,
// or on a copy of a freed handle, is undefined.
package heapptr

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/pavanmanishd/nstd/alloc"
	"github.com/pavanmanishd/nstd/internal/mem"
)

// ErrZeroSize is the fatal error raised when a HeapPtr is created for a
// zero-sized value.
var ErrZeroSize = errors.New("heapptr: zero-sized value")

// HeapPtr owns one allocation of Size bytes.
type HeapPtr struct {
	allocator alloc.Allocator
	ptr       unsafe.Pointer
	size      int
}

// New allocates size bytes from a and copies size bytes from init into them.
// A nil allocator selects alloc.Default. A size <= 0 or an allocation
// failure is fatal.
func New(a alloc.Allocator, size int, init unsafe.Pointer) HeapPtr {
	h := newHeapPtr(a, size, false, "heapptr.New")
	mem.Copy(h.ptr, init, size)
	return h
}

// NewZeroed allocates size zeroed bytes from a.
func NewZeroed(a alloc.Allocator, size int) HeapPtr {
	return newHeapPtr(a, size, true, "heapptr.NewZeroed")
}

// NewValue allocates a copy of the value v points to. v must be a non-nil
// pointer to a value that holds no Go pointers.
func NewValue(a alloc.Allocator, v any) HeapPtr {
	p, size := mem.Value(v)
	return New(a, size, p)
}

func newHeapPtr(a alloc.Allocator, size int, zeroed bool, op string) HeapPtr {
	if size <= 0 {
		alloc.Fatal(op, ErrZeroSize)
	}
	a = alloc.Or(a)
	var p unsafe.Pointer
	if zeroed {
		p = alloc.MustAllocateZeroed(a, op, size)
	} else {
		p = alloc.MustAllocate(a, op, size)
	}
	return HeapPtr{allocator: a, ptr: p, size: size}
}

// Clone returns a deep copy of h in a new allocation from the same allocator.
func (h *HeapPtr) Clone() HeapPtr {
	return New(h.allocator, h.size, h.ptr)
}

// Allocator returns the allocator that owns h's memory.
func (h *HeapPtr) Allocator() alloc.Allocator { return h.allocator }

// Size returns the size of the owned value in bytes.
func (h *HeapPtr) Size() int { return h.size }

// Get returns a pointer to the owned value for reading.
func (h *HeapPtr) Get() unsafe.Pointer { return h.ptr }

// GetMut returns a pointer to the owned value for writing. The caller must
// hold exclusive access to h; no aliasing check is performed.
func (h *HeapPtr) GetMut() unsafe.Pointer { return h.ptr }

// Bytes returns the owned bytes. The slice is valid until Free.
func (h *HeapPtr) Bytes() []byte { return mem.Bytes(h.ptr, h.size) }

// Load copies the owned value into the variable out points to. out must
// be a non-nil pointer to a type of exactly Size bytes.
func (h *HeapPtr) Load(out any) {
	p, size := mem.Value(out)
	if size != h.size {
		panic(fmt.Sprintf("heapptr: Load into %d-byte value, have %d bytes", size, h.size))
	}
	mem.Copy(p, h.ptr, size)
}

// As reinterprets the owned bytes as a *T. It panics if T's size differs
// from h.Size().
func As[T any](h *HeapPtr) *T {
	var zero T
	if int(unsafe.Sizeof(zero)) != h.size {
		panic(fmt.Sprintf("heapptr: As[%T] on %d-byte value", zero, h.size))
	}
	return (*T)(h.ptr)
}

// Free releases the owned allocation and clears h.
func (h *HeapPtr) Free() {
	if err := h.allocator.Deallocate(h.ptr, h.size); err != nil {
		alloc.Logger().Warn("heapptr: deallocate failed", "size", h.size, "err", err)
	}
	*h = HeapPtr{}
}

// Drop passes the owned value to fn, then frees it.
func (h *HeapPtr) Drop(fn func(unsafe.Pointer)) {
	if fn != nil {
		fn(h.ptr)
	}
	h.Free()
}
