package alloc

import (
	"unsafe"

	"github.com/pavanmanishd/nstd/internal/mem"
)

// GoHeap allocates from the Go heap. Blocks are 8-byte aligned, always
// zeroed, and reclaimed by the garbage collector once deallocated and no
// longer referenced.
//
// The collector does not scan block contents, so payloads must not hold
// the only reference to Go-allocated memory. GoHeap is safe for concurrent use.
type GoHeap struct{}

// NewGoHeap returns a Go heap allocator.
func NewGoHeap() *GoHeap {
	return &GoHeap{}
}

// Allocate returns a block of size bytes, or nil if size is invalid or too large.
func (h *GoHeap) Allocate(size int) unsafe.Pointer {
	return goAlloc(size)
}

// AllocateZeroed is identical to Allocate: Go memory is always zeroed.
func (h *GoHeap) AllocateZeroed(size int) unsafe.Pointer {
	return goAlloc(size)
}

// Reallocate moves the block into a new allocation of newSize bytes.
func (h *GoHeap) Reallocate(ptr *unsafe.Pointer, oldSize, newSize int) error {
	p := goAlloc(newSize)
	if p == nil {
		return ErrOutOfMemory
	}
	mem.Copy(p, *ptr, min(oldSize, newSize))
	*ptr = p
	return nil
}

// Deallocate drops the block. The memory is returned to the Go runtime
// once nothing references it.
func (h *GoHeap) Deallocate(ptr unsafe.Pointer, size int) error {
	if ptr == nil {
		return ErrMemoryNotFound
	}
	return nil
}

// goAlloc allocates whole words so every block is 8-byte aligned.
// Sizes the runtime rejects yield nil instead of a panic.
func goAlloc(size int) (p unsafe.Pointer) {
	if size <= 0 {
		return nil
	}
	defer func() {
		if recover() != nil {
			p = nil
		}
	}()
	words := make([]uint64, (size+7)/8)
	return unsafe.Pointer(unsafe.SliceData(words))
}

// goChunk returns a word-aligned []byte of size bytes backed by the Go heap.
func goChunk(size int) ([]byte, error) {
	p := goAlloc(size)
	if p == nil {
		return nil, ErrOutOfMemory
	}
	return unsafe.Slice((*byte)(p), size), nil
}
