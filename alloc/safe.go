package alloc

import (
	"sync"
	"unsafe"
)

// SafeHeap is a mutex-protected wrapper around Heap for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
type SafeHeap struct {
	mu sync.Mutex
	h  *Heap
}

// NewSafeHeap creates a new thread-safe heap.
func NewSafeHeap(opts ...HeapOption) *SafeHeap {
	return &SafeHeap{h: NewHeap(opts...)}
}

// Allocate thread-safely allocates size bytes.
func (s *SafeHeap) Allocate(size int) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Allocate(size)
}

// AllocateZeroed thread-safely allocates size zeroed bytes.
func (s *SafeHeap) AllocateZeroed(size int) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.AllocateZeroed(size)
}

// Reallocate thread-safely resizes a block.
func (s *SafeHeap) Reallocate(ptr *unsafe.Pointer, oldSize, newSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Reallocate(ptr, oldSize, newSize)
}

// Deallocate thread-safely releases a block.
func (s *SafeHeap) Deallocate(ptr unsafe.Pointer, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Deallocate(ptr, size)
}

// EnsureCapacity thread-safely ensures the current chunk has at least n free bytes.
func (s *SafeHeap) EnsureCapacity(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.EnsureCapacity(n)
}

// Reset thread-safely rewinds the heap for reuse.
func (s *SafeHeap) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.Reset()
}

// Destroy thread-safely unmaps all chunks and invalidates the heap.
func (s *SafeHeap) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Destroy()
}
