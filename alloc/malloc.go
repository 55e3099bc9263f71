package alloc

import (
	"sync"
	"unsafe"

	"modernc.org/memory"
)

// Malloc allocates outside the Go heap through modernc.org/memory, which
// serves small blocks from mmap'd pages and large blocks directly from mmap.
// Memory is never scanned or moved by the garbage collector and stays
// allocated until Deallocate or Close. Safe for concurrent use.
type Malloc struct {
	mu sync.Mutex
	a  memory.Allocator
}

// MallocStats reports the counters kept by the underlying allocator.
type MallocStats struct {
	Allocs int // Live allocations
	Bytes  int // Bytes mapped from the OS
	Mmaps  int // Live mappings
}

// NewMalloc returns an empty off-heap allocator.
func NewMalloc() *Malloc {
	return &Malloc{}
}

// Allocate returns an uninitialized block of size bytes, or nil on failure.
func (m *Malloc) Allocate(size int) unsafe.Pointer {
	if size <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.a.Malloc(size)
	if err != nil || len(b) == 0 {
		Logger().Debug("malloc failed", "size", size, "err", err)
		return nil
	}
	return unsafe.Pointer(&b[0])
}

// AllocateZeroed returns a zero-filled block of size bytes, or nil on failure.
func (m *Malloc) AllocateZeroed(size int) unsafe.Pointer {
	if size <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.a.Calloc(size)
	if err != nil || len(b) == 0 {
		Logger().Debug("calloc failed", "size", size, "err", err)
		return nil
	}
	return unsafe.Pointer(&b[0])
}

// Reallocate resizes the block at *ptr. The underlying allocator only frees
// the old block after the new one has been obtained and filled.
func (m *Malloc) Reallocate(ptr *unsafe.Pointer, oldSize, newSize int) error {
	if *ptr == nil || oldSize <= 0 {
		return ErrMemoryNotFound
	}
	if newSize <= 0 {
		return ErrOutOfMemory
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.a.Realloc(unsafe.Slice((*byte)(*ptr), oldSize), newSize)
	if err != nil || len(b) == 0 {
		Logger().Debug("realloc failed", "old", oldSize, "new", newSize, "err", err)
		return ErrOutOfMemory
	}
	*ptr = unsafe.Pointer(&b[0])
	return nil
}

// Deallocate returns the block to the allocator.
func (m *Malloc) Deallocate(ptr unsafe.Pointer, size int) error {
	if ptr == nil || size <= 0 {
		return ErrMemoryNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.a.Free(unsafe.Slice((*byte)(ptr), size)); err != nil {
		Logger().Debug("free failed", "size", size, "err", err)
		return ErrMemoryNotFound
	}
	return nil
}

// Stats returns a snapshot of the allocator counters.
func (m *Malloc) Stats() MallocStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MallocStats{Allocs: m.a.Allocs, Bytes: m.a.Bytes, Mmaps: m.a.Mmaps}
}

// Close releases every mapping held by the allocator. Blocks that were
// not deallocated become invalid.
func (m *Malloc) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.a.Close()
}
