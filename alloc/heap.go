package alloc

import (
	"log/slog"
	"unsafe"

	"github.com/pavanmanishd/nstd/internal/mem"
)

// DefaultChunkSize is the default chunk size for new heaps (64 KiB).
const DefaultChunkSize = 1 << 16

// heapAlign is the alignment of every block handed out by a Heap.
const heapAlign = unsafe.Sizeof(uint64(0))

// chunk represents a single memory chunk within a heap.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // bump offset within buf
	mapped bool    // buf came from mmap and must be unmapped
}

// block records one live allocation.
type block struct {
	chunk int
	off   uintptr
	size  int
}

// Heap is a dedicated heap handle: a chunked bump allocator that also keeps
// a table of live blocks so deallocations can be validated. Freeing the
// topmost block of a chunk rolls the bump offset back; other freed space is
// only reclaimed by Reset or Destroy.
//
// Heap is not goroutine-safe. Use SafeHeap for concurrent access.
type Heap struct {
	chunks    []chunk
	chunkSize int
	current   int
	live      map[uintptr]block
	mmap      bool
	log       *slog.Logger
	destroyed bool
}

// NewHeap creates a heap and maps its first chunk.
func NewHeap(opts ...HeapOption) *Heap {
	o := defaultHeapOptions()
	for _, opt := range opts {
		opt(o)
	}
	h := &Heap{
		chunkSize: o.chunkSize,
		live:      make(map[uintptr]block),
		mmap:      o.mmap,
		log:       o.logger,
	}
	// A failed first chunk is retried on the first allocation.
	_ = h.grow(h.chunkSize)
	return h
}

// Allocate returns an uninitialized block of size bytes, or nil if the heap
// has been destroyed or cannot grow.
func (h *Heap) Allocate(size int) unsafe.Pointer {
	if h.destroyed || size <= 0 {
		return nil
	}
	p, err := h.alloc(size)
	if err != nil {
		return nil
	}
	return p
}

// AllocateZeroed returns a zero-filled block of size bytes, or nil on failure.
// Chunks are reused after Reset, so the block is cleared explicitly.
func (h *Heap) AllocateZeroed(size int) unsafe.Pointer {
	p := h.Allocate(size)
	if p != nil {
		mem.Zero(p, size)
	}
	return p
}

// Reallocate resizes a block. The topmost block of a chunk grows or shrinks
// in place when the chunk has room; otherwise the data moves to a new block.
func (h *Heap) Reallocate(ptr *unsafe.Pointer, oldSize, newSize int) error {
	if h.destroyed {
		return ErrHeapNotFound
	}
	addr := uintptr(*ptr)
	b, ok := h.live[addr]
	if !ok || b.size != oldSize {
		return ErrMemoryNotFound
	}
	if newSize <= 0 {
		return ErrOutOfMemory
	}

	c := &h.chunks[b.chunk]
	top := b.off+uintptr(b.size) == c.offset
	if top && b.off+uintptr(newSize) <= uintptr(len(c.buf)) {
		c.offset = b.off + uintptr(newSize)
		b.size = newSize
		h.live[addr] = b
		return nil
	}
	if newSize <= oldSize {
		b.size = newSize
		h.live[addr] = b
		return nil
	}

	p, err := h.alloc(newSize)
	if err != nil {
		return err
	}
	mem.Copy(p, *ptr, oldSize)
	h.release(addr, b)
	*ptr = p
	return nil
}

// Deallocate releases a block previously returned by this heap.
func (h *Heap) Deallocate(ptr unsafe.Pointer, size int) error {
	if h.destroyed {
		return ErrHeapNotFound
	}
	addr := uintptr(ptr)
	b, ok := h.live[addr]
	if !ok || b.size != size {
		return ErrMemoryNotFound
	}
	h.release(addr, b)
	return nil
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the heap with a new chunk.
func (h *Heap) EnsureCapacity(n int) error {
	if h.destroyed {
		return ErrHeapNotFound
	}
	if len(h.chunks) == 0 {
		return h.grow(n)
	}
	c := &h.chunks[h.current]
	off := mem.Align(c.offset, heapAlign)
	if uintptr(n)+off > uintptr(len(c.buf)) {
		return h.grow(n)
	}
	return nil
}

// Reset forgets every live block and rewinds all chunks for reuse.
// Pointers obtained before Reset must not be used afterwards.
func (h *Heap) Reset() {
	h.panicIfDestroyed()
	for i := range h.chunks {
		h.chunks[i].offset = 0
	}
	clear(h.live)
	h.current = 0
}

// Destroy unmaps every chunk and invalidates the heap handle.
// Subsequent allocator calls report ErrHeapNotFound.
func (h *Heap) Destroy() error {
	if h.destroyed {
		return ErrHeapNotFound
	}
	var firstErr error
	for _, c := range h.chunks {
		if !c.mapped {
			continue
		}
		if err := unmapChunk(c.buf); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	h.logger().Debug("heap destroyed", "chunks", len(h.chunks), "live", len(h.live))
	h.chunks = nil
	h.live = nil
	h.current = 0
	h.destroyed = true
	return firstErr
}

// alloc bumps size bytes out of the first chunk, starting at the current
// one, that has room, growing the heap when none does.
func (h *Heap) alloc(size int) (unsafe.Pointer, error) {
	for i := h.current; i < len(h.chunks); i++ {
		c := &h.chunks[i]
		off := mem.Align(c.offset, heapAlign)
		if off+uintptr(size) <= uintptr(len(c.buf)) {
			h.current = i
			return h.take(i, off, size), nil
		}
	}
	if err := h.grow(size); err != nil {
		return nil, err
	}
	return h.take(h.current, 0, size), nil
}

func (h *Heap) take(ci int, off uintptr, size int) unsafe.Pointer {
	c := &h.chunks[ci]
	c.offset = off + uintptr(size)
	p := unsafe.Pointer(&c.buf[off])
	h.live[uintptr(p)] = block{chunk: ci, off: off, size: size}
	return p
}

// release drops a live block, rolling the chunk offset back when the
// block is the topmost one.
func (h *Heap) release(addr uintptr, b block) {
	delete(h.live, addr)
	c := &h.chunks[b.chunk]
	if b.off+uintptr(b.size) == c.offset {
		c.offset = b.off
	}
}

// grow appends a new chunk of at least min bytes.
func (h *Heap) grow(min int) error {
	size := h.chunkSize
	if min > size {
		size = min
	}
	buf, mapped, err := newChunk(size, h.mmap)
	if err != nil {
		h.logger().Debug("heap grow failed", "size", size, "mmap", h.mmap, "err", err)
		return ErrOutOfMemory
	}
	h.chunks = append(h.chunks, chunk{buf: buf, mapped: mapped})
	h.current = len(h.chunks) - 1
	h.logger().Debug("heap grew", "chunk", h.current, "size", size, "mmap", mapped)
	return nil
}

func (h *Heap) logger() *slog.Logger {
	if h.log != nil {
		return h.log
	}
	return Logger()
}

// panicIfDestroyed panics if the heap has been destroyed.
func (h *Heap) panicIfDestroyed() {
	if h.destroyed {
		panic("alloc: heap used after Destroy()")
	}
}

// newChunk returns size bytes of chunk memory, mapped from the OS when
// useMmap is set and the platform supports it.
func newChunk(size int, useMmap bool) ([]byte, bool, error) {
	if useMmap && mmapSupported {
		buf, err := mapChunk(size)
		if err != nil {
			return nil, false, err
		}
		return buf, true, nil
	}
	buf, err := goChunk(size)
	return buf, false, err
}
