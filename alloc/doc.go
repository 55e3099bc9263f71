// Package alloc provides the raw memory backends used by nstd's owning types.
//
// # Overview
//
// Every heap pointer, shared pointer, vector and string in nstd obtains its
// memory through the Allocator interface:
//
//   - Allocate / AllocateZeroed: return a block or nil on failure
//   - Reallocate: resize a block; on failure the block is left untouched
//   - Deallocate: release a block given the same size it was allocated with
//
// Allocators never remember block sizes. Owners track sizes themselves and
// hand them back exactly.
//
// # Implementations
//
// GoHeap: blocks on the Go heap (the Default).
//
// Malloc: off-heap blocks from modernc.org/memory, released only by
// Deallocate or Close.
//
// Heap: a dedicated heap handle. Memory is carved out of chunks (optionally
// mapped straight from the OS) with a bump pointer, and a live table
// validates every Deallocate. After Destroy all calls report ErrHeapNotFound.
//
// Tracker: wraps any allocator, counts operations, rejects unknown blocks
// and injects out-of-memory failures for tests.
//
// # Basic Usage
//
//	h := alloc.NewHeap(alloc.WithChunkSize(4096))
//	defer h.Destroy()
//
//	p := h.AllocateZeroed(16)
//	if p == nil {
//	    alloc.Fatal("example", alloc.ErrOutOfMemory)
//	}
//	if err := h.Reallocate(&p, 16, 64); err != nil {
//	    // p still points at the original 16 bytes
//	}
//	_ = h.Deallocate(p, 64)
//
// # Errors
//
// Failures are reported as Error codes: ErrOutOfMemory, ErrMemoryNotFound
// and ErrHeapNotFound. Owning types treat allocation failure in
// constructors as fatal and call Fatal, which logs and panics.
//
// # Thread Safety
//
// GoHeap, Malloc and SafeHeap are safe for concurrent use. Heap is not.
// Tracker is safe when the allocator it wraps is.
//
// # Metrics and Monitoring
//
//	m := h.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Live blocks: %d\n", m.Live)
package alloc
