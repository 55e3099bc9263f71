package alloc

// SizeInUse returns the number of bytes bumped out of the heap's chunks.
// This includes alignment padding and freed blocks that were not on top.
func (h *Heap) SizeInUse() int {
	if h.chunks == nil {
		return 0
	}
	sum := 0
	for _, c := range h.chunks {
		sum += int(c.offset)
	}
	return sum
}

// NumChunks returns the number of chunks currently held by the heap.
func (h *Heap) NumChunks() int {
	if h.chunks == nil {
		return 0
	}
	return len(h.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks in the heap.
func (h *Heap) Capacity() int {
	if h.chunks == nil {
		return 0
	}
	sum := 0
	for _, c := range h.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the heap has no capacity.
func (h *Heap) Utilization() float64 {
	capacity := h.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(h.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size used by this heap.
func (h *Heap) ChunkSize() int {
	return h.chunkSize
}

// Live returns the number of blocks allocated and not yet deallocated.
func (h *Heap) Live() int {
	return len(h.live)
}

// LiveBytes returns the total size of the live blocks.
func (h *Heap) LiveBytes() int {
	sum := 0
	for _, b := range h.live {
		sum += b.size
	}
	return sum
}

// Metrics returns a snapshot of heap statistics.
func (h *Heap) Metrics() HeapMetrics {
	return HeapMetrics{
		SizeInUse:   h.SizeInUse(),
		Capacity:    h.Capacity(),
		NumChunks:   h.NumChunks(),
		ChunkSize:   h.ChunkSize(),
		Utilization: h.Utilization(),
		Live:        h.Live(),
		LiveBytes:   h.LiveBytes(),
	}
}

// HeapMetrics contains statistical information about a heap.
type HeapMetrics struct {
	SizeInUse   int     `json:"size_in_use"` // Bytes bumped out of chunks
	Capacity    int     `json:"capacity"`    // Total capacity in bytes
	NumChunks   int     `json:"num_chunks"`  // Number of chunks
	ChunkSize   int     `json:"chunk_size"`  // Default chunk size
	Utilization float64 `json:"utilization"` // Ratio of used to total capacity (0.0-1.0)
	Live        int     `json:"live"`        // Live blocks
	LiveBytes   int     `json:"live_bytes"`  // Bytes in live blocks
}

// Thread-safe metrics for SafeHeap

// SizeInUse thread-safely returns the number of bytes bumped out of chunks.
func (s *SafeHeap) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.SizeInUse()
}

// NumChunks thread-safely returns the number of chunks currently held.
func (s *SafeHeap) NumChunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.NumChunks()
}

// Capacity thread-safely returns the total capacity of all chunks.
func (s *SafeHeap) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Capacity()
}

// Utilization thread-safely returns the ratio of bytes in use to total capacity.
func (s *SafeHeap) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Utilization()
}

// ChunkSize thread-safely returns the default chunk size.
func (s *SafeHeap) ChunkSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.ChunkSize()
}

// Live thread-safely returns the number of live blocks.
func (s *SafeHeap) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Live()
}

// Metrics thread-safely returns a snapshot of heap statistics.
func (s *SafeHeap) Metrics() HeapMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Metrics()
}
