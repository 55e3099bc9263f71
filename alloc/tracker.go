package alloc

import (
	"sync"
	"unsafe"
)

// Tracker wraps an Allocator and keeps a table of live blocks. It rejects
// deallocations and reallocations of unknown blocks or with the wrong size
// (ErrMemoryNotFound) without forwarding them, and it can inject
// out-of-memory failures. Safe for concurrent use when the wrapped
// allocator is.
type Tracker struct {
	mu        sync.Mutex
	inner     Allocator
	live      map[uintptr]int
	failAfter int
	stats     TrackerMetrics
}

// TrackerMetrics contains the counters kept by a Tracker.
type TrackerMetrics struct {
	Allocs     int `json:"allocs"`      // Successful Allocate/AllocateZeroed calls
	Reallocs   int `json:"reallocs"`    // Successful Reallocate calls
	Deallocs   int `json:"deallocs"`    // Successful Deallocate calls
	Failures   int `json:"failures"`    // Failed or injected-failure calls
	Rejected   int `json:"rejected"`    // Calls naming an unknown block
	LiveAllocs int `json:"live_allocs"` // Blocks currently allocated
	LiveBytes  int `json:"live_bytes"`  // Bytes currently allocated
	PeakBytes  int `json:"peak_bytes"`  // Highest LiveBytes observed
}

// NewTracker wraps a (or Default if a is nil).
func NewTracker(a Allocator) *Tracker {
	return &Tracker{
		inner:     Or(a),
		live:      make(map[uintptr]int),
		failAfter: -1,
	}
}

// FailAfter lets the next n allocating calls (Allocate, AllocateZeroed,
// Reallocate) through and makes every one after that fail with
// ErrOutOfMemory until FailNever is called. FailAfter(0) fails the next call.
func (t *Tracker) FailAfter(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 0 {
		n = 0
	}
	t.failAfter = n
	Logger().Debug("tracker fault injection armed", "after", n)
}

// FailNever disables fault injection.
func (t *Tracker) FailNever() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failAfter = -1
}

// Allocate forwards to the wrapped allocator and records the block.
func (t *Tracker) Allocate(size int) unsafe.Pointer {
	return t.allocate(size, false)
}

// AllocateZeroed forwards to the wrapped allocator and records the block.
func (t *Tracker) AllocateZeroed(size int) unsafe.Pointer {
	return t.allocate(size, true)
}

func (t *Tracker) allocate(size int, zeroed bool) unsafe.Pointer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.injectFailure() {
		return nil
	}
	var p unsafe.Pointer
	if zeroed {
		p = t.inner.AllocateZeroed(size)
	} else {
		p = t.inner.Allocate(size)
	}
	if p == nil {
		t.stats.Failures++
		return nil
	}
	t.live[uintptr(p)] = size
	t.stats.Allocs++
	t.addBytes(size)
	return p
}

// Reallocate validates the block and forwards to the wrapped allocator.
func (t *Tracker) Reallocate(ptr *unsafe.Pointer, oldSize, newSize int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	old := uintptr(*ptr)
	if size, ok := t.live[old]; !ok || size != oldSize {
		t.stats.Rejected++
		return ErrMemoryNotFound
	}
	if t.injectFailure() {
		return ErrOutOfMemory
	}
	if err := t.inner.Reallocate(ptr, oldSize, newSize); err != nil {
		t.stats.Failures++
		return err
	}
	delete(t.live, old)
	t.live[uintptr(*ptr)] = newSize
	t.stats.Reallocs++
	t.addBytes(newSize - oldSize)
	return nil
}

// Deallocate validates the block and forwards to the wrapped allocator.
func (t *Tracker) Deallocate(ptr unsafe.Pointer, size int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	addr := uintptr(ptr)
	if s, ok := t.live[addr]; !ok || s != size {
		t.stats.Rejected++
		return ErrMemoryNotFound
	}
	if err := t.inner.Deallocate(ptr, size); err != nil {
		return err
	}
	delete(t.live, addr)
	t.stats.Deallocs++
	t.addBytes(-size)
	return nil
}

// Live returns the number of blocks allocated through t and not yet deallocated.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// LiveBytes returns the total size of the live blocks.
func (t *Tracker) LiveBytes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.LiveBytes
}

// Metrics returns a snapshot of the tracker counters.
func (t *Tracker) Metrics() TrackerMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := t.stats
	m.LiveAllocs = len(t.live)
	return m
}

// injectFailure reports whether the current call must fail. Callers hold t.mu.
func (t *Tracker) injectFailure() bool {
	switch {
	case t.failAfter < 0:
		return false
	case t.failAfter == 0:
		t.stats.Failures++
		return true
	default:
		t.failAfter--
		return false
	}
}

func (t *Tracker) addBytes(n int) {
	t.stats.LiveBytes += n
	if t.stats.LiveBytes > t.stats.PeakBytes {
		t.stats.PeakBytes = t.stats.LiveBytes
	}
}
