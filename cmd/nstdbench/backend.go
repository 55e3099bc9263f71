package main

import (
	"fmt"

	"github.com/pavanmanishd/nstd/alloc"
)

// backend is an allocator wrapped in a tracker, plus its teardown.
type backend struct {
	name    string
	tracker *alloc.Tracker
	heap    *alloc.Heap
	close   func() error
}

func openBackend(name string, chunk int) (*backend, error) {
	b := &backend{name: name, close: func() error { return nil }}
	var inner alloc.Allocator
	switch name {
	case "go":
		inner = alloc.NewGoHeap()
	case "malloc":
		m := alloc.NewMalloc()
		inner, b.close = m, m.Close
	case "heap", "mmap":
		h := alloc.NewHeap(alloc.WithChunkSize(chunk), alloc.WithMmap(name == "mmap"))
		inner, b.heap, b.close = h, h, h.Destroy
	default:
		return nil, fmt.Errorf("unknown backend %q (want go, malloc, heap or mmap)", name)
	}
	b.tracker = alloc.NewTracker(inner)
	return b, nil
}

// report is the common part of every command's output.
type report struct {
	Backend string               `json:"backend"`
	Tracker alloc.TrackerMetrics `json:"tracker"`
	Heap    *alloc.HeapMetrics   `json:"heap,omitempty"`
}

func (b *backend) report() report {
	r := report{Backend: b.name, Tracker: b.tracker.Metrics()}
	if b.heap != nil {
		m := b.heap.Metrics()
		r.Heap = &m
	}
	return r
}
