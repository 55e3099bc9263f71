package alloc

import "log/slog"

// HeapOption configures a Heap.
type HeapOption func(*heapOptions)

type heapOptions struct {
	chunkSize int
	mmap      bool
	logger    *slog.Logger
}

func defaultHeapOptions() *heapOptions {
	return &heapOptions{
		chunkSize: DefaultChunkSize,
	}
}

// WithChunkSize sets the size of each chunk. If n <= 0, DefaultChunkSize is used.
func WithChunkSize(n int) HeapOption {
	return func(o *heapOptions) {
		if n <= 0 {
			n = DefaultChunkSize
		}
		o.chunkSize = n
	}
}

// WithMmap makes the heap map its chunks straight from the OS instead of
// the Go heap. Ignored on platforms without anonymous mmap.
func WithMmap(on bool) HeapOption {
	return func(o *heapOptions) {
		o.mmap = on
	}
}

// WithLogger sets the logger used for chunk growth and teardown.
// Defaults to the package logger.
func WithLogger(l *slog.Logger) HeapOption {
	return func(o *heapOptions) {
		o.logger = l
	}
}
