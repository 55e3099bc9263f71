//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package alloc

import "errors"

// mmapSupported is false here; heaps fall back to Go memory.
const mmapSupported = false

func mapChunk(size int) ([]byte, error) {
	return nil, errors.New("alloc: mmap not supported on this platform")
}

func unmapChunk(buf []byte) error {
	return nil
}
