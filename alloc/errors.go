package alloc

import (
	"errors"
	"fmt"
)

// Error is an allocation error code. The zero value is never returned;
// a nil error means success.
type Error uint8

const (
	// ErrOutOfMemory indicates that the backend could not provide the memory.
	ErrOutOfMemory Error = iota + 1

	// ErrMemoryNotFound indicates that a block passed to Reallocate or
	// Deallocate is unknown to the allocator or was given with the wrong size.
	ErrMemoryNotFound

	// ErrHeapNotFound indicates that the heap handle backing the allocator
	// is unavailable (for example, it has been destroyed).
	ErrHeapNotFound
)

func (e Error) Error() string {
	switch e {
	case ErrOutOfMemory:
		return "alloc: out of memory"
	case ErrMemoryNotFound:
		return "alloc: memory not found"
	case ErrHeapNotFound:
		return "alloc: heap not found"
	}
	return fmt.Sprintf("alloc: error %d", uint8(e))
}

// Code returns the numeric error code carried by err: 0 for nil, the
// Error value if err wraps one, and 255 for any other error.
func Code(err error) uint8 {
	if err == nil {
		return 0
	}
	var e Error
	if errors.As(err, &e) {
		return uint8(e)
	}
	return 255
}
