// Package sharedptr provides SharedPtr, a reference-counted pointer to one
// read-only value of a run-time size.
//
// The owner count lives in the same allocation as the value, in front of
// it. Share hands out another handle and bumps the count; Free drops it and
// the last Free releases the allocation. The count is updated atomically,
// so handles to one value may be shared and freed from different
// goroutines. The payload itself is never synchronized and must not be
// written while shared.
package sharedptr

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/pavanmanishd/nstd/alloc"
	"github.com/pavanmanishd/nstd/internal/mem"
)

// headerSize is the size of the owner count stored before the payload.
const headerSize = int(unsafe.Sizeof(uintptr(0)))

// ErrZeroSize is the fatal error raised when a SharedPtr is created for a
// zero-sized value.
var ErrZeroSize = errors.New("sharedptr: zero-sized value")

// SharedPtr is one handle to a shared allocation. Copying a SharedPtr value
// does not create an owner; use Share.
type SharedPtr struct {
	allocator alloc.Allocator
	ptr       unsafe.Pointer // count header, payload follows
	size      int            // payload size
}

// New allocates a shared value of size bytes initialized from init, with
// one owner. A nil allocator selects alloc.Default. A size <= 0 or an
// allocation failure is fatal.
func New(a alloc.Allocator, size int, init unsafe.Pointer) SharedPtr {
	s := newShared(a, size, false, "sharedptr.New")
	mem.Copy(s.Get(), init, size)
	return s
}

// NewZeroed allocates a zeroed shared value of size bytes with one owner.
func NewZeroed(a alloc.Allocator, size int) SharedPtr {
	return newShared(a, size, true, "sharedptr.NewZeroed")
}

// NewValue allocates a shared copy of the value v points to. v must be a
// non-nil pointer to a value that holds no Go pointers.
func NewValue(a alloc.Allocator, v any) SharedPtr {
	p, size := mem.Value(v)
	return New(a, size, p)
}

func newShared(a alloc.Allocator, size int, zeroed bool, op string) SharedPtr {
	if size <= 0 {
		alloc.Fatal(op, ErrZeroSize)
	}
	a = alloc.Or(a)
	var p unsafe.Pointer
	if zeroed {
		p = alloc.MustAllocateZeroed(a, op, headerSize+size)
	} else {
		p = alloc.MustAllocate(a, op, headerSize+size)
	}
	atomic.StoreUintptr((*uintptr)(p), 1)
	return SharedPtr{allocator: a, ptr: p, size: size}
}

// Share registers a new owner and returns its handle.
func (s *SharedPtr) Share() SharedPtr {
	s.mustBeLive("Share")
	atomic.AddUintptr(s.count(), 1)
	return *s
}

// Owners returns the number of live handles.
func (s *SharedPtr) Owners() int {
	s.mustBeLive("Owners")
	return int(atomic.LoadUintptr(s.count()))
}

// Allocator returns the allocator that owns the shared allocation.
func (s *SharedPtr) Allocator() alloc.Allocator { return s.allocator }

// Size returns the payload size in bytes.
func (s *SharedPtr) Size() int { return s.size }

// Get returns a pointer to the payload. The payload must only be read.
func (s *SharedPtr) Get() unsafe.Pointer {
	return unsafe.Add(s.ptr, headerSize)
}

// Bytes returns the payload bytes. The slice must not be modified.
func (s *SharedPtr) Bytes() []byte {
	return mem.Bytes(s.Get(), s.size)
}

// Load copies the payload into the variable out points to. out must be a
// non-nil pointer to a type of exactly Size bytes.
func (s *SharedPtr) Load(out any) {
	p, size := mem.Value(out)
	if size != s.size {
		panic(fmt.Sprintf("sharedptr: Load into %d-byte value, have %d bytes", size, s.size))
	}
	mem.Copy(p, s.Get(), size)
}

// Value returns a copy of the payload as a T. It panics if T's size
// differs from s.Size().
func Value[T any](s *SharedPtr) T {
	var v T
	if int(unsafe.Sizeof(v)) != s.size {
		panic(fmt.Sprintf("sharedptr: Value[%T] on %d-byte value", v, s.size))
	}
	return *(*T)(s.Get())
}

// Free drops this handle. The allocation is released by the Free call that
// takes the owner count from 1 to 0. The handle is cleared; calling Free
// on it again panics.
func (s *SharedPtr) Free() {
	s.Drop(nil)
}

// Drop is Free with a destructor: fn is called with the payload only when
// this handle is the last owner, right before the allocation is released.
func (s *SharedPtr) Drop(fn func(unsafe.Pointer)) {
	s.mustBeLive("Free")
	n := atomic.AddUintptr(s.count(), ^uintptr(0))
	if n == 0 {
		if fn != nil {
			fn(s.Get())
		}
		if err := s.allocator.Deallocate(s.ptr, headerSize+s.size); err != nil {
			alloc.Logger().Warn("sharedptr: deallocate failed", "size", s.size, "err", err)
		}
	}
	*s = SharedPtr{}
}

func (s *SharedPtr) count() *uintptr {
	return (*uintptr)(s.ptr)
}

func (s *SharedPtr) mustBeLive(op string) {
	if s.ptr == nil {
		panic("sharedptr: " + op + " on released handle")
	}
}
