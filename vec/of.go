package vec

import (
	"fmt"
	"unsafe"

	"github.com/pavanmanishd/nstd/alloc"
)

// Of is a typed view of a Vec whose stride is the size of T. All growth
// and bookkeeping happen in the underlying Vec. T must not contain Go
// pointers unless the allocator is an alloc.GoHeap.
type Of[T any] struct {
	v Vec
}

// NewOf returns an empty typed vector. It panics if T has size 0.
func NewOf[T any](a alloc.Allocator) Of[T] {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		panic(fmt.Sprintf("vec: zero-sized element type %T", zero))
	}
	return Of[T]{v: New(a, size)}
}

// Raw returns the underlying type-erased Vec.
func (o *Of[T]) Raw() *Vec { return &o.v }

func (o *Of[T]) Len() int { return o.v.len }
func (o *Of[T]) Cap() int { return o.v.cap }

// Push appends x.
func (o *Of[T]) Push(x T) error {
	return o.v.Push(unsafe.Pointer(&x))
}

// Pop removes and returns the last element.
func (o *Of[T]) Pop() (T, bool) {
	p := o.v.Pop()
	if p == nil {
		var zero T
		return zero, false
	}
	return *(*T)(p), true
}

// Get returns a copy of element i.
func (o *Of[T]) Get(i int) (T, bool) {
	if p := o.At(i); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// At returns a pointer to element i, or nil if i is out of range.
func (o *Of[T]) At(i int) *T {
	return (*T)(o.v.Get(i))
}

// Set overwrites element i and reports whether i was in range.
func (o *Of[T]) Set(i int, x T) bool {
	p := o.At(i)
	if p == nil {
		return false
	}
	*p = x
	return true
}

// Insert places x at index i.
func (o *Of[T]) Insert(i int, x T) error {
	return o.v.Insert(unsafe.Pointer(&x), i)
}

// Remove deletes element i.
func (o *Of[T]) Remove(i int) error {
	return o.v.Remove(i)
}

// Slice returns the elements as a Go slice backed by the vector's memory.
// It is valid until the next mutation.
func (o *Of[T]) Slice() []T {
	if o.v.len == 0 {
		return nil
	}
	return unsafe.Slice((*T)(o.v.ptr), o.v.len)
}

// Free releases the underlying allocation.
func (o *Of[T]) Free() { o.v.Free() }
