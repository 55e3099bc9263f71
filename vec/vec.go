// Package vec provides Vec, a growable buffer of fixed-stride elements
// whose element size is chosen at run time, and Of, a typed front end
// over it.
//
// A Vec owns one allocation of Cap()*Stride() bytes, or none when its
// capacity is 0. Len() <= Cap() holds after every operation. When a push
// finds the buffer full the capacity doubles (an empty buffer grows to 1).
// Every mutator either succeeds completely or, on allocation failure,
// returns the error and leaves the Vec unchanged.
//
// A Vec is not safe for concurrent use.
package vec

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/pavanmanishd/nstd/alloc"
	"github.com/pavanmanishd/nstd/internal/mem"
	"github.com/pavanmanishd/nstd/view"
)

var (
	// ErrIndexOutOfRange is returned by Insert and Remove for an invalid index.
	ErrIndexOutOfRange = errors.New("vec: index out of range")

	// ErrStrideMismatch is returned by PushBytes when the value is not
	// exactly one element long.
	ErrStrideMismatch = errors.New("vec: value size does not match stride")
)

// Vec is a growable buffer of Len elements of Stride bytes each.
type Vec struct {
	allocator alloc.Allocator
	ptr       unsafe.Pointer
	stride    int
	len       int
	cap       int
}

// New returns an empty Vec with capacity 0. No memory is allocated.
// A nil allocator selects alloc.Default. It panics if stride <= 0.
func New(a alloc.Allocator, stride int) Vec {
	if stride <= 0 {
		panic(fmt.Sprintf("vec: invalid stride %d", stride))
	}
	return Vec{allocator: alloc.Or(a), stride: stride}
}

// NewWithCap returns an empty Vec with room for capacity elements.
// It panics if stride or capacity is <= 0; an allocation failure is fatal.
func NewWithCap(a alloc.Allocator, stride, capacity int) Vec {
	v := New(a, stride)
	if capacity <= 0 {
		panic(fmt.Sprintf("vec: invalid capacity %d", capacity))
	}
	if err := v.grow(capacity); err != nil {
		alloc.Fatal("vec.NewWithCap", err)
	}
	return v
}

// Clone returns a deep copy of v with capacity Len() from the same
// allocator. An allocation failure is fatal.
func (v *Vec) Clone() Vec {
	if v.len == 0 {
		return New(v.allocator, v.stride)
	}
	c := New(v.allocator, v.stride)
	if err := c.grow(v.len); err != nil {
		alloc.Fatal("vec.Clone", err)
	}
	mem.Copy(c.ptr, v.ptr, v.byteLen())
	c.len = v.len
	return c
}

// Len returns the number of elements.
func (v *Vec) Len() int { return v.len }

// Cap returns the number of elements v can hold without reallocating.
func (v *Vec) Cap() int { return v.cap }

// Stride returns the size of one element in bytes.
func (v *Vec) Stride() int { return v.stride }

// Allocator returns the allocator that owns v's memory.
func (v *Vec) Allocator() alloc.Allocator { return v.allocator }

// AsPtr returns the address of the buffer, or nil if Cap is 0.
func (v *Vec) AsPtr() unsafe.Pointer { return v.ptr }

func (v *Vec) IsEmpty() bool { return v.len == 0 }

// AsSlice returns a read-only view of the elements.
func (v *Vec) AsSlice() view.Slice {
	return view.NewSliceUnchecked(v.ptr, v.stride, v.len)
}

// AsSliceMut returns a writable view of the elements.
func (v *Vec) AsSliceMut() view.SliceMut {
	return view.NewSliceMutUnchecked(v.ptr, v.stride, v.len)
}

// Bytes returns the elements as Len*Stride bytes.
func (v *Vec) Bytes() []byte { return mem.Bytes(v.ptr, v.byteLen()) }

// GetUnchecked returns a pointer to element i without a bounds check.
func (v *Vec) GetUnchecked(i int) unsafe.Pointer { return v.slot(i) }

func (v *Vec) byteLen() int { return v.len * v.stride }

func (v *Vec) slot(i int) unsafe.Pointer { return unsafe.Add(v.ptr, i*v.stride) }

// Get returns a pointer to element i, or nil if i is out of range. The
// pointer is valid until the next mutation of v.
func (v *Vec) Get(i int) unsafe.Pointer {
	if i < 0 || i >= v.len {
		return nil
	}
	return v.slot(i)
}

// GetMut is Get for writing.
func (v *Vec) GetMut(i int) unsafe.Pointer {
	return v.Get(i)
}

// Push appends the Stride bytes at value.
func (v *Vec) Push(value unsafe.Pointer) error {
	if v.len == v.cap {
		if err := v.grow(max(1, v.cap*2)); err != nil {
			return err
		}
	}
	mem.Copy(v.slot(v.len), value, v.stride)
	v.len++
	return nil
}

// PushBytes appends b, which must be exactly Stride bytes long.
func (v *Vec) PushBytes(b []byte) error {
	if len(b) != v.stride {
		return ErrStrideMismatch
	}
	return v.Push(unsafe.Pointer(unsafe.SliceData(b)))
}

// Pop removes the last element and returns a pointer to it, or nil if v is
// empty. The element stays readable until the next mutation of v.
func (v *Vec) Pop() unsafe.Pointer {
	if v.len == 0 {
		return nil
	}
	v.len--
	return v.slot(v.len)
}

// Insert places the element at value at index, shifting later elements up.
// index may equal Len.
func (v *Vec) Insert(value unsafe.Pointer, index int) error {
	if index < 0 || index > v.len {
		return ErrIndexOutOfRange
	}
	if v.len == v.cap {
		if err := v.grow(max(1, v.cap*2)); err != nil {
			return err
		}
	}
	mem.Copy(v.slot(index+1), v.slot(index), (v.len-index)*v.stride)
	mem.Copy(v.slot(index), value, v.stride)
	v.len++
	return nil
}

// Remove deletes the element at index, shifting later elements down.
func (v *Vec) Remove(index int) error {
	if index < 0 || index >= v.len {
		return ErrIndexOutOfRange
	}
	mem.Copy(v.slot(index), v.slot(index+1), (v.len-index-1)*v.stride)
	v.len--
	return nil
}

// Extend appends every element of values. It panics if values has a
// different stride. The capacity doubles until the new length fits.
func (v *Vec) Extend(values view.Slice) error {
	if values.Stride() != v.stride {
		panic(fmt.Sprintf("vec: Extend with stride %d into stride %d", values.Stride(), v.stride))
	}
	n := values.Len()
	if n == 0 {
		return nil
	}
	if n > math.MaxInt-v.len {
		return alloc.ErrOutOfMemory
	}
	need := v.len + n
	if need > v.cap {
		c := max(1, v.cap)
		for c < need {
			if c > math.MaxInt/2 {
				return alloc.ErrOutOfMemory
			}
			c *= 2
		}
		if err := v.grow(c); err != nil {
			return err
		}
	}
	mem.Copy(v.slot(v.len), values.Ptr(), n*v.stride)
	v.len = need
	return nil
}

// Truncate shortens v to n elements. It does nothing if n >= Len.
func (v *Vec) Truncate(n int) {
	if n >= 0 && n < v.len {
		v.len = n
	}
}

// Clear sets the length to 0 and keeps the capacity.
func (v *Vec) Clear() {
	v.len = 0
}

// Reserve makes room for exactly additional more elements beyond Len,
// unless the capacity already suffices.
func (v *Vec) Reserve(additional int) error {
	if additional <= 0 {
		return nil
	}
	if additional > math.MaxInt-v.len {
		return alloc.ErrOutOfMemory
	}
	if need := v.len + additional; need > v.cap {
		return v.grow(need)
	}
	return nil
}

// Shrink reduces the capacity to Len. A Vec with no elements releases its
// allocation entirely.
func (v *Vec) Shrink() error {
	if v.cap == v.len {
		return nil
	}
	if v.len == 0 {
		v.release()
		return nil
	}
	if err := v.allocator.Reallocate(&v.ptr, v.cap*v.stride, v.byteLen()); err != nil {
		return err
	}
	v.cap = v.len
	return nil
}

// Free releases v's allocation and leaves v empty with capacity 0.
func (v *Vec) Free() {
	v.release()
	v.len = 0
}

func (v *Vec) release() {
	if v.cap > 0 {
		if err := v.allocator.Deallocate(v.ptr, v.cap*v.stride); err != nil {
			alloc.Logger().Warn("vec: deallocate failed", "bytes", v.cap*v.stride, "err", err)
		}
	}
	v.ptr = nil
	v.cap = 0
}

// grow sets the capacity to newCap, which must exceed the current one.
// On failure v is unchanged.
func (v *Vec) grow(newCap int) error {
	if newCap > math.MaxInt/v.stride {
		return alloc.ErrOutOfMemory
	}
	size := newCap * v.stride
	if v.cap == 0 {
		p := v.allocator.Allocate(size)
		if p == nil {
			return alloc.ErrOutOfMemory
		}
		v.ptr = p
	} else if err := v.allocator.Reallocate(&v.ptr, v.cap*v.stride, size); err != nil {
		return err
	}
	v.cap = newCap
	return nil
}
