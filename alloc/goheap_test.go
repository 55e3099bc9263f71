package alloc

import (
	"errors"
	"fmt"
	"testing"
	"unsafe"

	"github.com/pavanmanishd/nstd/internal/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoHeap(t *testing.T) {
	g := NewGoHeap()

	assert.Nil(t, g.Allocate(0))
	assert.Nil(t, g.Allocate(-3))

	p := g.AllocateZeroed(16)
	require.NotNil(t, p)
	assert.Equal(t, make([]byte, 16), mem.Bytes(p, 16))
	assert.Zero(t, uintptr(p)%8)

	copy(mem.Bytes(p, 16), "0123456789abcdef")
	require.NoError(t, g.Reallocate(&p, 16, 4))
	assert.Equal(t, "0123", string(mem.Bytes(p, 4)))

	require.NoError(t, g.Deallocate(p, 4))
	assert.ErrorIs(t, g.Deallocate(nil, 4), ErrMemoryNotFound)
}

func TestGoHeapHugeAllocation(t *testing.T) {
	g := NewGoHeap()
	var p unsafe.Pointer = g.Allocate(8)
	require.NotNil(t, p)

	huge := int(^uint(0) >> 1)
	assert.Nil(t, g.Allocate(huge))
	assert.ErrorIs(t, g.Reallocate(&p, 8, huge), ErrOutOfMemory)
	assert.NotNil(t, p)
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		code uint8
		msg  string
	}{
		{nil, 0, ""},
		{ErrOutOfMemory, 1, "alloc: out of memory"},
		{ErrMemoryNotFound, 2, "alloc: memory not found"},
		{ErrHeapNotFound, 3, "alloc: heap not found"},
		{fmt.Errorf("vec.Push: %w", ErrOutOfMemory), 1, "vec.Push: alloc: out of memory"},
		{errors.New("other"), 255, "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, Code(tt.err))
		if tt.err != nil {
			assert.Equal(t, tt.msg, tt.err.Error())
		}
	}
}

func TestFatal(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrOutOfMemory)
		assert.Equal(t, "heapptr.New: alloc: out of memory", err.Error())
	}()
	Fatal("heapptr.New", ErrOutOfMemory)
}

func TestMustAllocate(t *testing.T) {
	tr := NewTracker(nil)
	p := MustAllocate(tr, "test", 8)
	assert.NotNil(t, p)

	tr.FailAfter(0)
	assert.Panics(t, func() { MustAllocateZeroed(tr, "test", 8) })
	assert.Equal(t, Default, Or(nil))
	assert.Equal(t, Allocator(tr), Or(tr))
}
