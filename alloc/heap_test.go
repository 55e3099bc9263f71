package alloc

import (
	"errors"
	"fmt"
	"testing"
	"unsafe"

	"github.com/pavanmanishd/nstd/internal/mem"
)

func TestNewHeap(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		expected  int
	}{
		{"default chunk size", 0, DefaultChunkSize},
		{"negative chunk size", -1, DefaultChunkSize},
		{"custom chunk size", 8192, 8192},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeap(WithChunkSize(tt.chunkSize))
			defer h.Destroy()
			if h.chunkSize != tt.expected {
				t.Errorf("NewHeap(%d) chunk size = %d, want %d", tt.chunkSize, h.chunkSize, tt.expected)
			}
			if len(h.chunks) != 1 {
				t.Errorf("NewHeap(%d) chunks = %d, want 1", tt.chunkSize, len(h.chunks))
			}
		})
	}
}

func TestHeapAllocate(t *testing.T) {
	h := NewHeap(WithChunkSize(1024))
	defer h.Destroy()

	// Normal allocation
	p1 := h.Allocate(100)
	if p1 == nil {
		t.Fatal("Allocate(100) returned nil")
	}

	// Zero and negative sizes are rejected
	if p := h.Allocate(0); p != nil {
		t.Errorf("Allocate(0) = %v, want nil", p)
	}
	if p := h.Allocate(-1); p != nil {
		t.Errorf("Allocate(-1) = %v, want nil", p)
	}

	// Allocation that forces chunk growth
	p2 := h.Allocate(2000)
	if p2 == nil {
		t.Fatal("Allocate(2000) returned nil")
	}
	if h.NumChunks() != 2 {
		t.Errorf("NumChunks after large allocation = %d, want 2", h.NumChunks())
	}
	if h.Live() != 2 {
		t.Errorf("Live = %d, want 2", h.Live())
	}
}

func TestHeapAllocateZeroedAfterReset(t *testing.T) {
	h := NewHeap(WithChunkSize(1024))
	defer h.Destroy()

	p := h.Allocate(16)
	mem.Fill(p, 16, 0xFF)
	h.Reset()

	z := h.AllocateZeroed(16)
	if z != p {
		t.Fatalf("expected chunk reuse after Reset")
	}
	for i, b := range mem.Bytes(z, 16) {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestHeapAlignment(t *testing.T) {
	h := NewHeap(WithChunkSize(1024))
	defer h.Destroy()

	for i := 1; i <= 17; i++ {
		p := h.Allocate(i)
		if uintptr(p)%heapAlign != 0 {
			t.Errorf("Allocate(%d) not aligned: %x", i, uintptr(p))
		}
	}
}

func TestHeapDeallocate(t *testing.T) {
	h := NewHeap(WithChunkSize(1024))
	defer h.Destroy()

	p := h.Allocate(64)
	q := h.Allocate(64)

	// Wrong size is rejected and the block stays live
	if err := h.Deallocate(q, 32); !errors.Is(err, ErrMemoryNotFound) {
		t.Errorf("Deallocate with wrong size = %v, want ErrMemoryNotFound", err)
	}

	// Freeing the top block rolls the offset back
	before := h.SizeInUse()
	if err := h.Deallocate(q, 64); err != nil {
		t.Fatalf("Deallocate(q) = %v", err)
	}
	if h.SizeInUse() != before-64 {
		t.Errorf("SizeInUse after top free = %d, want %d", h.SizeInUse(), before-64)
	}

	// Double free is detected
	if err := h.Deallocate(q, 64); !errors.Is(err, ErrMemoryNotFound) {
		t.Errorf("double Deallocate = %v, want ErrMemoryNotFound", err)
	}

	// Unknown pointer is detected
	var x [8]byte
	if err := h.Deallocate(unsafe.Pointer(&x[0]), 8); !errors.Is(err, ErrMemoryNotFound) {
		t.Errorf("Deallocate(foreign) = %v, want ErrMemoryNotFound", err)
	}

	if err := h.Deallocate(p, 64); err != nil {
		t.Fatalf("Deallocate(p) = %v", err)
	}
	if h.Live() != 0 {
		t.Errorf("Live = %d, want 0", h.Live())
	}
}

func TestHeapReallocate(t *testing.T) {
	h := NewHeap(WithChunkSize(1024))
	defer h.Destroy()

	p := h.Allocate(8)
	copy(mem.Bytes(p, 8), "abcdefgh")

	// Top block grows in place
	orig := p
	if err := h.Reallocate(&p, 8, 32); err != nil {
		t.Fatalf("Reallocate in place = %v", err)
	}
	if p != orig {
		t.Errorf("top block moved on in-place growth")
	}

	// A block below the top has to move
	q := h.Allocate(8)
	if err := h.Reallocate(&p, 32, 64); err != nil {
		t.Fatalf("Reallocate move = %v", err)
	}
	if p == orig {
		t.Errorf("expected block to move")
	}
	if got := string(mem.Bytes(p, 8)); got != "abcdefgh" {
		t.Errorf("moved contents = %q, want %q", got, "abcdefgh")
	}

	// Stale pointer and wrong size are rejected
	stale := orig
	if err := h.Reallocate(&stale, 32, 64); !errors.Is(err, ErrMemoryNotFound) {
		t.Errorf("Reallocate(stale) = %v, want ErrMemoryNotFound", err)
	}
	if err := h.Reallocate(&q, 4, 16); !errors.Is(err, ErrMemoryNotFound) {
		t.Errorf("Reallocate(wrong size) = %v, want ErrMemoryNotFound", err)
	}
	if stale != orig {
		t.Errorf("rejected Reallocate modified the pointer")
	}
}

func TestHeapEnsureCapacity(t *testing.T) {
	h := NewHeap(WithChunkSize(1024))
	defer h.Destroy()
	initialChunks := h.NumChunks()

	// Ensure capacity within current chunk
	if err := h.EnsureCapacity(100); err != nil {
		t.Fatal(err)
	}
	if h.NumChunks() != initialChunks {
		t.Errorf("EnsureCapacity(100) changed chunk count")
	}

	// Ensure capacity that requires new chunk
	if err := h.EnsureCapacity(2000); err != nil {
		t.Fatal(err)
	}
	if h.NumChunks() != initialChunks+1 {
		t.Errorf("EnsureCapacity(2000) chunks = %d, want %d", h.NumChunks(), initialChunks+1)
	}
}

func TestHeapReset(t *testing.T) {
	h := NewHeap(WithChunkSize(1024))
	defer h.Destroy()

	h.Allocate(100)
	h.Allocate(200)

	if h.SizeInUse() == 0 {
		t.Error("Expected non-zero size in use after allocations")
	}

	h.Reset()
	if h.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Reset() = %d, want 0", h.SizeInUse())
	}
	if h.Live() != 0 {
		t.Errorf("Live after Reset() = %d, want 0", h.Live())
	}
	if h.NumChunks() == 0 {
		t.Error("Expected chunks to remain after Reset()")
	}
}

func TestHeapDestroy(t *testing.T) {
	h := NewHeap(WithChunkSize(1024))
	p := h.Allocate(100)

	if err := h.Destroy(); err != nil {
		t.Fatalf("Destroy() = %v", err)
	}
	if h.chunks != nil {
		t.Error("Expected chunks to be nil after Destroy()")
	}

	if h.Allocate(10) != nil {
		t.Error("Allocate after Destroy should return nil")
	}
	if err := h.Deallocate(p, 100); !errors.Is(err, ErrHeapNotFound) {
		t.Errorf("Deallocate after Destroy = %v, want ErrHeapNotFound", err)
	}
	if err := h.Reallocate(&p, 100, 200); !errors.Is(err, ErrHeapNotFound) {
		t.Errorf("Reallocate after Destroy = %v, want ErrHeapNotFound", err)
	}
	if err := h.Destroy(); !errors.Is(err, ErrHeapNotFound) {
		t.Errorf("second Destroy = %v, want ErrHeapNotFound", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on Reset after Destroy()")
		}
	}()
	h.Reset()
}

func TestHeapMmap(t *testing.T) {
	h := NewHeap(WithChunkSize(1<<16), WithMmap(true))
	defer h.Destroy()

	p := h.AllocateZeroed(4096)
	if p == nil {
		t.Fatal("AllocateZeroed on mmap heap returned nil")
	}
	if mmapSupported && !h.chunks[0].mapped {
		t.Error("expected first chunk to be mapped")
	}
	buf := mem.Bytes(p, 4096)
	buf[4095] = 7
	if err := h.Reallocate(&p, 4096, 1<<17); err != nil {
		t.Fatalf("Reallocate across chunks = %v", err)
	}
	if mem.Bytes(p, 4096)[4095] != 7 {
		t.Error("contents lost on reallocation")
	}
}

func BenchmarkHeapAllocate(b *testing.B) {
	h := NewHeap(WithChunkSize(1024 * 1024)) // 1MB chunks
	defer h.Destroy()
	sizes := []int{8, 64, 256, 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size-%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				h.Allocate(size)
				if i%1000 == 999 { // Reset periodically to avoid growing too much
					h.Reset()
				}
			}
		})
	}
}

func BenchmarkHeapVsBuiltin(b *testing.B) {
	b.Run("heap", func(b *testing.B) {
		h := NewHeap(WithChunkSize(1024 * 1024))
		defer h.Destroy()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			h.Allocate(64)
			if i%1000 == 999 {
				h.Reset()
			}
		}
	})

	b.Run("goheap", func(b *testing.B) {
		g := NewGoHeap()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			g.Allocate(64)
		}
	})
}
