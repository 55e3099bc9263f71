package strbuf

import (
	"strconv"

	"github.com/pavanmanishd/nstd/alloc"
)

// FromF32 formats v in plain decimal notation with the fewest digits that
// round-trip.
func FromF32(a alloc.Allocator, v float32) String {
	return fromGo(a, strconv.FormatFloat(float64(v), 'f', -1, 32))
}

// FromF64 is FromF32 for float64.
func FromF64(a alloc.Allocator, v float64) String {
	return fromGo(a, strconv.FormatFloat(v, 'f', -1, 64))
}

// FromInt formats v in base 10.
func FromInt(a alloc.Allocator, v int) String {
	return FromI64(a, int64(v))
}

func FromUint(a alloc.Allocator, v uint) String {
	return FromU64(a, uint64(v))
}

func FromI8(a alloc.Allocator, v int8) String {
	return FromI64(a, int64(v))
}

func FromU8(a alloc.Allocator, v uint8) String {
	return FromU64(a, uint64(v))
}

func FromI16(a alloc.Allocator, v int16) String {
	return FromI64(a, int64(v))
}

func FromU16(a alloc.Allocator, v uint16) String {
	return FromU64(a, uint64(v))
}

func FromI32(a alloc.Allocator, v int32) String {
	return FromI64(a, int64(v))
}

func FromU32(a alloc.Allocator, v uint32) String {
	return FromU64(a, uint64(v))
}

func FromI64(a alloc.Allocator, v int64) String {
	return fromGo(a, strconv.FormatInt(v, 10))
}

func FromU64(a alloc.Allocator, v uint64) String {
	return fromGo(a, strconv.FormatUint(v, 10))
}
