package view

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlice(t *testing.T) {
	data := []uint32{1, 2, 3}
	p := unsafe.Pointer(&data[0])

	tests := []struct {
		name   string
		ptr    unsafe.Pointer
		stride int
		n      int
		ok     bool
	}{
		{"valid", p, 4, 3, true},
		{"empty nil", nil, 4, 0, true},
		{"zero stride", p, 0, 3, false},
		{"negative len", p, 4, -1, false},
		{"nil with len", nil, 4, 1, false},
		{"overflow", p, 1 << 20, math.MaxInt / 1024, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSlice(tt.ptr, tt.stride, tt.n)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.n, s.Len())
			} else {
				assert.ErrorIs(t, err, ErrInvalidLayout)
			}
		})
	}
}

func TestSliceAccess(t *testing.T) {
	data := []uint32{10, 20, 30}
	s := SliceOfValues(data)

	assert.Equal(t, 4, s.Stride())
	assert.Equal(t, 12, s.ByteLen())
	assert.Equal(t, uint32(20), *(*uint32)(s.Get(1)))
	assert.Equal(t, uint32(10), *(*uint32)(s.First()))
	assert.Equal(t, uint32(30), *(*uint32)(s.Last()))
	assert.Nil(t, s.Get(3))
	assert.Nil(t, s.Get(-1))

	var empty Slice
	assert.Nil(t, empty.First())
	assert.Nil(t, empty.Last())
	assert.Nil(t, empty.Bytes())
}

func TestSliceMutCopy(t *testing.T) {
	dst := SliceMutOf(make([]byte, 4))
	require.NoError(t, dst.Copy(SliceOf([]byte("abcd"))))
	assert.Equal(t, "abcd", string(dst.Bytes()))

	err := dst.Copy(SliceOf([]byte("abc")))
	assert.ErrorIs(t, err, ErrLayoutMismatch)
	assert.Equal(t, "abcd", string(dst.Bytes()))

	wide := SliceOfValues([]uint16{1, 2})
	assert.ErrorIs(t, dst.Copy(wide), ErrLayoutMismatch)
	assert.Equal(t, dst.Ptr(), dst.AsConst().Ptr())
}

func TestStrFromBytes(t *testing.T) {
	s, err := StrFromBytes([]byte("héllo"))
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, 6, s.ByteLen())

	_, err = StrFromBytes([]byte{'o', 'k', 0xff, 'x'})
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 2, encErr.Offset)

	_, err = StrFromSlice(SliceOfValues([]uint16{1}))
	assert.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestStrGetChar(t *testing.T) {
	s := StrOf("Hello, 🌎!")
	assert.Equal(t, 12, s.ByteLen())
	assert.Equal(t, 9, s.Len())

	r, ok := s.GetChar(7)
	require.True(t, ok)
	assert.Equal(t, rune(0x1F30E), r)

	_, ok = s.GetChar(9)
	assert.False(t, ok)
	_, ok = s.GetChar(-1)
	assert.False(t, ok)
}

func TestSubstr(t *testing.T) {
	s := StrOf("Hello, 🌎!")

	assert.Equal(t, "Hello", s.Substr(Range{0, 5}).String())
	assert.Equal(t, "🌎", s.Substr(Range{7, 11}).String())
	assert.Equal(t, "", s.Substr(Range{12, 12}).String())

	tests := []struct {
		name string
		r    Range
	}{
		{"end past length", Range{0, 13}},
		{"start after end", Range{5, 4}},
		{"negative start", Range{-1, 2}},
		{"inside scalar", Range{8, 11}},
		{"end inside scalar", Range{7, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic")
				var be *BoundsError
				require.True(t, errors.As(r.(error), &be))
				assert.Equal(t, 12, be.Len)
			}()
			s.Substr(tt.r)
		})
	}
}

func TestParse(t *testing.T) {
	v, err := StrOf("33").ToInt()
	require.NoError(t, err)
	assert.Equal(t, 33, v)

	_, err = StrOf("abc").ToInt()
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "abc", pe.Input)
	assert.Equal(t, "int", pe.Kind)
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	_, err = StrOf("300").ToU8()
	assert.ErrorIs(t, err, strconv.ErrRange)

	i8, err := StrOf("-128").ToI8()
	require.NoError(t, err)
	assert.Equal(t, int8(-128), i8)

	f, err := StrOf("2.5").ToF32()
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), f)

	f64, err := StrOf("-1e3").ToF64()
	require.NoError(t, err)
	assert.Equal(t, -1000.0, f64)

	u64, err := StrOf("18446744073709551615").ToU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u64)

	_, err = StrOf("-1").ToUint()
	assert.Error(t, err)
	i16, _ := StrOf("1234").ToI16()
	u16, _ := StrOf("1234").ToU16()
	i32, _ := StrOf("-7").ToI32()
	u32, _ := StrOf("7").ToU32()
	i64, _ := StrOf("-9").ToI64()
	assert.Equal(t, []any{int16(1234), uint16(1234), int32(-7), uint32(7), int64(-9)},
		[]any{i16, u16, i32, u32, i64})
}

func TestCStr(t *testing.T) {
	raw := []byte("Hello\x00world\x00")
	p := unsafe.Pointer(&raw[0])

	c := CStrFromRaw(p)
	assert.Equal(t, 5, c.Len())
	assert.False(t, c.IsNulTerminated())
	assert.Nil(t, c.GetNul())

	cn := CStrFromRawWithNul(p)
	assert.Equal(t, 6, cn.Len())
	assert.True(t, cn.IsNulTerminated())
	assert.Equal(t, unsafe.Add(p, 5), cn.GetNul())
	assert.Equal(t, "Hello", cn.String())

	whole := CStrOf(raw)
	assert.False(t, whole.IsNulTerminated(), "interior NUL")
	assert.Equal(t, byte('w'), *(*byte)(whole.Get(6)))
	assert.Nil(t, whole.Get(12))

	s, err := StrFromCStr(cn)
	require.NoError(t, err)
	assert.Equal(t, "Hello", s.String())
	assert.Equal(t, "Hello", StrFromCStrUnchecked(c).String())
}

func TestRawHelpers(t *testing.T) {
	a := []byte("Hello, world!\x00")
	b := []byte("Hello world!\x00")
	pa, pb := unsafe.Pointer(&a[0]), unsafe.Pointer(&b[0])

	assert.Equal(t, 13, RawLen(pa))
	assert.Equal(t, 14, RawLenWithNul(pa))
	assert.True(t, RawCompare(pa, pa))
	assert.False(t, RawCompare(pa, pb))

	buf := make([]byte, 14)
	for i := range buf {
		buf[i] = 0xff
	}
	RawCopyWithNul(unsafe.Pointer(&buf[0]), pa)
	assert.Equal(t, a, buf)

	buf2 := make([]byte, 14)
	RawCopy(unsafe.Pointer(&buf2[0]), pb)
	assert.Equal(t, "Hello world!", string(buf2[:12]))
	assert.True(t, RawCompare(unsafe.Pointer(&buf2[0]), pb))
}
