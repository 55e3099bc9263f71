package view

import (
	"strconv"
)

// Numeric conversions follow Go's textual number grammar (strconv) with
// base-10 integers. Malformed or out-of-range input yields a *ParseError;
// the returned value is then unspecified.

func (s Str) ToF32() (float32, error) {
	v, err := strconv.ParseFloat(s.String(), 32)
	return float32(v), s.parseErr("float32", err)
}

func (s Str) ToF64() (float64, error) {
	v, err := strconv.ParseFloat(s.String(), 64)
	return v, s.parseErr("float64", err)
}

func (s Str) ToInt() (int, error) {
	v, err := strconv.ParseInt(s.String(), 10, 0)
	return int(v), s.parseErr("int", err)
}

func (s Str) ToUint() (uint, error) {
	v, err := strconv.ParseUint(s.String(), 10, 0)
	return uint(v), s.parseErr("uint", err)
}

func (s Str) ToI8() (int8, error) {
	v, err := strconv.ParseInt(s.String(), 10, 8)
	return int8(v), s.parseErr("int8", err)
}

func (s Str) ToU8() (uint8, error) {
	v, err := strconv.ParseUint(s.String(), 10, 8)
	return uint8(v), s.parseErr("uint8", err)
}

func (s Str) ToI16() (int16, error) {
	v, err := strconv.ParseInt(s.String(), 10, 16)
	return int16(v), s.parseErr("int16", err)
}

func (s Str) ToU16() (uint16, error) {
	v, err := strconv.ParseUint(s.String(), 10, 16)
	return uint16(v), s.parseErr("uint16", err)
}

func (s Str) ToI32() (int32, error) {
	v, err := strconv.ParseInt(s.String(), 10, 32)
	return int32(v), s.parseErr("int32", err)
}

func (s Str) ToU32() (uint32, error) {
	v, err := strconv.ParseUint(s.String(), 10, 32)
	return uint32(v), s.parseErr("uint32", err)
}

func (s Str) ToI64() (int64, error) {
	v, err := strconv.ParseInt(s.String(), 10, 64)
	return v, s.parseErr("int64", err)
}

func (s Str) ToU64() (uint64, error) {
	v, err := strconv.ParseUint(s.String(), 10, 64)
	return v, s.parseErr("uint64", err)
}

func (s Str) parseErr(kind string, err error) error {
	if err == nil {
		return nil
	}
	if ne, ok := err.(*strconv.NumError); ok {
		err = ne.Err
	}
	return &ParseError{Input: s.String(), Kind: kind, Err: err}
}
