package strbuf

import (
	"testing"

	"github.com/pavanmanishd/nstd/alloc"
	"github.com/pavanmanishd/nstd/vec"
	"github.com/pavanmanishd/nstd/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCStringNew(t *testing.T) {
	tr := alloc.NewTracker(nil)
	c := NewCString(tr)
	assert.Zero(t, c.Len())
	assert.Equal(t, 1, c.LenWithNul())
	assert.Equal(t, []byte{0}, c.AsBytes().Bytes())
	assert.Equal(t, 1, tr.Live())
	c.Free()
	assert.Zero(t, tr.Live())

	w := NewCStringWithCap(nil, 0)
	assert.Equal(t, 1, w.Cap())
	w.Free()
}

func TestCStringPushPop(t *testing.T) {
	c := NewCString(nil)
	defer c.Free()

	for _, b := range []byte("Hi") {
		require.NoError(t, c.Push(b))
	}
	require.NoError(t, c.Push(0), "NUL is ignored")
	assert.Equal(t, "Hi", c.String())
	assert.Equal(t, []byte("Hi\x00"), c.AsBytes().Bytes())
	assert.Equal(t, 2, view.RawLen(c.AsPtr()))

	require.NoError(t, c.PushCStr(view.CStrOf([]byte(", there"))))
	assert.Equal(t, "Hi, there", c.String())
	assert.ErrorIs(t, c.PushCStr(view.CStrOf([]byte("a\x00b"))), ErrInteriorNul)
	assert.Equal(t, "Hi, there", c.String())

	ch, ok := c.Pop()
	require.True(t, ok)
	assert.Equal(t, byte('e'), ch)
	assert.True(t, view.CStrOf(c.AsBytes().Bytes()).IsNulTerminated())

	c.Clear()
	assert.Zero(t, c.Len())
	_, ok = c.Pop()
	assert.False(t, ok)
	assert.Equal(t, []byte{0}, c.AsBytes().Bytes())
}

func TestCStringAtomic(t *testing.T) {
	tr := alloc.NewTracker(nil)
	c := NewCString(tr)
	defer c.Free()

	tr.FailAfter(0)
	assert.ErrorIs(t, c.Push('x'), alloc.ErrOutOfMemory)
	assert.ErrorIs(t, c.PushCStr(view.CStrOf([]byte("xyz"))), alloc.ErrOutOfMemory)
	tr.FailNever()

	assert.Equal(t, []byte{0}, c.AsBytes().Bytes())
}

func TestCStringFromCStr(t *testing.T) {
	c, err := CStringFromCStr(nil, view.CStrOf([]byte("Hello")))
	require.NoError(t, err)
	defer c.Free()
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, 6, c.LenWithNul())
	assert.Equal(t, "Hello", c.AsCStr().String())
	assert.False(t, c.AsCStr().IsNulTerminated())

	_, err = CStringFromCStr(nil, view.CStrOf([]byte("He\x00llo")))
	assert.ErrorIs(t, err, ErrInteriorNul)

	d := c.Clone()
	require.NoError(t, d.Push('!'))
	assert.Equal(t, "Hello", c.String())
	assert.Equal(t, "Hello!", d.String())
	d.Free()
}

func TestCStringFromBytes(t *testing.T) {
	mk := func(s string) vec.Vec {
		v := vec.New(nil, 1)
		require.NoError(t, v.Extend(view.SliceOf([]byte(s))))
		return v
	}

	b := mk("abc")
	_, err := CStringFromBytes(b)
	assert.ErrorIs(t, err, ErrMissingNul)
	b.Free()

	b = mk("a\x00c\x00")
	_, err = CStringFromBytes(b)
	assert.ErrorIs(t, err, ErrInteriorNul)
	b.Free()

	c, err := CStringFromBytes(mk("abc\x00"))
	require.NoError(t, err)
	assert.Equal(t, "abc", c.String())

	raw := c.IntoBytes()
	assert.Equal(t, 4, raw.Len())
	raw.Free()
}
