package hashing

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestHasherCombine(t *testing.T) {
	var h Hasher
	require.Zero(t, h.Value())

	h.Combine(0)
	require.Equal(t, combineSeed, h.Value())

	v := h.Value()
	h.Combine(42)
	require.Equal(t, v^(42+combineSeed+(v<<6)+(v>>2)), h.Value())

	h.Reset()
	require.Zero(t, h.Value())
}

func TestHasherOrderMatters(t *testing.T) {
	var a, b Hasher
	a.Combine(1)
	a.Combine(2)
	b.Combine(2)
	b.Combine(1)
	require.NotEqual(t, a.Value(), b.Value())
}

func TestIntegerTraits(t *testing.T) {
	// Negative values hash by their bytes, not their sign extension.
	i8 := int8(-1)
	u8 := uint8(0xFF)
	require.Equal(t, Sum[uint8](Integer[uint8]{}, &u8), Sum[int8](Integer[int8]{}, &i8))

	i64 := int64(-1)
	u64 := ^uint64(0)
	require.Equal(t, Sum[uint64](Integer[uint64]{}, &u64), Sum[int64](Integer[int64]{}, &i64))

	a, b := int32(7), int32(7)
	require.True(t, Integer[int32]{}.Equal(&a, &b))
	b = 8
	require.False(t, Integer[int32]{}.Equal(&a, &b))
}

func TestStringAndBytesTraits(t *testing.T) {
	s := "hello"
	bs := []byte("hello")

	var h Hasher
	h.Combine(xxhash.Sum64String(s))
	require.Equal(t, h.Value(), Sum[string](String{}, &s))
	require.Equal(t, Sum[string](String{}, &s), Sum[[]byte](Bytes{}, &bs))

	other := []byte("hello")
	require.True(t, Bytes{}.Equal(&bs, &other))
	other[0] = 'j'
	require.False(t, Bytes{}.Equal(&bs, &other))
}

func TestBoolTraits(t *testing.T) {
	yes, no := true, false
	require.NotEqual(t, Sum[bool](Bool{}, &yes), Sum[bool](Bool{}, &no))
	require.False(t, Bool{}.Equal(&yes, &no))
}

func TestFuncsTraits(t *testing.T) {
	type point struct{ X, Y int64 }
	traits := Funcs[point]{
		HashFunc: func(h *Hasher, p *point) {
			Integer[int64]{}.Hash(h, &p.X)
			Integer[int64]{}.Hash(h, &p.Y)
		},
		EqualFunc: func(a, b *point) bool { return *a == *b },
	}

	p, q := point{1, 2}, point{1, 2}
	require.Equal(t, Sum[point](traits, &p), Sum[point](traits, &q))
	require.True(t, traits.Equal(&p, &q))

	r := point{2, 1}
	require.NotEqual(t, Sum[point](traits, &p), Sum[point](traits, &r))
}
