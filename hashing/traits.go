package hashing

import (
	"bytes"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Hashable feeds the semantic content of a T into a Hasher. Implementations
// must be deterministic and consistent with the paired EqualityComparable:
// equal values produce equal hashes.
type Hashable[T any] interface {
	Hash(h *Hasher, v *T)
}

// EqualityComparable is an equivalence relation over T.
type EqualityComparable[T any] interface {
	Equal(a, b *T) bool
}

// Traits bundles the two capabilities a hash set needs for its elements.
type Traits[T any] interface {
	Hashable[T]
	EqualityComparable[T]
}

// Sum hashes v with a fresh Hasher. Use it from consumers of hash values;
// Hashable implementations hashing sub-values should call Hash on the Hasher
// they were given instead.
func Sum[T any](hs Hashable[T], v *T) uint64 {
	var h Hasher
	hs.Hash(&h, v)
	return h.Value()
}

// Integer hashes integers by their in-memory bytes zero-extended to 64 bits.
type Integer[T constraints.Integer] struct{}

// Hash implements Hashable.
func (Integer[T]) Hash(h *Hasher, v *T) {
	size := unsafe.Sizeof(*v)
	mask := ^uint64(0) >> (64 - 8*size)
	h.Combine(uint64(*v) & mask)
}

// Equal implements EqualityComparable.
func (Integer[T]) Equal(a, b *T) bool {
	return *a == *b
}

// Bool hashes booleans as 0 or 1.
type Bool struct{}

// Hash implements Hashable.
func (Bool) Hash(h *Hasher, v *bool) {
	var n uint64
	if *v {
		n = 1
	}
	h.Combine(n)
}

// Equal implements EqualityComparable.
func (Bool) Equal(a, b *bool) bool {
	return *a == *b
}

// String hashes strings with xxhash.
type String struct{}

// Hash implements Hashable.
func (String) Hash(h *Hasher, v *string) {
	h.Combine(xxhash.Sum64String(*v))
}

// Equal implements EqualityComparable.
func (String) Equal(a, b *string) bool {
	return *a == *b
}

// Bytes hashes byte slices by content with xxhash.
type Bytes struct{}

// Hash implements Hashable.
func (Bytes) Hash(h *Hasher, v *[]byte) {
	h.Combine(xxhash.Sum64(*v))
}

// Equal implements EqualityComparable.
func (Bytes) Equal(a, b *[]byte) bool {
	return bytes.Equal(*a, *b)
}

// Funcs adapts a pair of functions to Traits.
type Funcs[T any] struct {
	HashFunc  func(h *Hasher, v *T)
	EqualFunc func(a, b *T) bool
}

// Hash implements Hashable.
func (f Funcs[T]) Hash(h *Hasher, v *T) {
	f.HashFunc(h, v)
}

// Equal implements EqualityComparable.
func (f Funcs[T]) Equal(a, b *T) bool {
	return f.EqualFunc(a, b)
}
