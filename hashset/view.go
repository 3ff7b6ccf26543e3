// Package hashset implements open-addressing hash sets with Robin-Hood linear
// probing over parallel arrays of elements, cached hashes and buckets.
//
// A View is a read-only window over such a table; it never mutates or owns the
// arrays it refers to. A Set owns its arrays, allocates them through an
// arena.MemoryAllocator and keeps the Robin-Hood invariant on insertion.
package hashset

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/pavanmanishd/arena/v2/hashing"
)

// Empty marks a bucket that refers to no element.
const Empty int64 = -1

// View refers to a pre-built Robin-Hood table. The zero value is an empty view.
//
// The arrays must not be modified while the view is in use.
type View[T any] struct {
	elements []T
	hashes   []uint64
	buckets  []int64
	traits   hashing.Traits[T]
}

// NewView returns a view over elements, their cached hashes and a bucket
// array mapping bucket index to element index or Empty. The buckets must
// follow Robin-Hood placement for the hash function of traits.
func NewView[T any](traits hashing.Traits[T], elements []T, hashes []uint64, buckets []int64) View[T] {
	if len(elements) != len(hashes) {
		panic(fmt.Sprintf("hashset: %d elements but %d hashes", len(elements), len(hashes)))
	}
	if len(buckets) != 0 && traits == nil {
		panic("hashset: nil traits")
	}
	return View[T]{
		elements: elements,
		hashes:   hashes,
		buckets:  buckets,
		traits:   traits,
	}
}

// Len returns the number of elements.
func (v View[T]) Len() int { return len(v.elements) }

// IsEmpty reports whether there are no elements.
func (v View[T]) IsEmpty() bool { return len(v.elements) == 0 }

// BucketCount returns the table size.
func (v View[T]) BucketCount() int { return len(v.buckets) }

// Size returns the number of bytes the elements occupy.
func (v View[T]) Size() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size != 0 && len(v.elements) > math.MaxInt/size {
		panic("hashset: element byte size overflows")
	}
	return len(v.elements) * size
}

// Elements returns the referred elements in insertion order.
func (v View[T]) Elements() []T { return v.elements }

// Get returns the element at index.
func (v View[T]) Get(index int) *T { return &v.elements[index] }

// First returns the first element, or nil if the view is empty.
func (v View[T]) First() *T {
	if len(v.elements) == 0 {
		return nil
	}
	return &v.elements[0]
}

// Last returns the last element, or nil if the view is empty.
func (v View[T]) Last() *T {
	if len(v.elements) == 0 {
		return nil
	}
	return &v.elements[len(v.elements)-1]
}

// Locate returns the index of the element equivalent to queried.
func (v View[T]) Locate(queried T) (int, bool) {
	if len(v.buckets) == 0 {
		return -1, false
	}
	return v.locate(&queried, hashing.Sum[T](v.traits, &queried))
}

func (v View[T]) locate(queried *T, queriedHash uint64) (int, bool) {
	n := int64(len(v.buckets))
	if n == 0 {
		return -1, false
	}

	for probe := int64(0); ; probe++ {
		// Where queried would sit after probe steps; also where the tested
		// element sits.
		bucket := bucketIndex(queriedHash, probe, n)

		tested := v.buckets[bucket]
		if tested == Empty {
			return -1, false
		}

		testedHash := v.hashes[tested]
		if queriedHash == testedHash && v.traits.Equal(queried, &v.elements[tested]) {
			return int(tested), true
		}

		// Past the tested element's own probe length the queried element
		// cannot appear: insertion would have displaced the tested one.
		if probe > probeLength(testedHash, bucket, n) {
			return -1, false
		}
	}
}

// bucketIndex returns the bucket an element with hash occupies after probe
// steps from its ideal bucket. The modulus is taken on the signed value so
// the addition cannot overflow, then shifted into [0, n).
func bucketIndex(hash uint64, probe, n int64) int64 {
	r := (int64(hash)%n + probe) % n
	if r < 0 {
		r += n
	}
	return r
}

// probeLength returns how far bucket is from the ideal bucket of hash.
func probeLength(hash uint64, bucket, n int64) int64 {
	r := (bucket - int64(hash)%n) % n
	if r < 0 {
		r += n
	}
	return r
}
