package hashset

import (
	arena "github.com/pavanmanishd/arena/v2"
	"github.com/pavanmanishd/arena/v2/hashing"
)

const minBuckets = 8

// Set is an insertion-ordered hash set whose elements, cached hashes and
// buckets live in blocks of a MemoryAllocator. Elements keep the index they
// were added at.
//
// When backed by a LinearAllocator, T must not contain Go pointers.
type Set[T any] struct {
	allocator arena.MemoryAllocator
	traits    hashing.Traits[T]
	elements  arena.ArrayList[T]
	hashes    arena.ArrayList[uint64]
	buckets   arena.ArrayOwner[int64]
}

// New returns an empty set allocating from a.
func New[T any](a arena.MemoryAllocator, traits hashing.Traits[T]) *Set[T] {
	if traits == nil {
		panic("hashset: nil traits")
	}
	return &Set[T]{allocator: a, traits: traits}
}

// Add inserts v unless an equivalent element is present. It returns the
// index of the element equivalent to v and whether v was inserted. On error
// the set is unchanged.
func (s *Set[T]) Add(v T) (int, bool, error) {
	hash := hashing.Sum[T](s.traits, &v)
	if index, ok := s.View().locate(&v, hash); ok {
		return index, false, nil
	}

	if err := s.ensureRoom(s.elements.Len() + 1); err != nil {
		return -1, false, err
	}
	if err := s.elements.Add(s.allocator, v); err != nil {
		return -1, false, err
	}
	if err := s.hashes.Add(s.allocator, hash); err != nil {
		s.elements.RemoveLast()
		return -1, false, err
	}

	index := s.elements.Len() - 1
	place(s.buckets.Slice(), s.hashes.Slice(), int64(index))
	return index, true, nil
}

// Locate returns the index of the element equivalent to queried.
func (s *Set[T]) Locate(queried T) (int, bool) {
	return s.View().Locate(queried)
}

// Contains reports whether an element equivalent to queried is present.
func (s *Set[T]) Contains(queried T) bool {
	_, ok := s.Locate(queried)
	return ok
}

// Len returns the number of elements.
func (s *Set[T]) Len() int { return s.elements.Len() }

// View returns a read-only view of the set. It is invalidated by Add, Clear
// and Destroy.
func (s *Set[T]) View() View[T] {
	return View[T]{
		elements: s.elements.Slice(),
		hashes:   s.hashes.Slice(),
		buckets:  s.buckets.Slice(),
		traits:   s.traits,
	}
}

// Clear removes every element and keeps the allocations.
func (s *Set[T]) Clear() {
	s.elements.RemoveAll()
	s.hashes.RemoveAll()
	fillEmpty(s.buckets.Slice())
}

// Destroy returns all memory to the allocator and empties the set.
func (s *Set[T]) Destroy() {
	s.buckets.Destroy(s.allocator)
	s.hashes.Destroy(s.allocator)
	s.elements.Destroy(s.allocator)
}

// ensureRoom grows the bucket array so that count elements keep the load
// factor at or below 3/4, then re-places every element.
func (s *Set[T]) ensureRoom(count int) error {
	n := s.buckets.Len()
	if count <= maxLoad(n) {
		return nil
	}

	grown := max(n, minBuckets/2)
	for {
		grown *= 2
		if count <= maxLoad(grown) {
			break
		}
	}
	if err := s.buckets.Resize(s.allocator, grown); err != nil {
		return err
	}

	buckets := s.buckets.Slice()
	fillEmpty(buckets)
	hashes := s.hashes.Slice()
	for i := range hashes {
		place(buckets, hashes, int64(i))
	}
	return nil
}

// maxLoad returns floor(3n/4) without overflowing.
func maxLoad(n int) int {
	return n/4*3 + n%4*3/4
}
