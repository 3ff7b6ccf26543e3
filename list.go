package arena

import (
	"fmt"

	"github.com/pavanmanishd/arena/v2/internal/bytesx"
)

// ArrayList is a growable list of T backed by one block of a MemoryAllocator.
// The block holds Len initialized elements followed by Unused slots. The
// allocator is passed to every call that may allocate and must be the same
// each time. The zero value is an empty list.
//
// To append without copying through Add:
//  1. call Reserve for the slots needed,
//  2. write into Unreserved,
//  3. call Acknowledge with the number of slots written.
type ArrayList[T any] struct {
	items []T // len is the count, cap the allocated elements
}

// Len returns the number of elements.
func (l *ArrayList[T]) Len() int { return len(l.items) }

// Cap returns the number of allocated elements.
func (l *ArrayList[T]) Cap() int { return cap(l.items) }

// Unused returns the number of allocated but uninitialized slots.
func (l *ArrayList[T]) Unused() int { return cap(l.items) - len(l.items) }

// IsEmpty reports whether there are no elements.
func (l *ArrayList[T]) IsEmpty() bool { return len(l.items) == 0 }

// Slice returns the elements. It is invalidated by any call that allocates.
func (l *ArrayList[T]) Slice() []T { return l.items }

// Unreserved returns the uninitialized slots after the elements.
func (l *ArrayList[T]) Unreserved() []T { return l.items[len(l.items):cap(l.items)] }

// Get returns the element at index.
func (l *ArrayList[T]) Get(index int) *T { return &l.items[index] }

// First returns the first element, or nil if the list is empty.
func (l *ArrayList[T]) First() *T {
	if len(l.items) == 0 {
		return nil
	}
	return &l.items[0]
}

// Last returns the last element, or nil if the list is empty.
func (l *ArrayList[T]) Last() *T {
	if len(l.items) == 0 {
		return nil
	}
	return &l.items[len(l.items)-1]
}

// Reserve makes room for at least amount more elements, at least doubling the
// allocation when it grows. On error the list is unchanged.
func (l *ArrayList[T]) Reserve(a MemoryAllocator, amount int) error {
	capacity := bytesx.GrowCapacity(cap(l.items), len(l.items), amount)
	if capacity == cap(l.items) {
		return nil
	}
	count := len(l.items)
	items, err := ResizeSlice[T](a, l.items, capacity)
	if err != nil {
		return err
	}
	l.items = items[:count]
	return nil
}

// Acknowledge marks amount slots of Unreserved as initialized elements.
func (l *ArrayList[T]) Acknowledge(amount int) {
	if amount < 0 || amount > l.Unused() {
		panic(fmt.Sprintf("arena: acknowledge %d of %d unused slots", amount, l.Unused()))
	}
	l.items = l.items[:len(l.items)+amount]
}

// Add appends v.
func (l *ArrayList[T]) Add(a MemoryAllocator, v T) error {
	if err := l.Reserve(a, 1); err != nil {
		return err
	}
	l.items = append(l.items, v)
	return nil
}

// AddAll appends vs. vs must not alias the list.
func (l *ArrayList[T]) AddAll(a MemoryAllocator, vs []T) error {
	if err := l.Reserve(a, len(vs)); err != nil {
		return err
	}
	l.items = append(l.items, vs...)
	return nil
}

// Insert puts v at index, shifting later elements up. index may equal Len.
func (l *ArrayList[T]) Insert(a MemoryAllocator, index int, v T) error {
	l.checkPosition(index)
	if err := l.Reserve(a, 1); err != nil {
		return err
	}
	l.items = l.items[:len(l.items)+1]
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = v
	return nil
}

// InsertAll puts vs at index, shifting later elements up. index may equal
// Len. vs must not alias the list.
func (l *ArrayList[T]) InsertAll(a MemoryAllocator, index int, vs []T) error {
	l.checkPosition(index)
	if err := l.Reserve(a, len(vs)); err != nil {
		return err
	}
	l.items = l.items[:len(l.items)+len(vs)]
	copy(l.items[index+len(vs):], l.items[index:])
	copy(l.items[index:], vs)
	return nil
}

// Remove deletes and returns the element at index, keeping the order.
func (l *ArrayList[T]) Remove(index int) T {
	v := l.items[index]
	copy(l.items[index:], l.items[index+1:])
	l.items = l.items[:len(l.items)-1]
	return v
}

// RemoveFirst deletes and returns the first element.
func (l *ArrayList[T]) RemoveFirst() T { return l.Remove(0) }

// RemoveLast deletes and returns the last element.
func (l *ArrayList[T]) RemoveLast() T { return l.Remove(len(l.items) - 1) }

// RemoveUnordered deletes and returns the element at index, moving the last
// element into its place.
func (l *ArrayList[T]) RemoveUnordered(index int) T {
	v := l.items[index]
	last := len(l.items) - 1
	l.items[index] = l.items[last]
	l.items = l.items[:last]
	return v
}

// RemovePortion deletes the elements in [begin, end), keeping the order.
func (l *ArrayList[T]) RemovePortion(begin, end int) {
	if begin < 0 || begin > end || end > len(l.items) {
		panic(fmt.Sprintf("arena: portion [%d, %d) outside list of %d", begin, end, len(l.items)))
	}
	n := copy(l.items[begin:], l.items[end:])
	l.items = l.items[:begin+n]
}

// RemoveAll deletes every element and keeps the allocation.
func (l *ArrayList[T]) RemoveAll() {
	l.items = l.items[:0]
}

// Destroy returns the allocation to a and empties the list.
func (l *ArrayList[T]) Destroy(a MemoryAllocator) {
	FreeSlice[T](a, l.items)
	l.items = nil
}

func (l *ArrayList[T]) checkPosition(index int) {
	if index < 0 || index > len(l.items) {
		panic(fmt.Sprintf("arena: position %d outside list of %d", index, len(l.items)))
	}
}
