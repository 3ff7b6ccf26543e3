package arena

// ArrayOwner owns a fixed-length array of T allocated from a MemoryAllocator.
// The allocator is passed to every call that changes the allocation and must
// be the same each time. The zero value owns nothing.
type ArrayOwner[T any] struct {
	items []T
}

// NewArrayOwner allocates length uninitialized elements from a.
func NewArrayOwner[T any](a MemoryAllocator, length int) (ArrayOwner[T], error) {
	items, err := MakeSlice[T](a, length)
	if err != nil {
		return ArrayOwner[T]{}, err
	}
	return ArrayOwner[T]{items: items}, nil
}

// Resize changes the length to length, preserving the leading elements. On
// error the array is unchanged.
func (o *ArrayOwner[T]) Resize(a MemoryAllocator, length int) error {
	items, err := ResizeSlice[T](a, o.items, length)
	if err != nil {
		return err
	}
	o.items = items
	return nil
}

// Destroy returns the array to a.
func (o *ArrayOwner[T]) Destroy(a MemoryAllocator) {
	FreeSlice[T](a, o.items)
	o.items = nil
}

// IsNull reports whether nothing is owned.
func (o ArrayOwner[T]) IsNull() bool { return o.items == nil }

// Len returns the number of elements.
func (o ArrayOwner[T]) Len() int { return len(o.items) }

// Get returns the element at index.
func (o ArrayOwner[T]) Get(index int) *T { return &o.items[index] }

// Slice returns the elements. It is invalidated by Resize and Destroy.
func (o ArrayOwner[T]) Slice() []T { return o.items }
