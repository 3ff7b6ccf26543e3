package arena

import (
	"fmt"
	"unsafe"

	"github.com/pavanmanishd/arena/v2/internal/bytesx"
)

// The helpers below place typed values in blocks of a MemoryAllocator,
// aligned to unsafe.Alignof(T). The linear allocator's memory is not scanned
// by the garbage collector, so T must not contain pointers, slices, strings,
// maps, channels, interfaces or funcs when backed by it.

// New returns a pointer to a zeroed T allocated from a.
func New[T any](a MemoryAllocator) (*T, error) {
	size, align := layout[T]()
	if size == 0 {
		return new(T), nil
	}
	b, err := a.Reallocate(nil, size, align)
	if err != nil {
		return nil, err
	}
	clear(b)
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// Free returns the memory of p, obtained from New, to a.
func Free[T any](a MemoryAllocator, p *T) {
	size, align := layout[T]()
	if p == nil || size == 0 {
		return
	}
	Deallocate(a, unsafe.Slice((*byte)(unsafe.Pointer(p)), size), align)
}

// MakeSlice allocates n elements of type T from a. The elements are not
// initialized. Returns nil if n == 0.
func MakeSlice[T any](a MemoryAllocator, n int) ([]T, error) {
	return ResizeSlice[T](a, nil, n)
}

// MakeSliceZeroed allocates n zeroed elements of type T from a.
func MakeSliceZeroed[T any](a MemoryAllocator, n int) ([]T, error) {
	s, err := MakeSlice[T](a, n)
	if err != nil {
		return nil, err
	}
	clear(s)
	return s, nil
}

// ResizeSlice resizes the block behind s to n elements and returns a slice of
// length and capacity n. s must be nil or a whole block as returned by this
// package: its capacity is taken as the block size. The first min(cap(s), n)
// elements are preserved; the rest are not initialized. On error s is left
// untouched.
func ResizeSlice[T any](a MemoryAllocator, s []T, n int) ([]T, error) {
	if n < 0 {
		panic(fmt.Sprintf("arena: negative length %d", n))
	}
	size, align := layout[T]()
	if size == 0 {
		if n == 0 {
			return nil, nil
		}
		return make([]T, n), nil
	}

	total, ok := bytesx.MulSize(n, size)
	if !ok {
		panic(fmt.Sprintf("arena: %d elements of %d bytes overflow", n, size))
	}
	b, err := a.Reallocate(bytesOf(s), total, align)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// FreeSlice returns the block behind s to a.
func FreeSlice[T any](a MemoryAllocator, s []T) {
	size, align := layout[T]()
	if cap(s) == 0 || size == 0 {
		return
	}
	Deallocate(a, bytesOf(s), align)
}

func layout[T any]() (size, align int) {
	var zero T
	return int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero))
}

// bytesOf returns the whole block behind s, up to its capacity.
func bytesOf[T any](s []T) []byte {
	if cap(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), cap(s)*int(unsafe.Sizeof(zero)))
}
