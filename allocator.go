package arena

import (
	"fmt"

	"github.com/pavanmanishd/arena/v2/internal/bytesx"
)

// MemoryAllocator is the contract every container allocates through.
//
// Reallocate unifies allocation, resizing and deallocation:
//   - len(old) == 0 means there is no live block; old is ignored.
//   - newSize == 0 deallocates old and returns a nil block.
//   - len(old) == 0 and newSize > 0 allocates newSize bytes aligned to alignment.
//   - otherwise old is resized. If the block moves, the first
//     min(len(old), newSize) bytes are preserved.
//
// Returned blocks have len == cap == newSize. Contents of newly allocated
// bytes are unspecified. Alignment must be positive.
//
// A MemoryAllocator obtained from a concrete allocator is a reference to it
// and must not outlive it.
type MemoryAllocator interface {
	Reallocate(old []byte, newSize, alignment int) ([]byte, error)
}

// Allocate returns a fresh block of size bytes aligned to alignment.
func Allocate(a MemoryAllocator, size, alignment int) ([]byte, error) {
	return a.Reallocate(nil, size, alignment)
}

// Reallocate resizes old to newSize bytes. See MemoryAllocator.
func Reallocate(a MemoryAllocator, old []byte, newSize, alignment int) ([]byte, error) {
	return a.Reallocate(old, newSize, alignment)
}

// Deallocate returns old to a. An allocator must always be able to shrink a
// block to nothing, so a failure here panics.
func Deallocate(a MemoryAllocator, old []byte, alignment int) {
	if len(old) == 0 {
		return
	}
	if _, err := a.Reallocate(old, 0, alignment); err != nil {
		panic(fmt.Sprintf("arena: deallocate %d bytes: %v", len(old), err))
	}
}

func checkRequest(newSize, alignment int) {
	if newSize < 0 {
		panic(fmt.Sprintf("arena: negative size %d", newSize))
	}
	if !bytesx.IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", alignment))
	}
}
