package arena

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/pavanmanishd/arena/v2/internal/bytesx"
)

// HeapAllocator implements MemoryAllocator on the Go heap. Deallocation only
// drops the block; the garbage collector reclaims it once unreferenced. Like
// every MemoryAllocator block, the memory is a []byte and is not scanned for
// pointers.
type HeapAllocator struct{}

var _ MemoryAllocator = HeapAllocator{}

// NewHeapAllocator returns a HeapAllocator.
func NewHeapAllocator() HeapAllocator {
	return HeapAllocator{}
}

// Reallocate implements MemoryAllocator. Shrinking an aligned block keeps it
// in place; any other resize copies into a fresh block.
func (HeapAllocator) Reallocate(old []byte, newSize, alignment int) ([]byte, error) {
	checkRequest(newSize, alignment)
	if newSize == 0 {
		return nil, nil
	}
	if len(old) >= newSize && bytesx.Padding(addressOf(old), alignment) == 0 {
		return old[:newSize:newSize], nil
	}

	if newSize > math.MaxInt-(alignment-1) {
		return nil, errors.Wrapf(ErrOverflow, "heap block of %d bytes aligned to %d", newSize, alignment)
	}
	buf := make([]byte, newSize+alignment-1)
	shift := bytesx.Padding(addressOf(buf), alignment)
	block := buf[shift : shift+newSize : shift+newSize]
	copy(block, old)
	return block, nil
}

func addressOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
