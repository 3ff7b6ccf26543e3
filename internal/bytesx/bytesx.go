// Package bytesx holds the overflow-checked size arithmetic shared by the
// allocators and containers.
package bytesx

import (
	"fmt"
	"math"
	"math/bits"
)

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignUp rounds n up to the next multiple of alignment. The second result is
// false if the rounded value does not fit in an int.
func AlignUp(n, alignment int) (int, bool) {
	if alignment <= 0 {
		panic(fmt.Sprintf("bytesx: non-positive alignment %d", alignment))
	}
	rem := n % alignment
	if rem == 0 {
		return n, true
	}
	pad := alignment - rem
	if n > math.MaxInt-pad {
		return 0, false
	}
	return n + pad, true
}

// Padding returns the number of bytes needed to move addr up to a multiple
// of alignment.
func Padding(addr uintptr, alignment int) int {
	rem := addr % uintptr(alignment)
	if rem == 0 {
		return 0
	}
	return alignment - int(rem)
}

// MulSize returns count*size, or false if the product overflows an int.
func MulSize(count, size int) (int, bool) {
	if count < 0 || size < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(count), uint64(size))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// GrowCapacity returns a capacity that holds load elements plus reserved more.
// It returns capacity unchanged when that already suffices and otherwise at
// least doubles it. Panics if load+reserved overflows.
func GrowCapacity(capacity, load, reserved int) int {
	if capacity < 0 || load < 0 || load > capacity || reserved < 0 {
		panic(fmt.Sprintf("bytesx: invalid growth capacity=%d load=%d reserved=%d", capacity, load, reserved))
	}
	if reserved > math.MaxInt-load {
		panic(fmt.Sprintf("bytesx: capacity overflow load=%d reserved=%d", load, reserved))
	}
	required := load + reserved
	if required <= capacity {
		return capacity
	}

	amortized := math.MaxInt
	if capacity <= math.MaxInt/2 {
		amortized = capacity * 2
	}
	if required < amortized {
		return amortized
	}
	return required
}
