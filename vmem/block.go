// Package vmem manages a single reservation of virtual address space whose
// pages are committed and decommitted lazily at the tail.
//
// A Block reserves its full capacity up front but only backs the first Load()
// bytes with memory. Bytes past the load are inaccessible until committed.
//
// Blocks are not safe for concurrent use.
package vmem

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/pavanmanishd/arena/v2/internal/bytesx"
)

// Block is a reserved region of address space with a committed prefix.
type Block struct {
	region []byte // whole reservation, len == capacity
	load   int    // committed prefix of region
}

// Granularity returns the unit that capacities, commits and decommits are
// rounded to on this platform.
func Granularity() int {
	return granularity()
}

// New reserves address space for at least capacity bytes. Capacity is rounded
// up to the allocation granularity; zero reserves a single granule. Nothing is
// committed until Commit is called.
func New(capacity int) (*Block, error) {
	if capacity < 0 {
		panic(fmt.Sprintf("vmem: negative capacity %d", capacity))
	}
	if capacity == 0 {
		capacity = 1
	}

	size, ok := bytesx.AlignUp(capacity, granularity())
	if !ok {
		return nil, errors.Errorf("vmem: capacity %d overflows when rounded to granularity", capacity)
	}

	region, err := reserveRegion(size)
	if err != nil {
		return nil, errors.Wrapf(err, "vmem: reserve %d bytes", size)
	}
	return &Block{region: region}, nil
}

// Destroy releases the whole reservation. Every slice obtained from the block
// becomes invalid. A failure here means the address space bookkeeping is
// broken; callers are expected to treat it as fatal.
func (b *Block) Destroy() error {
	b.panicIfDestroyed()

	err := releaseRegion(b.region)
	b.region = nil
	b.load = 0
	if err != nil {
		return errors.Wrap(err, "vmem: release reservation")
	}
	return nil
}

// Address returns the base address of the reservation.
func (b *Block) Address() uintptr {
	b.panicIfDestroyed()
	return uintptr(unsafe.Pointer(unsafe.SliceData(b.region)))
}

// Load returns the number of committed bytes.
func (b *Block) Load() int {
	return b.load
}

// Capacity returns the number of reserved bytes.
func (b *Block) Capacity() int {
	return len(b.region)
}

// Bytes returns the committed prefix of the reservation.
func (b *Block) Bytes() []byte {
	b.panicIfDestroyed()
	return b.region[:b.load:b.load]
}

// Commit backs amount more bytes at the tail with memory, rounded up to the
// granularity. It fails without committing anything if the result would
// exceed the capacity.
func (b *Block) Commit(amount int) error {
	if amount < 0 {
		panic(fmt.Sprintf("vmem: negative commit %d", amount))
	}
	b.panicIfDestroyed()

	if b.load > len(b.region)-amount {
		return errors.Wrapf(ErrCapacityExceeded, "load=%d amount=%d capacity=%d", b.load, amount, len(b.region))
	}

	// Capacity is granule aligned, so rounding cannot pass it.
	newLoad, _ := bytesx.AlignUp(b.load+amount, granularity())
	if newLoad == b.load {
		return nil
	}
	if err := commitRegion(b.region[b.load:newLoad]); err != nil {
		return errors.Wrapf(err, "vmem: commit %d bytes", newLoad-b.load)
	}
	b.load = newLoad
	return nil
}

// Decommit returns up to amount bytes at the tail to the system. The new load
// is rounded up to the granularity, so less than amount may be decommitted.
func (b *Block) Decommit(amount int) error {
	if amount < 0 || amount > b.load {
		panic(fmt.Sprintf("vmem: decommit %d out of range [0, %d]", amount, b.load))
	}
	b.panicIfDestroyed()

	newLoad, _ := bytesx.AlignUp(b.load-amount, granularity())
	if newLoad == b.load {
		return nil
	}
	if err := decommitRegion(b.region[newLoad:b.load]); err != nil {
		return errors.Wrapf(err, "vmem: decommit %d bytes", b.load-newLoad)
	}
	b.load = newLoad
	return nil
}

func (b *Block) panicIfDestroyed() {
	if b.region == nil {
		panic("vmem: use after Destroy()")
	}
}
