package arena

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/pavanmanishd/arena/v2/internal/bytesx"
	"github.com/pavanmanishd/arena/v2/vmem"
)

// LinearAllocator is a bump allocator over one lazily committed virtual
// memory reservation. Blocks are handed out at an increasing cursor; pages
// are committed only when the cursor reaches them. The most recently
// allocated block can be resized in place, and ResetTo rolls the cursor back
// to a checkpoint, freeing everything allocated after it at once.
//
// Not goroutine-safe. Use Locked for shared access.
//
// Blocks are ordinary []byte slices into the reservation. They stay valid
// until the cursor is rolled back past them or Release is called; touching
// them afterwards faults or reads stale data. Values stored in blocks must
// not contain Go pointers, as the garbage collector does not scan them.
type LinearAllocator struct {
	block  *vmem.Block
	cursor int

	logger         log.Logger
	metrics        *Metrics
	fatal          FatalHandler
	releaseOnReset bool

	stats counters
}

type counters struct {
	allocations    uint64
	inPlaceResizes uint64
	moves          uint64
	leaked         uint64
	commitFailures uint64
}

var _ MemoryAllocator = (*LinearAllocator)(nil)

// NewLinear reserves capacity bytes of address space, rounded up to the
// allocation granularity, and returns an allocator with an empty cursor.
// Nothing is committed yet.
func NewLinear(capacity int, opts ...Option) (*LinearAllocator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	block, err := vmem.New(capacity)
	if err != nil {
		return nil, errors.Wrapf(err, "create linear allocator of %d bytes", capacity)
	}

	a := &LinearAllocator{
		block:          block,
		logger:         o.logger,
		metrics:        o.metrics,
		fatal:          o.fatal,
		releaseOnReset: o.releaseOnReset,
	}
	a.metrics.observe(a)
	level.Debug(a.logger).Log("msg", "reserved address space", "capacity", block.Capacity())
	return a, nil
}

// Allocator returns a as a MemoryAllocator. The result must not outlive a.
func (a *LinearAllocator) Allocator() MemoryAllocator {
	return a
}

// Reallocate implements MemoryAllocator.
//
// Only the block ending at the cursor gives memory back: deallocating or
// shrinking it retracts the cursor, and growing it extends it in place.
// Shrinking any other block keeps it where it is; growing it moves it and the
// old bytes stay unusable until a rollback.
func (a *LinearAllocator) Reallocate(old []byte, newSize, alignment int) ([]byte, error) {
	a.panicIfReleased()
	checkRequest(newSize, alignment)

	oldSize := len(old)
	if oldSize == 0 {
		if newSize == 0 {
			return nil, nil
		}
		return a.allocate(newSize, alignment)
	}

	offset := a.offsetOf(old)
	last := offset+oldSize == a.cursor

	if newSize == 0 {
		if last {
			a.setCursor(offset)
		} else {
			a.leak(oldSize)
		}
		return nil, nil
	}

	if bytesx.Padding(a.block.Address()+uintptr(offset), alignment) != 0 {
		return a.move(old, newSize, alignment)
	}

	if last {
		if newSize > oldSize {
			if _, err := a.bump(newSize-oldSize, 1); err != nil {
				return nil, err
			}
		} else {
			a.setCursor(offset + newSize)
		}
		a.stats.inPlaceResizes++
		a.metrics.inPlaceResize()
		return a.slice(offset, newSize), nil
	}

	if newSize <= oldSize {
		a.leak(oldSize - newSize)
		return old[:newSize:newSize], nil
	}
	return a.move(old, newSize, alignment)
}

// Cursor returns the current bump offset. Pass it to ResetTo to free every
// block allocated after this point.
func (a *LinearAllocator) Cursor() int {
	a.panicIfReleased()
	return a.cursor
}

// ResetTo moves the cursor to a value previously returned by Cursor. Blocks
// at or beyond it become invalid. Committed pages stay committed, and any
// cursor within them is a valid checkpoint.
func (a *LinearAllocator) ResetTo(cursor int) {
	a.panicIfReleased()
	if load := a.block.Load(); cursor < 0 || cursor > load {
		panic(fmt.Sprintf("arena: checkpoint %d outside [0, %d]", cursor, load))
	}
	a.setCursor(cursor)
}

// Reset frees every block. With WithReleaseOnReset the committed pages are
// also returned to the operating system.
func (a *LinearAllocator) Reset() {
	a.ResetTo(0)
	if a.releaseOnReset {
		if err := a.ReleaseUnused(); err != nil {
			level.Warn(a.logger).Log("msg", "decommit on reset failed", "err", err)
		}
	}
}

// ReleaseUnused decommits the pages past the cursor.
func (a *LinearAllocator) ReleaseUnused() error {
	a.panicIfReleased()
	unused := a.block.Load() - a.cursor
	if unused == 0 {
		return nil
	}
	if err := a.block.Decommit(unused); err != nil {
		return errors.Wrap(err, "release unused pages")
	}
	level.Debug(a.logger).Log("msg", "decommitted pages", "committed", a.block.Load(), "cursor", a.cursor)
	a.metrics.observe(a)
	return nil
}

// Release returns the whole reservation to the operating system. Every block
// becomes invalid and further use of a panics.
func (a *LinearAllocator) Release() {
	a.panicIfReleased()
	if err := a.block.Destroy(); err != nil {
		a.fatal(errors.Wrap(err, "release linear allocator"))
	}
	a.block = nil
	a.cursor = 0
	level.Debug(a.logger).Log("msg", "released address space")
}

func (a *LinearAllocator) allocate(size, alignment int) ([]byte, error) {
	offset, err := a.bump(size, alignment)
	if err != nil {
		return nil, err
	}
	a.stats.allocations++
	a.metrics.allocation()
	return a.slice(offset, size), nil
}

func (a *LinearAllocator) move(old []byte, newSize, alignment int) ([]byte, error) {
	moved, err := a.allocate(newSize, alignment)
	if err != nil {
		return nil, err
	}
	copy(moved, old)
	a.stats.moves++
	a.metrics.move()
	a.leak(len(old))
	return moved, nil
}

// bump advances the cursor past size bytes aligned to alignment, committing
// pages as needed, and returns the offset of the first byte.
func (a *LinearAllocator) bump(size, alignment int) (int, error) {
	padding := bytesx.Padding(a.block.Address()+uintptr(a.cursor), alignment)
	if size > math.MaxInt-padding || size+padding > math.MaxInt-a.cursor {
		err := errors.Wrapf(ErrOverflow, "cursor %d + padding %d + size %d", a.cursor, padding, size)
		a.fatal(err)
		return 0, err
	}
	amount := padding + size

	if shortfall := a.cursor + amount - a.block.Load(); shortfall > 0 {
		if err := a.block.Commit(shortfall); err != nil {
			a.stats.commitFailures++
			a.metrics.commitFailure()
			level.Warn(a.logger).Log("msg", "commit failed", "size", size, "alignment", alignment, "cursor", a.cursor, "err", err)
			return 0, &OutOfMemoryError{Size: size, Alignment: alignment, Err: err}
		}
		level.Debug(a.logger).Log("msg", "committed pages", "committed", a.block.Load(), "capacity", a.block.Capacity())
	}

	offset := a.cursor + padding
	a.setCursor(a.cursor + amount)
	return offset, nil
}

func (a *LinearAllocator) setCursor(cursor int) {
	a.cursor = cursor
	a.metrics.observe(a)
}

func (a *LinearAllocator) leak(n int) {
	a.stats.leaked += uint64(n)
	a.metrics.leak(n)
}

func (a *LinearAllocator) slice(offset, size int) []byte {
	return a.block.Bytes()[offset : offset+size : offset+size]
}

// offsetOf returns where b starts in the reservation. It panics if b is not a
// live block of a.
func (a *LinearAllocator) offsetOf(b []byte) int {
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	base := a.block.Address()
	if p < base || p-base > uintptr(a.cursor) || int(p-base) > a.cursor-len(b) {
		panic(fmt.Sprintf("arena: block %#x of %d bytes is not live in this allocator", p, len(b)))
	}
	return int(p - base)
}

func (a *LinearAllocator) panicIfReleased() {
	if a.block == nil {
		panic("arena: use after Release()")
	}
}
