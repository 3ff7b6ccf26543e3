// Package arena implements manual memory management on top of a lazily
// committed virtual memory reservation.
//
// # Overview
//
// A LinearAllocator reserves a large range of address space up front and
// commits pages only as its bump cursor reaches them. It is useful for:
//
//   - Scratch memory that is freed all at once by rolling back a checkpoint
//   - Growable arrays whose tail can resize in place
//   - Large pointer-free tables kept out of the garbage collector's view
//
// # Allocator contract
//
// Every container allocates through MemoryAllocator, whose single method
// Reallocate covers allocation, resizing and deallocation:
//
//	a, err := arena.NewLinear(1 << 30) // reserve 1 GiB, commit nothing
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	buf, err := arena.Allocate(a, 1024, 8)
//	buf, err = arena.Reallocate(a, buf, 4096, 8) // tail block: grows in place
//	arena.Deallocate(a, buf, 8)                  // tail block: cursor retracts
//
// HeapAllocator implements the same contract on the Go heap.
//
// # Rollback
//
//	checkpoint := a.Cursor()
//	// ... allocate freely ...
//	a.ResetTo(checkpoint) // everything allocated since is gone
//
// # Typed values
//
// New, MakeSlice, ResizeSlice, ArrayOwner and ArrayList place typed values
// in blocks aligned to unsafe.Alignof(T):
//
//	var list arena.ArrayList[int64]
//	for i := range 1000 {
//		if err := list.Add(a, int64(i)); err != nil {
//			return err
//		}
//	}
//
// Types stored in LinearAllocator memory must not contain Go pointers.
//
// # Thread Safety
//
// LinearAllocator is not goroutine-safe. Locked wraps one with a mutex.
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("in use: %d of %d committed bytes\n", m.InUse, m.Committed)
//
// NewMetrics exports the same statistics to prometheus; see WithMetrics.
package arena
