package arena

import (
	"sync"
)

// Locked is a mutex-protected wrapper around a LinearAllocator for sharing one
// arena between goroutines. All operations lock, so it is slower than the
// bare allocator. The wrapped allocator must not be used directly while the
// wrapper is shared.
type Locked struct {
	mu sync.Mutex
	a  *LinearAllocator
}

var _ MemoryAllocator = (*Locked)(nil)

// NewLocked wraps a.
func NewLocked(a *LinearAllocator) *Locked {
	return &Locked{a: a}
}

// Reallocate thread-safely implements MemoryAllocator.
func (l *Locked) Reallocate(old []byte, newSize, alignment int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Reallocate(old, newSize, alignment)
}

// Cursor thread-safely returns the current bump offset.
func (l *Locked) Cursor() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Cursor()
}

// ResetTo thread-safely rolls the cursor back to a checkpoint.
func (l *Locked) ResetTo(cursor int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.ResetTo(cursor)
}

// Reset thread-safely frees every block.
func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Reset()
}

// ReleaseUnused thread-safely decommits the pages past the cursor.
func (l *Locked) ReleaseUnused() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.ReleaseUnused()
}

// Release thread-safely returns the reservation to the operating system.
func (l *Locked) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Release()
}

// Metrics thread-safely returns a snapshot of allocator statistics.
func (l *Locked) Metrics() ArenaMetrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Metrics()
}
