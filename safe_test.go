package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLockedOperations(t *testing.T) {
	l := NewLocked(newLinear(t, 1<<16))

	b, err := Allocate(l, 100, 8)
	require.NoError(t, err)
	require.Len(t, b, 100)
	require.Equal(t, 100, l.Cursor())
	require.Equal(t, 100, l.Metrics().InUse)

	checkpoint := l.Cursor()
	_, err = Allocate(l, 50, 1)
	require.NoError(t, err)
	l.ResetTo(checkpoint)
	require.Equal(t, checkpoint, l.Cursor())

	l.Reset()
	require.Zero(t, l.Cursor())
	require.NoError(t, l.ReleaseUnused())
	require.Zero(t, l.Metrics().Committed)

	l.Release()
	require.Panics(t, func() { _, _ = Allocate(l, 100, 8) })
}

func TestLockedConcurrentAllocation(t *testing.T) {
	const (
		goroutines = 8
		perWorker  = 200
		size       = 24
	)
	l := NewLocked(newLinear(t, 1<<20))

	blocks := make([][][]byte, goroutines)
	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				b, err := Allocate(l, size, 8)
				if err != nil {
					t.Error(err)
					return
				}
				for i := range b {
					b[i] = byte(g)
				}
				blocks[g] = append(blocks[g], b)
			}
		}()
	}
	wg.Wait()

	// Every block still holds what its goroutine wrote, so none overlap.
	for g, bs := range blocks {
		require.Len(t, bs, perWorker)
		for _, b := range bs {
			for _, v := range b {
				require.Equal(t, byte(g), v)
			}
		}
	}
	require.Equal(t, goroutines*perWorker*size, l.Cursor())
	require.EqualValues(t, goroutines*perWorker, l.Metrics().Allocations)
}

func TestLockedSharedList(t *testing.T) {
	l := NewLocked(newLinear(t, 1<<20))

	var (
		mu   sync.Mutex
		list ArrayList[int64]
		wg   sync.WaitGroup
	)
	for g := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				mu.Lock()
				err := list.Add(l, int64(g*100+i))
				mu.Unlock()
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 400, list.Len())
	seen := make(map[int64]bool, 400)
	for _, v := range list.Slice() {
		seen[v] = true
	}
	require.Len(t, seen, 400)
}
