package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayListAdd(t *testing.T) {
	allocators(t, func(t *testing.T, a MemoryAllocator) {
		var l ArrayList[int64]
		require.True(t, l.IsEmpty())
		require.Nil(t, l.First())
		require.Nil(t, l.Last())

		for i := range 100 {
			require.NoError(t, l.Add(a, int64(i)))
		}
		require.Equal(t, 100, l.Len())
		require.GreaterOrEqual(t, l.Cap(), 100)
		require.Equal(t, l.Cap()-100, l.Unused())
		require.EqualValues(t, 0, *l.First())
		require.EqualValues(t, 99, *l.Last())
		for i, v := range l.Slice() {
			require.EqualValues(t, i, v)
		}

		l.Destroy(a)
		require.Zero(t, l.Len())
		require.Zero(t, l.Cap())
	})
}

func TestArrayListGrowsInPlaceOnLinear(t *testing.T) {
	a := newLinear(t, 1<<20)

	var l ArrayList[uint32]
	for i := range 1000 {
		require.NoError(t, l.Add(a, uint32(i)))
	}
	m := a.Metrics()
	require.Zero(t, m.Moves)
	require.NotZero(t, m.InPlaceResizes)
	require.Equal(t, l.Cap()*4, a.Cursor())

	l.Destroy(a)
	require.Zero(t, a.Cursor())
}

func TestArrayListReserve(t *testing.T) {
	allocators(t, func(t *testing.T, a MemoryAllocator) {
		var l ArrayList[int32]
		require.NoError(t, l.Reserve(a, 3))
		require.Equal(t, 3, l.Cap())
		require.Zero(t, l.Len())

		// Reserving what is already free changes nothing.
		require.NoError(t, l.Reserve(a, 2))
		require.Equal(t, 3, l.Cap())

		n := copy(l.Unreserved(), []int32{7, 8})
		l.Acknowledge(n)
		require.Equal(t, []int32{7, 8}, l.Slice())
		require.Equal(t, 1, l.Unused())
		require.Panics(t, func() { l.Acknowledge(2) })

		// Growth at least doubles.
		require.NoError(t, l.Reserve(a, 2))
		require.Equal(t, 6, l.Cap())
		require.Equal(t, []int32{7, 8}, l.Slice())

		require.NoError(t, l.Reserve(a, 100))
		require.Equal(t, 102, l.Cap())
	})
}

func TestArrayListInsert(t *testing.T) {
	allocators(t, func(t *testing.T, a MemoryAllocator) {
		var l ArrayList[int]
		require.NoError(t, l.AddAll(a, []int{1, 2, 5}))

		require.NoError(t, l.Insert(a, 0, 0))
		require.NoError(t, l.Insert(a, 4, 6))
		require.NoError(t, l.InsertAll(a, 3, []int{3, 4}))
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, l.Slice())

		require.NoError(t, l.InsertAll(a, l.Len(), []int{7, 8}))
		require.NoError(t, l.InsertAll(a, 0, nil))
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, l.Slice())

		require.Panics(t, func() { _ = l.Insert(a, -1, 0) })
		require.Panics(t, func() { _ = l.Insert(a, l.Len()+1, 0) })
	})
}

func TestArrayListRemove(t *testing.T) {
	tests := []struct {
		name     string
		remove   func(l *ArrayList[int]) int
		removed  int
		expected []int
	}{
		{"first", func(l *ArrayList[int]) int { return l.RemoveFirst() }, 0, []int{1, 2, 3, 4, 5}},
		{"last", func(l *ArrayList[int]) int { return l.RemoveLast() }, 5, []int{0, 1, 2, 3, 4}},
		{"middle", func(l *ArrayList[int]) int { return l.Remove(2) }, 2, []int{0, 1, 3, 4, 5}},
		{"unordered", func(l *ArrayList[int]) int { return l.RemoveUnordered(1) }, 1, []int{0, 5, 2, 3, 4}},
		{"unordered last", func(l *ArrayList[int]) int { return l.RemoveUnordered(5) }, 5, []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewHeapAllocator()
			var l ArrayList[int]
			require.NoError(t, l.AddAll(a, []int{0, 1, 2, 3, 4, 5}))

			require.Equal(t, tt.removed, tt.remove(&l))
			require.Equal(t, tt.expected, l.Slice())
		})
	}
}

func TestArrayListRemovePortion(t *testing.T) {
	a := NewHeapAllocator()
	var l ArrayList[int]
	require.NoError(t, l.AddAll(a, []int{0, 1, 2, 3, 4, 5}))

	l.RemovePortion(1, 3)
	require.Equal(t, []int{0, 3, 4, 5}, l.Slice())

	l.RemovePortion(2, 4)
	require.Equal(t, []int{0, 3}, l.Slice())

	l.RemovePortion(1, 1)
	require.Equal(t, []int{0, 3}, l.Slice())
	require.Panics(t, func() { l.RemovePortion(1, 3) })

	capacity := l.Cap()
	l.RemoveAll()
	require.True(t, l.IsEmpty())
	require.Equal(t, capacity, l.Cap())
}

func TestArrayListOutOfMemory(t *testing.T) {
	a := newLinear(t, 0)

	var l ArrayList[byte]
	require.NoError(t, l.Reserve(a, a.Capacity()))
	l.Acknowledge(a.Capacity())

	err := l.Add(a, 1)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, a.Capacity(), l.Len(), "a failed add leaves the list intact")
}
