package bytesx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, alignment int
		want         int
		ok           bool
	}{
		{0, 8, 0, true},
		{1, 8, 8, true},
		{8, 8, 8, true},
		{9, 8, 16, true},
		{1000, 4096, 4096, true},
		{7, 3, 9, true},
		{math.MaxInt, 2, 0, false},
		{math.MaxInt - 1, 2, math.MaxInt - 1, true},
	}
	for _, tt := range tests {
		got, ok := AlignUp(tt.n, tt.alignment)
		require.Equal(t, tt.ok, ok, "AlignUp(%d, %d)", tt.n, tt.alignment)
		if ok {
			require.Equal(t, tt.want, got, "AlignUp(%d, %d)", tt.n, tt.alignment)
		}
	}

	require.Panics(t, func() { AlignUp(1, 0) })
}

func TestPadding(t *testing.T) {
	require.Equal(t, 0, Padding(64, 64))
	require.Equal(t, 63, Padding(65, 64))
	require.Equal(t, 0, Padding(17, 1))
	require.Equal(t, 7, Padding(1, 8))
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 8, 64, 4096, 1 << 62} {
		require.True(t, IsPowerOfTwo(n), n)
	}
	for _, n := range []int{0, -1, -8, 3, 12, 4095} {
		require.False(t, IsPowerOfTwo(n), n)
	}
}

func TestMulSize(t *testing.T) {
	got, ok := MulSize(1024, 8)
	require.True(t, ok)
	require.Equal(t, 8192, got)

	_, ok = MulSize(math.MaxInt/2+1, 2)
	require.False(t, ok)

	_, ok = MulSize(-1, 8)
	require.False(t, ok)

	got, ok = MulSize(0, math.MaxInt)
	require.True(t, ok)
	require.Equal(t, 0, got)
}

func TestGrowCapacity(t *testing.T) {
	tests := []struct {
		name                     string
		capacity, load, reserved int
		want                     int
	}{
		{"fits", 8, 4, 4, 8},
		{"doubles", 8, 8, 1, 16},
		{"required beats doubling", 4, 4, 100, 104},
		{"from empty", 0, 0, 1, 1},
		{"nothing reserved", 0, 0, 0, 0},
		{"saturates", math.MaxInt/2 + 1, math.MaxInt / 2, math.MaxInt/2 + 1, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GrowCapacity(tt.capacity, tt.load, tt.reserved))
		})
	}

	require.Panics(t, func() { GrowCapacity(10, 10, math.MaxInt) })
	require.Panics(t, func() { GrowCapacity(4, 5, 1) })
}
