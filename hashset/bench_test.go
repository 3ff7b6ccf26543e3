package hashset

import (
	"fmt"
	"testing"

	arena "github.com/pavanmanishd/arena/v2"
	"github.com/pavanmanishd/arena/v2/hashing"
)

func BenchmarkSetAdd(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 16} {
		b.Run(fmt.Sprintf("Linear_%d", n), func(b *testing.B) {
			a, err := arena.NewLinear(256 << 20)
			if err != nil {
				b.Skip(err)
			}
			defer a.Release()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				s := New[int64](a, hashing.Integer[int64]{})
				for k := range int64(n) {
					if _, _, err := s.Add(k); err != nil {
						b.Fatal(err)
					}
				}
				a.Reset()
			}
		})

		b.Run(fmt.Sprintf("Builtin_%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m := make(map[int64]int)
				for k := range int64(n) {
					if _, ok := m[k]; !ok {
						m[k] = len(m)
					}
				}
			}
		})
	}
}

func BenchmarkViewLocate(b *testing.B) {
	elements := make([]int64, 1<<16)
	for i := range elements {
		elements[i] = int64(i) * 31
	}
	v := Build[int64](hashing.Integer[int64]{}, elements, 1<<17)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = v.Locate(int64(i&(1<<16-1)) * 31)
	}
}
