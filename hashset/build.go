package hashset

import (
	"fmt"

	"github.com/pavanmanishd/arena/v2/hashing"
)

// Build lays out distinct elements in a new table of bucketCount buckets on
// the Go heap and returns a view over it. bucketCount must exceed the number
// of elements unless there are none.
func Build[T any](traits hashing.Traits[T], elements []T, bucketCount int) View[T] {
	if len(elements) > 0 && bucketCount <= len(elements) {
		panic(fmt.Sprintf("hashset: %d buckets cannot hold %d elements", bucketCount, len(elements)))
	}

	hashes := make([]uint64, len(elements))
	for i := range elements {
		hashes[i] = hashing.Sum[T](traits, &elements[i])
	}

	buckets := make([]int64, bucketCount)
	fillEmpty(buckets)
	for i := range elements {
		place(buckets, hashes, int64(i))
	}
	return NewView(traits, elements, hashes, buckets)
}

// place inserts the element at index into buckets. An occupant whose probe
// length is strictly shorter than the carried element's is displaced and
// carried further; ties keep the occupant. buckets must have a free slot.
func place(buckets []int64, hashes []uint64, index int64) {
	n := int64(len(buckets))
	probe := int64(0)
	bucket := bucketIndex(hashes[index], 0, n)
	for {
		occupant := buckets[bucket]
		if occupant == Empty {
			buckets[bucket] = index
			return
		}

		if occupantProbe := probeLength(hashes[occupant], bucket, n); occupantProbe < probe {
			buckets[bucket] = index
			index, probe = occupant, occupantProbe
		}

		probe++
		bucket++
		if bucket == n {
			bucket = 0
		}
	}
}

func fillEmpty(buckets []int64) {
	for i := range buckets {
		buckets[i] = Empty
	}
}

// ProbeStats summarizes how far elements sit from their ideal buckets.
type ProbeStats struct {
	Max   int
	Total int
}

// Mean returns the average probe length over count elements.
func (st ProbeStats) Mean(count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(st.Total) / float64(count)
}

// ProbeStats walks the buckets and reports probe lengths.
func (v View[T]) ProbeStats() ProbeStats {
	var st ProbeStats
	n := int64(len(v.buckets))
	for bucket, index := range v.buckets {
		if index == Empty {
			continue
		}
		p := int(probeLength(v.hashes[index], int64(bucket), n))
		st.Total += p
		if p > st.Max {
			st.Max = p
		}
	}
	return st
}
