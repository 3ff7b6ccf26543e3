// Package hashing provides the hash-combining state and the element traits
// consumed by the open-addressing sets in package hashset.
package hashing

// combineSeed is the golden-ratio derived constant mixed into every combine.
const combineSeed uint64 = 0x517cc1b727220a95

// Hasher folds hash values of sub-values into a running 64-bit hash. The zero
// value is a hasher with value 0.
type Hasher struct {
	value uint64
}

// Value returns the current hash.
func (h *Hasher) Value() uint64 {
	return h.value
}

// Combine mixes hash into the current value.
func (h *Hasher) Combine(hash uint64) {
	h.value ^= hash + combineSeed + (h.value << 6) + (h.value >> 2)
}

// Reset sets the value back to 0.
func (h *Hasher) Reset() {
	h.value = 0
}
