package grid

// BitWidth is the number of flags a Bitset can hold.
const BitWidth = 32

// Bitset is a set of up to 32 boolean tile properties packed into a uint32.
//
// Bit indices are masked to their low five bits, so an index outside [0,32)
// aliases onto a valid bit (33 reads bit 1, -1 reads bit 31). Callers are
// expected to stay in range; the mask only keeps a bad index from touching
// memory or panicking.
type Bitset uint32

// Get returns whether bit `index` is set.
func (b Bitset) Get(index int) bool {
	return b&mask(index) != 0
}

// Set returns a copy of b with bit `index` forced to value, other bits unchanged.
func (b Bitset) Set(index int, value bool) Bitset {
	if value {
		return b | mask(index)
	}
	return b &^ mask(index)
}

// Count returns the number of set bits.
func (b Bitset) Count() int {
	n := 0
	for x := uint32(b); x != 0; x &= x - 1 {
		n++
	}
	return n
}

func mask(index int) Bitset {
	return 1 << (uint(index) & (BitWidth - 1))
}
