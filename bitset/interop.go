package bitset

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/kwertop/gobitset/internal/util"
)

// ToBitsAndBlooms converts the bitset to a github.com/bits-and-blooms/bitset
// value of the same logical size, for callers interoperating with that
// library's ecosystem.
func ToBitsAndBlooms[W Word](b *BitSet[W]) *bitset.BitSet {
	wb := bitsPerWord[W]()
	perWord := 64 / wb
	data := make([]uint64, (uint(len(b.words))+perWord-1)/perWord)
	for i, w := range b.words {
		data[uint(i)/perWord] |= uint64(w) << ((uint(i) % perWord) * wb)
	}
	return bitset.From(data[:(b.size+63)/64])
}

// FromBitsAndBlooms builds a 64-bit-word bitset of _size_ bits from the
// low bits of _set_. Bits of _set_ at or past _size_ are dropped.
func FromBitsAndBlooms(size uint, set *bitset.BitSet) *BitSet[uint64] {
	b := New[uint64](size)
	data := set.Bytes()
	n := util.Min(uint(len(data)), uint(len(b.words)))
	copy(b.words, data[:n])
	if len(b.words) > 0 {
		b.words[len(b.words)-1] &= b.topMask
	}
	return b
}
