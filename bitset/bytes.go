package bitset

// Bytes returns the backing words serialized as little-endian bytes, lowest
// word first. The slack bytes past Size() are included and are always zero.
func (b *BitSet[W]) Bytes() []byte {
	wb := bitsPerWord[W]()
	out := make([]byte, 0, uint(len(b.words))*wb/8)
	for _, w := range b.words {
		for s := uint(0); s < wb; s += 8 {
			out = append(out, byte(uint64(w)>>s))
		}
	}
	return out
}

// FromBytes rebuilds a bitset of _size_ bits from little-endian bytes as
// produced by Bytes. Missing trailing bytes read as zero; bits past _size_
// are masked off.
func FromBytes[W Word](size uint, data []byte) (*BitSet[W], error) {
	b := New[W](size)
	wb := bitsPerWord[W]()
	capacity := uint(len(b.words)) * wb / 8
	if uint(len(data)) > capacity {
		return nil, ErrSizeMismatch
	}
	for i, c := range data {
		word := uint(i) * 8 / wb
		shift := (uint(i) * 8) % wb
		b.words[word] |= W(c) << shift
	}
	if len(b.words) > 0 {
		b.words[len(b.words)-1] &= b.topMask
	}
	return b, nil
}
