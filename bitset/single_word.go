package bitset

import "math/bits"

// singleWord is the strategy for bitsets whose bits all fit in one storage
// word. Every routine is a direct shift or mask on words[0].
type singleWord[W Word] struct{}

func (singleWord[W]) test(words []W, pos uint) bool {
	return words[0]&(W(1)<<pos) != 0
}

func (singleWord[W]) setPosition(words []W, pos uint, value bool) {
	mask := W(1) << pos
	if value {
		words[0] |= mask
	} else {
		words[0] &= ^mask
	}
}

func (singleWord[W]) resetPosition(words []W, pos uint) {
	words[0] &= ^(W(1) << pos)
}

func (singleWord[W]) flipPosition(words []W, pos uint) {
	words[0] ^= W(1) << pos
}

func (singleWord[W]) setAll(words []W, topMask W) {
	words[0] = allSet[W]() & topMask
}

func (singleWord[W]) resetAll(words []W) {
	words[0] = 0
}

func (singleWord[W]) flipAll(words []W, topMask W) {
	words[0] = ^words[0] & topMask
}

func (singleWord[W]) count(words []W) uint {
	return uint(bits.OnesCount64(uint64(words[0])))
}

func (singleWord[W]) all(words []W, topMask W) bool {
	return words[0]&topMask == topMask
}

func (singleWord[W]) any(words []W) bool {
	return words[0] != 0
}

func (singleWord[W]) none(words []W) bool {
	return words[0] == 0
}

// Masked reductions. Only the single-word strategy provides these; the
// facade rejects masked queries on multi-word storage.

func (singleWord[W]) allMask(words []W, topMask, mask W) bool {
	return words[0]&topMask&mask == mask
}

func (singleWord[W]) anyMask(words []W, mask W) bool {
	return words[0]&mask != 0
}

func (singleWord[W]) noneMask(words []W, mask W) bool {
	return words[0]&mask == 0
}

func (singleWord[W]) extract(words []W, pos, length uint) uint64 {
	return (uint64(words[0]) >> pos) & lsbMask64(length)
}

func (singleWord[W]) shiftLeft(words []W, activeBits, shift uint, topMask W) {
	if shift >= activeBits {
		words[0] = 0
	} else {
		words[0] = (words[0] << shift) & topMask
	}
}

func (singleWord[W]) shiftRight(words []W, activeBits, shift uint, topMask W) {
	if shift >= activeBits {
		words[0] = 0
	} else {
		words[0] = (words[0] >> shift) & topMask
	}
}

func (singleWord[W]) findNext(words []W, activeBits uint, state bool, pos uint) (uint, bool) {
	if pos >= activeBits {
		return 0, false
	}
	// Nothing to scan for when the whole word is already in the opposite
	// state.
	if state && words[0] == 0 {
		return 0, false
	}
	if !state && words[0] == allSet[W]() {
		return 0, false
	}
	mask := W(1) << pos
	for bit := pos; bit < activeBits; bit++ {
		if (words[0]&mask != 0) == state {
			return bit, true
		}
		mask <<= 1
	}
	return 0, false
}

func (singleWord[W]) fromValue(words []W, value uint64, topMask W) {
	words[0] = W(value) & topMask
}

// fromString resets the word, then walks the text from its first character,
// which maps to the highest consumed bit position. Characters beyond the
// active bit count are ignored, as are bits beyond the string's length.
func (singleWord[W]) fromString(words []W, activeBits uint, text string) {
	words[0] = 0
	n := uint(len(text))
	if activeBits < n {
		n = activeBits
	}
	mask := W(0)
	if n > 0 {
		mask = W(1) << (n - 1)
	}
	for i := uint(0); i < n; i++ {
		if text[i] == '1' {
			words[0] |= mask
		}
		mask >>= 1
	}
}

func (singleWord[W]) value(words []W) uint64 {
	return uint64(words[0])
}
