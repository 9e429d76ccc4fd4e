package bitset

import "math/bits"

// multiWord is the strategy for bitsets spanning an array of storage words.
// A bit position translates to (pos / wordBits, pos % wordBits); the routines
// below carry values across those word boundaries.
type multiWord[W Word] struct{}

func (multiWord[W]) locate(pos uint) (index uint, bit W) {
	wb := bitsPerWord[W]()
	return pos / wb, W(1) << (pos % wb)
}

func (m multiWord[W]) test(words []W, pos uint) bool {
	index, bit := m.locate(pos)
	return words[index]&bit != 0
}

func (m multiWord[W]) setPosition(words []W, pos uint, value bool) {
	index, bit := m.locate(pos)
	if value {
		words[index] |= bit
	} else {
		words[index] &= ^bit
	}
}

func (m multiWord[W]) resetPosition(words []W, pos uint) {
	index, bit := m.locate(pos)
	words[index] &= ^bit
}

func (m multiWord[W]) flipPosition(words []W, pos uint) {
	index, bit := m.locate(pos)
	words[index] ^= bit
}

func (multiWord[W]) setAll(words []W, topMask W) {
	if len(words) == 0 {
		return
	}
	for i := 0; i < len(words)-1; i++ {
		words[i] = allSet[W]()
	}
	words[len(words)-1] = allSet[W]() & topMask
}

func (multiWord[W]) resetAll(words []W) {
	for i := range words {
		words[i] = 0
	}
}

func (multiWord[W]) flipAll(words []W, topMask W) {
	if len(words) == 0 {
		return
	}
	for i := range words {
		words[i] = ^words[i]
	}
	words[len(words)-1] &= topMask
}

func (multiWord[W]) count(words []W) uint {
	total := uint(0)
	for _, w := range words {
		total += uint(bits.OnesCount64(uint64(w)))
	}
	return total
}

// all checks every word against all-ones, applying the top mask only on the
// last word.
func (multiWord[W]) all(words []W, topMask W) bool {
	if len(words) == 0 {
		return true
	}
	for i := 0; i < len(words)-1; i++ {
		if words[i] != allSet[W]() {
			return false
		}
	}
	return words[len(words)-1]&topMask == topMask
}

func (multiWord[W]) any(words []W) bool {
	for _, w := range words {
		if w != 0 {
			return true
		}
	}
	return false
}

func (multiWord[W]) none(words []W) bool {
	for _, w := range words {
		if w != 0 {
			return false
		}
	}
	return true
}

// extract assembles a length-bit field starting at pos, least significant
// bit first. When the field lives in one word this is a plain shift and
// mask; otherwise the words are walked from the one holding the field's most
// significant bit down to the one holding its least, accumulating partial
// high bits, whole words, then partial low bits.
func (m multiWord[W]) extract(words []W, pos, length uint) uint64 {
	wb := bitsPerWord[W]()
	msbIndex := (pos + length - 1) / wb
	lsbIndex := pos / wb

	if msbIndex == lsbIndex {
		return (uint64(words[msbIndex]) >> (pos % wb)) & lsbMask64(length)
	}

	activeBitsInMsb := (pos + length) - msbIndex*wb
	return m.extractSpanning(words, msbIndex, activeBitsInMsb, length)
}

func (multiWord[W]) extractSpanning(words []W, index, activeBitsInMsb, length uint) uint64 {
	wb := bitsPerWord[W]()
	var value uint64

	// The most significant word, if only partially covered.
	if activeBitsInMsb < wb {
		value = uint64(words[index]) & lsbMask64(activeBitsInMsb)
		length -= activeBitsInMsb
		if length >= wb {
			value <<= wb
		}
		index--
	}

	// Whole words.
	for length >= wb {
		value |= uint64(words[index])
		length -= wb
		if length >= wb {
			value <<= wb
		}
		index--
	}

	// The least significant word, if only partially covered.
	if length != 0 {
		value <<= length
		value |= (uint64(words[index]) >> (wb - length)) & lsbMask64(length)
	}

	return value
}

// shiftLeft shifts the active bits up by _shift_. The shift distance is
// split into a whole-word part and a sub-word remainder; destination words
// are filled from most significant to least significant, each combining the
// low bits of its source word with the high bits of the word below it.
// Vacated low words are zeroed and the top word is clipped to the active
// range.
func (e multiWord[W]) shiftLeft(words []W, activeBits, shift uint, topMask W) {
	if shift >= activeBits {
		e.resetAll(words)
		return
	}

	wb := bitsPerWord[W]()
	splitPosition := wb - shift%wb

	srcIndex := int(uint(len(words)) - shift/wb - 1)
	dstIndex := len(words) - 1

	lsbShift := wb - splitPosition
	msbShift := splitPosition

	lsbMask := allSet[W]() >> (wb - splitPosition)
	msbMask := allSet[W]() - lsbMask
	lsbShiftedMask := lsbMask << lsbShift

	words[dstIndex] = (words[srcIndex] & lsbMask) << lsbShift
	srcIndex--

	for srcIndex >= 0 {
		words[dstIndex] |= (words[srcIndex] & msbMask) >> msbShift
		dstIndex--
		words[dstIndex] = (words[srcIndex] & lsbMask) << lsbShift
		srcIndex--
	}

	// Clip the partial destination word and zero everything below it.
	words[dstIndex] &= lsbShiftedMask
	for i := 0; i < dstIndex; i++ {
		words[i] = 0
	}

	words[len(words)-1] &= topMask
}

// shiftRight mirrors shiftLeft: destination words are filled from least
// significant to most significant, each combining the high bits of its
// source word with the low bits of the word above it, then the vacated high
// words are zeroed.
func (e multiWord[W]) shiftRight(words []W, activeBits, shift uint, topMask W) {
	if shift >= activeBits {
		e.resetAll(words)
		return
	}

	wb := bitsPerWord[W]()
	splitPosition := shift % wb

	srcIndex := int(shift / wb)
	dstIndex := 0

	lsbShift := wb - splitPosition
	msbShift := splitPosition

	lsbMask := allSet[W]() >> (wb - splitPosition)
	msbMask := allSet[W]() - lsbMask
	msbShiftedMask := msbMask >> msbShift

	for srcIndex < len(words)-1 {
		msb := (words[srcIndex] & msbMask) >> msbShift
		srcIndex++
		lsb := (words[srcIndex] & lsbMask) << lsbShift
		words[dstIndex] = lsb | msb
		dstIndex++
	}

	words[dstIndex] = (words[srcIndex] & msbMask) >> msbShift
	words[dstIndex] &= msbShiftedMask
	dstIndex++

	for dstIndex < len(words) {
		words[dstIndex] = 0
		dstIndex++
	}

	words[len(words)-1] &= topMask
}

// findNext scans for the next bit in _state_ from _pos_ upward. A word that
// cannot contain a match is skipped whole; otherwise the scan resumes at the
// exact intra-word offset.
func (multiWord[W]) findNext(words []W, activeBits uint, state bool, pos uint) (uint, bool) {
	wb := bitsPerWord[W]()
	index := pos / wb
	bit := pos % wb
	mask := W(1) << bit

	for index < uint(len(words)) {
		value := words[index]

		needsChecking := (state && value != 0) || (!state && value != allSet[W]())
		if needsChecking {
			for bit < wb && pos < activeBits {
				if (value&mask != 0) == state {
					return pos, true
				}
				mask <<= 1
				pos++
				bit++
			}
		} else {
			pos += wb - bit
		}

		bit = 0
		mask = 1
		index++
	}

	return 0, false
}

func (e multiWord[W]) fromValue(words []W, value uint64, topMask W) {
	if len(words) == 0 {
		return
	}
	wb := bitsPerWord[W]()
	i := 0
	for value != 0 && i < len(words) {
		words[i] = W(value)
		if wb >= 64 {
			value = 0
		} else {
			value >>= wb
		}
		i++
	}
	for i < len(words) {
		words[i] = 0
		i++
	}
	words[len(words)-1] &= topMask
}

// fromString resets the buffer, then walks the text from its first
// character, which maps to the highest consumed bit position. Only the
// first min(activeBits, len(text)) characters contribute.
func (e multiWord[W]) fromString(words []W, activeBits uint, text string) {
	e.resetAll(words)
	n := uint(len(text))
	if activeBits < n {
		n = activeBits
	}
	for i := uint(0); i < n; i++ {
		if text[i] == '1' {
			e.setPosition(words, n-1-i, true)
		}
	}
}

func (multiWord[W]) value(words []W) uint64 {
	wb := bitsPerWord[W]()
	var v uint64
	shift := uint(0)
	for _, w := range words {
		if shift >= 64 {
			break
		}
		v |= uint64(w) << shift
		shift += wb
	}
	return v
}
