package bitset

// engine is the strategy interface behind BitSet. The two implementations,
// singleWord and multiWord, are stateless: every call receives the word
// slice and whatever geometry it needs, so one instance serves any number of
// bitsets. A BitSet picks its engine once at construction from the word
// count and never switches.
type engine[W Word] interface {
	test(words []W, pos uint) bool
	setPosition(words []W, pos uint, value bool)
	resetPosition(words []W, pos uint)
	flipPosition(words []W, pos uint)

	setAll(words []W, topMask W)
	resetAll(words []W)
	flipAll(words []W, topMask W)

	count(words []W) uint
	all(words []W, topMask W) bool
	any(words []W) bool
	none(words []W) bool

	extract(words []W, pos, length uint) uint64

	shiftLeft(words []W, activeBits, shift uint, topMask W)
	shiftRight(words []W, activeBits, shift uint, topMask W)

	findNext(words []W, activeBits uint, state bool, pos uint) (uint, bool)

	fromValue(words []W, value uint64, topMask W)
	fromString(words []W, activeBits uint, text string)
	value(words []W) uint64
}

func engineFor[W Word](wordCount uint) engine[W] {
	if wordCount == 1 {
		return singleWord[W]{}
	}
	return multiWord[W]{}
}
