package bitset

import "unsafe"

// Word is the set of unsigned integer types usable as backing storage. The
// word width decides how many storage words a bitset of a given size needs
// and therefore which strategy serves it.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// StorageModel identifies which strategy a bitset was built with.
type StorageModel int

const (
	// SingleWord storage keeps every bit in one machine word.
	SingleWord StorageModel = iota
	// MultiWord storage spans an array of machine words.
	MultiWord
)

func (m StorageModel) String() string {
	if m == SingleWord {
		return "single"
	}
	return "multi"
}

func bitsPerWord[W Word]() uint {
	var w W
	return uint(unsafe.Sizeof(w)) * 8
}

func allSet[W Word]() W {
	var w W
	return ^w
}

// layout captures the storage geometry for a bitset of _size_ logical bits:
// the number of words, the physically allocated bit count, and the mask that
// keeps the unused high bits of the last word clear.
type layout[W Word] struct {
	size      uint
	words     uint
	totalBits uint
	topMask   W
}

func layoutOf[W Word](size uint) layout[W] {
	wb := bitsPerWord[W]()
	words := size / wb
	if size%wb != 0 {
		words++
	}
	lay := layout[W]{
		size:      size,
		words:     words,
		totalBits: words * wb,
		topMask:   allSet[W](),
	}
	if shift := lay.totalBits - size; shift != 0 {
		lay.topMask = ^(allSet[W]() << (wb - shift))
	}
	return lay
}

func (l layout[W]) model() StorageModel {
	if l.words == 1 {
		return SingleWord
	}
	return MultiWord
}

// lsbMask64 returns a uint64 with the low _length_ bits set.
func lsbMask64(length uint) uint64 {
	if length >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << length) - 1
}

func lsbMask[W Word](length uint) W {
	if length >= bitsPerWord[W]() {
		return allSet[W]()
	}
	return (W(1) << length) - 1
}
