/*
Package bitset implements fixed-capacity bitsets over a caller-chosen
unsigned storage word type.

The logical size is fixed at construction. Storage is either one word or an
array of words; the matching strategy is picked once, when the bitset is
built, and drives every later operation. Bits past the logical size exist
only as word-rounding slack and are kept clear by every mutating operation.

Storage is owned by the bitset when built with New, FromValue or FromString,
or borrowed from the caller with Bind. A Redis-backed variant lives in
bitset_redis.go.
*/
package bitset

import (
	"strings"

	"github.com/dgryski/go-metro"
)

// BitSet is a fixed-size bitset of _size_ logical bits stored in words of
// type W. The zero value is not usable; build instances with New, FromValue,
// FromString, Bind or FromBytes.
type BitSet[W Word] struct {
	words   []W
	size    uint
	topMask W
	eng     engine[W]
}

// New returns a zero-filled bitset of _size_ bits.
func New[W Word](size uint) *BitSet[W] {
	lay := layoutOf[W](size)
	return &BitSet[W]{
		words:   make([]W, lay.words),
		size:    size,
		topMask: lay.topMask,
		eng:     engineFor[W](lay.words),
	}
}

// FromValue returns a bitset of _size_ bits initialized from the low bits of
// _value_. Words beyond the value are zeroed; bits beyond _size_ are masked
// off.
func FromValue[W Word](size uint, value uint64) *BitSet[W] {
	b := New[W](size)
	if len(b.words) > 0 {
		b.eng.fromValue(b.words, value, b.topMask)
	}
	return b
}

// FromString returns a bitset of _size_ bits parsed from a digit string of
// '0' and '1' characters, most significant bit first. Parsing consumes the
// first min(size, len(text)) characters; any character other than '1' clears
// its bit.
func FromString[W Word](size uint, text string) *BitSet[W] {
	b := New[W](size)
	if len(b.words) > 0 {
		b.eng.fromString(b.words, b.size, text)
	}
	return b
}

// Bind returns a bitset of _size_ bits borrowing _buf_ as storage. The
// buffer must stay valid for the bitset's lifetime; it is never reallocated
// or freed. Existing buffer contents are preserved except that the unused
// high bits of the last word are cleared.
func Bind[W Word](size uint, buf []W) (*BitSet[W], error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	lay := layoutOf[W](size)
	if uint(len(buf)) < lay.words {
		return nil, ErrBufferTooSmall
	}
	b := &BitSet[W]{
		words:   buf[:lay.words],
		size:    size,
		topMask: lay.topMask,
		eng:     engineFor[W](lay.words),
	}
	if lay.words > 0 {
		b.words[lay.words-1] &= b.topMask
	}
	return b, nil
}

// Size returns the logical bit count.
func (b *BitSet[W]) Size() uint {
	return b.size
}

// Model reports whether the bitset uses single- or multi-word storage.
func (b *BitSet[W]) Model() StorageModel {
	if _, ok := b.eng.(singleWord[W]); ok {
		return SingleWord
	}
	return MultiWord
}

// TopMask returns the mask that keeps the unused high bits of the last
// storage word clear.
func (b *BitSet[W]) TopMask() W {
	return b.topMask
}

// Words exposes the raw backing words for bulk manipulation. Writes through
// this view bypass the top-mask invariant; callers that set bits past Size()
// are responsible for clearing them again.
func (b *BitSet[W]) Words() []W {
	return b.words
}

// Clone returns an independent copy. A clone of a bound bitset owns its
// storage.
func (b *BitSet[W]) Clone() *BitSet[W] {
	c := &BitSet[W]{
		words:   make([]W, len(b.words)),
		size:    b.size,
		topMask: b.topMask,
		eng:     b.eng,
	}
	copy(c.words, b.words)
	return c
}

// Test reports whether the bit at _pos_ is set. Out of range positions
// report false alongside ErrPositionOutOfRange.
func (b *BitSet[W]) Test(pos uint) (bool, error) {
	if pos >= b.size {
		return false, ErrPositionOutOfRange
	}
	return b.eng.test(b.words, pos), nil
}

// Set sets the bit at _pos_.
func (b *BitSet[W]) Set(pos uint) error {
	return b.SetValue(pos, true)
}

// SetValue sets the bit at _pos_ to _value_. Out of range positions leave
// the bitset unchanged.
func (b *BitSet[W]) SetValue(pos uint, value bool) error {
	if pos >= b.size {
		return ErrPositionOutOfRange
	}
	b.eng.setPosition(b.words, pos, value)
	return nil
}

// Reset clears the bit at _pos_.
func (b *BitSet[W]) Reset(pos uint) error {
	if pos >= b.size {
		return ErrPositionOutOfRange
	}
	b.eng.resetPosition(b.words, pos)
	return nil
}

// Flip inverts the bit at _pos_.
func (b *BitSet[W]) Flip(pos uint) error {
	if pos >= b.size {
		return ErrPositionOutOfRange
	}
	b.eng.flipPosition(b.words, pos)
	return nil
}

// SetAll sets every bit.
func (b *BitSet[W]) SetAll() {
	if len(b.words) > 0 {
		b.eng.setAll(b.words, b.topMask)
	}
}

// ResetAll clears every bit.
func (b *BitSet[W]) ResetAll() {
	if len(b.words) > 0 {
		b.eng.resetAll(b.words)
	}
}

// FlipAll inverts every bit.
func (b *BitSet[W]) FlipAll() {
	if len(b.words) > 0 {
		b.eng.flipAll(b.words, b.topMask)
	}
}

// Count returns the number of set bits.
func (b *BitSet[W]) Count() uint {
	return b.eng.count(b.words)
}

// All reports whether every bit is set. An empty bitset reports true.
func (b *BitSet[W]) All() bool {
	return b.eng.all(b.words, b.topMask)
}

// Any reports whether at least one bit is set.
func (b *BitSet[W]) Any() bool {
	return b.eng.any(b.words)
}

// None reports whether no bit is set.
func (b *BitSet[W]) None() bool {
	return b.eng.none(b.words)
}

// AllMask reports whether every bit of _mask_ is set. Masked queries are
// defined for single-word storage only.
func (b *BitSet[W]) AllMask(mask W) (bool, error) {
	eng, ok := b.eng.(singleWord[W])
	if !ok {
		return false, ErrMaskedQueryMultiWord
	}
	return eng.allMask(b.words, b.topMask, mask), nil
}

// AnyMask reports whether any bit of _mask_ is set. Masked queries are
// defined for single-word storage only.
func (b *BitSet[W]) AnyMask(mask W) (bool, error) {
	eng, ok := b.eng.(singleWord[W])
	if !ok {
		return false, ErrMaskedQueryMultiWord
	}
	return eng.anyMask(b.words, mask), nil
}

// NoneMask reports whether no bit of _mask_ is set. Masked queries are
// defined for single-word storage only.
func (b *BitSet[W]) NoneMask(mask W) (bool, error) {
	eng, ok := b.eng.(singleWord[W])
	if !ok {
		return false, ErrMaskedQueryMultiWord
	}
	return eng.noneMask(b.words, mask), nil
}

// ShiftLeft shifts the bits up by _shift_ positions in place. Shifting by
// the size or more clears the bitset.
func (b *BitSet[W]) ShiftLeft(shift uint) {
	if len(b.words) == 0 || shift == 0 {
		return
	}
	b.eng.shiftLeft(b.words, b.size, shift, b.topMask)
}

// ShiftRight shifts the bits down by _shift_ positions in place. Shifting by
// the size or more clears the bitset.
func (b *BitSet[W]) ShiftRight(shift uint) {
	if len(b.words) == 0 || shift == 0 {
		return
	}
	b.eng.shiftRight(b.words, b.size, shift, b.topMask)
}

// ShiftedLeft returns a copy shifted up by _shift_ positions.
func (b *BitSet[W]) ShiftedLeft(shift uint) *BitSet[W] {
	c := b.Clone()
	c.ShiftLeft(shift)
	return c
}

// ShiftedRight returns a copy shifted down by _shift_ positions.
func (b *BitSet[W]) ShiftedRight(shift uint) *BitSet[W] {
	c := b.Clone()
	c.ShiftRight(shift)
	return c
}

// Extract reads a _length_-bit unsigned field starting at bit _pos_,
// assembled least significant bit first. The field must lie inside the
// bitset and within 64 bits; violations report 0 alongside the error.
func (b *BitSet[W]) Extract(pos, length uint) (uint64, error) {
	if length > 64 {
		return 0, ErrTypeTooSmall
	}
	// pos+length could wrap around; compare without summing.
	if pos > b.size || length > b.size-pos {
		return 0, ErrFieldOutOfRange
	}
	if length == 0 {
		return 0, nil
	}
	return b.eng.extract(b.words, pos, length), nil
}

// ExtractSigned reads a _length_-bit field starting at bit _pos_ and sign
// extends it from bit length-1.
func (b *BitSet[W]) ExtractSigned(pos, length uint) (int64, error) {
	v, err := b.Extract(pos, length)
	if err != nil || length == 0 {
		return 0, err
	}
	if length < 64 && v&(uint64(1)<<(length-1)) != 0 {
		v |= ^uint64(0) << length
	}
	return int64(v), nil
}

// Uint64 returns the bitset as an unsigned integer. The bitset must be at
// most 64 bits.
func (b *BitSet[W]) Uint64() (uint64, error) {
	if b.size > 64 {
		return 0, ErrTypeTooSmall
	}
	return b.eng.value(b.words), nil
}

// Uint32 returns the bitset as an unsigned integer. The bitset must be at
// most 32 bits.
func (b *BitSet[W]) Uint32() (uint32, error) {
	if b.size > 32 {
		return 0, ErrTypeTooSmall
	}
	return uint32(b.eng.value(b.words)), nil
}

// FindFirst returns the position of the first bit in _state_.
func (b *BitSet[W]) FindFirst(state bool) (uint, bool) {
	return b.FindNext(state, 0)
}

// FindNext returns the position of the next bit in _state_, starting the
// scan at _pos_.
func (b *BitSet[W]) FindNext(state bool, pos uint) (uint, bool) {
	if len(b.words) == 0 {
		return 0, false
	}
	return b.eng.findNext(b.words, b.size, state, pos)
}

// SetString reparses the bitset from a digit string, with FromString
// semantics.
func (b *BitSet[W]) SetString(text string) {
	if len(b.words) > 0 {
		b.eng.fromString(b.words, b.size, text)
	}
}

// ToString renders the bitset most significant bit first using the supplied
// digit characters.
func (b *BitSet[W]) ToString(zero, one byte) string {
	var sb strings.Builder
	sb.Grow(int(b.size))
	for i := b.size; i > 0; i-- {
		if b.eng.test(b.words, i-1) {
			sb.WriteByte(one)
		} else {
			sb.WriteByte(zero)
		}
	}
	return sb.String()
}

// String implements fmt.Stringer with '0' and '1' digits.
func (b *BitSet[W]) String() string {
	return b.ToString('0', '1')
}

// Equal reports whether two bitsets of the same word type hold the same
// bits. Bitsets of different sizes are never equal.
func (b *BitSet[W]) Equal(other *BitSet[W]) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.words {
		if b.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// And returns the bitwise AND of two bitsets of equal size.
func (b *BitSet[W]) And(other *BitSet[W]) (*BitSet[W], error) {
	c := b.Clone()
	if err := c.AndWith(other); err != nil {
		return nil, err
	}
	return c, nil
}

// AndWith ANDs _other_ into the receiver.
func (b *BitSet[W]) AndWith(other *BitSet[W]) error {
	if other == nil || b.size != other.size {
		return ErrSizeMismatch
	}
	for i := range b.words {
		b.words[i] &= other.words[i]
	}
	return nil
}

// Or returns the bitwise OR of two bitsets of equal size.
func (b *BitSet[W]) Or(other *BitSet[W]) (*BitSet[W], error) {
	c := b.Clone()
	if err := c.OrWith(other); err != nil {
		return nil, err
	}
	return c, nil
}

// OrWith ORs _other_ into the receiver.
func (b *BitSet[W]) OrWith(other *BitSet[W]) error {
	if other == nil || b.size != other.size {
		return ErrSizeMismatch
	}
	for i := range b.words {
		b.words[i] |= other.words[i]
	}
	return nil
}

// Xor returns the bitwise XOR of two bitsets of equal size.
func (b *BitSet[W]) Xor(other *BitSet[W]) (*BitSet[W], error) {
	c := b.Clone()
	if err := c.XorWith(other); err != nil {
		return nil, err
	}
	return c, nil
}

// XorWith XORs _other_ into the receiver.
func (b *BitSet[W]) XorWith(other *BitSet[W]) error {
	if other == nil || b.size != other.size {
		return ErrSizeMismatch
	}
	for i := range b.words {
		b.words[i] ^= other.words[i]
	}
	return nil
}

// Not returns a copy with every bit inverted.
func (b *BitSet[W]) Not() *BitSet[W] {
	c := b.Clone()
	c.FlipAll()
	return c
}

// Fingerprint returns a 64-bit content hash of the bitset's size and bits,
// usable as a cheap change detector or cache key.
func (b *BitSet[W]) Fingerprint() uint64 {
	return metro.Hash64(b.Bytes(), uint64(b.size))
}

// EqualAcross reports whether two bitsets of equal logical size but possibly
// different storage word widths hold the same bits. Narrow words are
// assembled into groups the width of the wider word and compared group by
// group, with the wider operand always on the left.
func EqualAcross[L Word, R Word](lhs *BitSet[L], rhs *BitSet[R]) bool {
	if lhs == nil || rhs == nil || lhs.size != rhs.size {
		return false
	}
	if bitsPerWord[L]() >= bitsPerWord[R]() {
		return compareSpans(lhs.words, rhs.words)
	}
	return compareSpans(rhs.words, lhs.words)
}

// compareSpans compares a wide word span against a narrow one of the same
// logical size. The narrow span never outruns the wide one: for equal bit
// counts, ceil(N/nb) <= ceil(N/wb) * (wb/nb). It may run short, in which
// case the missing high words compare as zero, which the top-mask invariant
// guarantees for the wide side's slack.
func compareSpans[A Word, B Word](wide []A, narrow []B) bool {
	wb := bitsPerWord[B]()
	steps := bitsPerWord[A]() / wb
	ni := uint(0)
	for _, wv := range wide {
		var nv uint64
		shift := uint(0)
		for s := uint(0); s < steps && ni < uint(len(narrow)); s++ {
			nv |= uint64(narrow[ni]) << shift
			ni++
			shift += wb
		}
		if uint64(wv) != nv {
			return false
		}
	}
	return true
}
