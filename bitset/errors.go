package bitset

import "errors"

// Every fallible operation returns one of these sentinels alongside a neutral
// value: false for reads, zero for extractions, no mutation for writes.
var (
	// ErrPositionOutOfRange is returned when a bit position is >= the
	// bitset's size.
	ErrPositionOutOfRange = errors.New("gobitset: position out of range")

	// ErrFieldOutOfRange is returned when an extraction's position + length
	// exceeds the bitset's size.
	ErrFieldOutOfRange = errors.New("gobitset: field exceeds bitset size")

	// ErrTypeTooSmall is returned when a value conversion targets an integer
	// type with fewer bits than the bitset's size, or an extraction length
	// exceeds the target type's width.
	ErrTypeTooSmall = errors.New("gobitset: target type too small")

	// ErrMaskedQueryMultiWord is returned by the masked All/Any/None
	// variants when the bitset uses multi-word storage. Masked queries are
	// defined for single-word storage only.
	ErrMaskedQueryMultiWord = errors.New("gobitset: masked queries require single word storage")

	// ErrNilBuffer is returned by Bind when given a nil word slice.
	ErrNilBuffer = errors.New("gobitset: nil storage buffer")

	// ErrBufferTooSmall is returned by Bind and FromBytes when the supplied
	// storage cannot hold the requested number of bits.
	ErrBufferTooSmall = errors.New("gobitset: storage buffer too small")

	// ErrSizeMismatch is returned by binary operations on bitsets of
	// different logical sizes.
	ErrSizeMismatch = errors.New("gobitset: bitset sizes differ")
)
