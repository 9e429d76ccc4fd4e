package bitset

import (
	"testing"
)

func TestBitSetSetAndTest(t *testing.T) {
	b := New[uint16](12)
	for _, pos := range []uint{0, 3, 11} {
		if err := b.Set(pos); err != nil {
			t.Fatalf("set %d failed: %v", pos, err)
		}
	}
	for pos := uint(0); pos < 12; pos++ {
		got, err := b.Test(pos)
		if err != nil {
			t.Fatalf("test %d failed: %v", pos, err)
		}
		want := pos == 0 || pos == 3 || pos == 11
		if got != want {
			t.Fatalf("bit %d should be %v, got %v", pos, want, got)
		}
	}
}

func TestBitSetOutOfRange(t *testing.T) {
	b := New[uint8](12)
	if err := b.Set(12); err != ErrPositionOutOfRange {
		t.Fatalf("set past the end should fail, got %v", err)
	}
	if err := b.Reset(100); err != ErrPositionOutOfRange {
		t.Fatalf("reset past the end should fail, got %v", err)
	}
	if err := b.Flip(12); err != ErrPositionOutOfRange {
		t.Fatalf("flip past the end should fail, got %v", err)
	}
	if _, err := b.Test(12); err != ErrPositionOutOfRange {
		t.Fatalf("test past the end should fail, got %v", err)
	}
	if b.Any() {
		t.Fatalf("failed operations must not mutate the bitset")
	}
}

func TestBitSetFromValue(t *testing.T) {
	b := FromValue[uint8](12, 0xABC)
	if s := b.String(); s != "101010111100" {
		t.Fatalf("string rendering of 0xABC should be 101010111100, got %s", s)
	}
	v, err := b.Uint64()
	if err != nil {
		t.Fatalf("uint64 round trip failed: %v", err)
	}
	if v != 0xABC {
		t.Fatalf("uint64 round trip should give 0xABC, got %#x", v)
	}
	if got := b.Count(); got != 7 {
		t.Fatalf("0xABC has 7 set bits, count gave %d", got)
	}
}

func TestBitSetFromValueTruncates(t *testing.T) {
	b := FromValue[uint8](12, 0xFFFFF)
	v, err := b.Uint64()
	if err != nil {
		t.Fatalf("uint64 failed: %v", err)
	}
	if v != 0xFFF {
		t.Fatalf("excess value bits must be discarded, got %#x", v)
	}
}

func TestBitSetSetAll(t *testing.T) {
	b := New[uint16](12)
	b.SetAll()
	if got := b.Count(); got != 12 {
		t.Fatalf("count after set all should be 12, got %d", got)
	}
	if !b.All() || !b.Any() || b.None() {
		t.Fatalf("reductions after set all should be all=true any=true none=false")
	}
	v, err := b.Uint32()
	if err != nil {
		t.Fatalf("uint32 failed: %v", err)
	}
	if v != 0xFFF {
		t.Fatalf("full 12 bit set should read back 0xFFF, got %#x", v)
	}
	b.ResetAll()
	if !b.None() || b.Any() {
		t.Fatalf("reset all should clear every bit")
	}
}

func TestBitSetFlipAll(t *testing.T) {
	b := FromValue[uint8](12, 0xABC)
	b.FlipAll()
	v, err := b.Uint64()
	if err != nil {
		t.Fatalf("uint64 failed: %v", err)
	}
	if v != 0xABC^0xFFF {
		t.Fatalf("flip all should complement within the logical size, got %#x", v)
	}
	if got := b.Count(); got != 5 {
		t.Fatalf("count after flip should be 5, got %d", got)
	}
}

func TestBitSetSetValue(t *testing.T) {
	b := New[uint32](12)
	if err := b.SetValue(5, true); err != nil {
		t.Fatalf("set value failed: %v", err)
	}
	if got, _ := b.Test(5); !got {
		t.Fatalf("bit 5 should be set")
	}
	if err := b.SetValue(5, false); err != nil {
		t.Fatalf("clear value failed: %v", err)
	}
	if got, _ := b.Test(5); got {
		t.Fatalf("bit 5 should be clear")
	}
}

func TestBitSetShiftSequence(t *testing.T) {
	run := func(t *testing.T, b *BitSet[uint8]) {
		t.Helper()
		b.ShiftLeft(19)
		if got, _ := b.Test(19); !got {
			t.Fatalf("bit 19 should be set after shifting by 19")
		}
		if got := b.Count(); got != 1 {
			t.Fatalf("count after shift should be 1, got %d", got)
		}
		b.ShiftLeft(1)
		if !b.None() {
			t.Fatalf("shifting the top bit out should clear the bitset")
		}
	}
	t.Run("MultiWord", func(t *testing.T) {
		run(t, FromValue[uint8](20, 1))
	})
	b32 := FromValue[uint32](20, 1)
	b32.ShiftLeft(19)
	if v, _ := b32.Uint64(); v != 1<<19 {
		t.Fatalf("single word shift should give bit 19, got %#x", v)
	}
	b32.ShiftLeft(1)
	if !b32.None() {
		t.Fatalf("single word shift past the end should clear the bitset")
	}
}

func TestBitSetShiftMatchesScalar(t *testing.T) {
	const size = 20
	const mask = uint64(1<<size - 1)
	seed := uint64(0xFEDCB)
	for shift := uint(0); shift <= 25; shift++ {
		left := FromValue[uint8](size, seed)
		left.ShiftLeft(shift)
		want := (seed << shift) & mask
		if shift >= 64 {
			want = 0
		}
		if v, _ := left.Uint64(); v != want {
			t.Fatalf("left shift by %d should give %#x, got %#x", shift, want, v)
		}
		right := FromValue[uint8](size, seed)
		right.ShiftRight(shift)
		want = (seed & mask) >> shift
		if shift >= 64 {
			want = 0
		}
		if v, _ := right.Uint64(); v != want {
			t.Fatalf("right shift by %d should give %#x, got %#x", shift, want, v)
		}
	}
}

func TestBitSetShiftedCopies(t *testing.T) {
	b := FromValue[uint8](12, 0x00F)
	shifted := b.ShiftedLeft(4)
	if v, _ := b.Uint64(); v != 0x00F {
		t.Fatalf("shifted copy must not touch the source, got %#x", v)
	}
	if v, _ := shifted.Uint64(); v != 0x0F0 {
		t.Fatalf("shifted copy should hold 0x0F0, got %#x", v)
	}
	back := shifted.ShiftedRight(4)
	if !back.Equal(b) {
		t.Fatalf("shifting back should restore the original")
	}
}

func TestBitSetMaskedQueries(t *testing.T) {
	b := FromValue[uint16](12, 0xABC)
	if got, err := b.AnyMask(0x003); err != nil || got {
		t.Fatalf("no low bits are set, any under mask gave %v, %v", got, err)
	}
	if got, err := b.AnyMask(0x800); err != nil || !got {
		t.Fatalf("the top bit is set, any under mask gave %v, %v", got, err)
	}
	if got, err := b.AllMask(0xA00); err != nil || !got {
		t.Fatalf("bits 9 and 11 are set, all under mask gave %v, %v", got, err)
	}
	if got, err := b.AllMask(0xE00); err != nil || got {
		t.Fatalf("bit 10 is clear, all under mask gave %v, %v", got, err)
	}
	if got, err := b.NoneMask(0x003); err != nil || !got {
		t.Fatalf("none under empty mask region gave %v, %v", got, err)
	}
}

func TestBitSetMaskedQueriesMultiWord(t *testing.T) {
	b := New[uint8](12)
	if _, err := b.AllMask(1); err != ErrMaskedQueryMultiWord {
		t.Fatalf("masked queries only apply to single word storage, got %v", err)
	}
	if _, err := b.AnyMask(1); err != ErrMaskedQueryMultiWord {
		t.Fatalf("masked queries only apply to single word storage, got %v", err)
	}
	if _, err := b.NoneMask(1); err != ErrMaskedQueryMultiWord {
		t.Fatalf("masked queries only apply to single word storage, got %v", err)
	}
}

func TestBitSetUintConversions(t *testing.T) {
	b := New[uint64](70)
	if _, err := b.Uint64(); err != ErrTypeTooSmall {
		t.Fatalf("70 bits do not fit a uint64, got %v", err)
	}
	c := New[uint8](40)
	if _, err := c.Uint32(); err != ErrTypeTooSmall {
		t.Fatalf("40 bits do not fit a uint32, got %v", err)
	}
	c.SetAll()
	v, err := c.Uint64()
	if err != nil {
		t.Fatalf("uint64 failed: %v", err)
	}
	if v != 1<<40-1 {
		t.Fatalf("full 40 bit set should read back as 40 ones, got %#x", v)
	}
}

func TestBitSetStringRoundTrip(t *testing.T) {
	text := "101010111100"
	b := FromString[uint8](12, text)
	if got := b.String(); got != text {
		t.Fatalf("string round trip gave %s", got)
	}
	v, err := b.Uint64()
	if err != nil {
		t.Fatalf("uint64 failed: %v", err)
	}
	if v != 0xABC {
		t.Fatalf("parsed value should be 0xABC, got %#x", v)
	}
}

func TestBitSetToStringCustomDigits(t *testing.T) {
	b := FromValue[uint16](8, 0xA5)
	if got := b.ToString('.', '#'); got != "#.#..#.#" {
		t.Fatalf("custom digit rendering gave %s", got)
	}
}

func TestBitSetSetString(t *testing.T) {
	b := New[uint8](12)
	b.SetAll()
	b.SetString("1010")
	v, _ := b.Uint64()
	if v != 0xA {
		t.Fatalf("a short string maps its last character to bit 0, got %#x", v)
	}
}

func TestBitSetExtract(t *testing.T) {
	b := FromValue[uint16](12, 0xABC)
	v, err := b.Extract(2, 4)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if v != 0xF {
		t.Fatalf("bits 2..5 of 0xABC are all set, got %#x", v)
	}
	v, err = b.Extract(8, 4)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if v != 0xA {
		t.Fatalf("bits 8..11 of 0xABC should be 0xA, got %#x", v)
	}
	if v, err = b.Extract(0, 0); err != nil || v != 0 {
		t.Fatalf("zero length extract should give 0, got %#x, %v", v, err)
	}
}

func TestBitSetExtractErrors(t *testing.T) {
	b := FromValue[uint8](9, 0x1FF)
	if _, err := b.Extract(5, 7); err != ErrFieldOutOfRange {
		t.Fatalf("field past the end should fail, got %v", err)
	}
	wide := New[uint64](128)
	if _, err := wide.Extract(0, 65); err != ErrTypeTooSmall {
		t.Fatalf("fields wider than 64 bits should fail, got %v", err)
	}
}

func TestBitSetExtractPositionOverflow(t *testing.T) {
	huge := ^uint(0)
	multi := FromValue[uint8](12, 0xABC)
	if v, err := multi.Extract(huge, 2); err != ErrFieldOutOfRange || v != 0 {
		t.Fatalf("a wrapping position must be rejected on multi word storage, got %#x, %v", v, err)
	}
	single := New[uint32](12)
	if v, err := single.Extract(huge, 1); err != ErrFieldOutOfRange || v != 0 {
		t.Fatalf("a wrapping position must be rejected on single word storage, got %#x, %v", v, err)
	}
	if v, err := multi.ExtractSigned(huge, 2); err != ErrFieldOutOfRange || v != 0 {
		t.Fatalf("a wrapping position must be rejected on signed extraction, got %d, %v", v, err)
	}
	if _, err := multi.Extract(13, 0); err != ErrFieldOutOfRange {
		t.Fatalf("a position past the end must be rejected even for empty fields, got %v", err)
	}
}

func TestBitSetExtractSpanning(t *testing.T) {
	b := FromValue[uint8](12, 0x1FF)
	v, err := b.Extract(5, 7)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if v != 0xF {
		t.Fatalf("bits 5..11 of 0x1FF should be 0b0001111, got %#b", v)
	}
	c := FromValue[uint8](24, 0xA5C3F0)
	for pos := uint(0); pos <= 16; pos++ {
		v, err := c.Extract(pos, 8)
		if err != nil {
			t.Fatalf("extract at %d failed: %v", pos, err)
		}
		if want := (uint64(0xA5C3F0) >> pos) & 0xFF; v != want {
			t.Fatalf("extract at %d should give %#x, got %#x", pos, want, v)
		}
	}
}

func TestBitSetExtractSigned(t *testing.T) {
	b := FromValue[uint16](12, 0xABC)
	v, err := b.ExtractSigned(2, 4)
	if err != nil {
		t.Fatalf("signed extract failed: %v", err)
	}
	if v != -1 {
		t.Fatalf("a field of all ones should sign extend to -1, got %d", v)
	}
	v, err = b.ExtractSigned(8, 4)
	if err != nil {
		t.Fatalf("signed extract failed: %v", err)
	}
	if v != -6 {
		t.Fatalf("0xA in 4 bits should sign extend to -6, got %d", v)
	}
	v, err = b.ExtractSigned(0, 3)
	if err != nil {
		t.Fatalf("signed extract failed: %v", err)
	}
	if v != 0b100-8 {
		t.Fatalf("0b100 in 3 bits should sign extend to -4, got %d", v)
	}
}

func TestBitSetFindNext(t *testing.T) {
	b := New[uint8](20)
	for _, pos := range []uint{3, 9, 15} {
		b.Set(pos)
	}
	if pos, ok := b.FindFirst(true); !ok || pos != 3 {
		t.Fatalf("first set bit should be 3, got %d, %v", pos, ok)
	}
	if pos, ok := b.FindNext(true, 4); !ok || pos != 9 {
		t.Fatalf("next set bit from 4 should be 9, got %d, %v", pos, ok)
	}
	if pos, ok := b.FindNext(true, 9); !ok || pos != 9 {
		t.Fatalf("find next is inclusive of the start, got %d, %v", pos, ok)
	}
	if pos, ok := b.FindNext(true, 16); ok {
		t.Fatalf("no set bit past 15, got %d", pos)
	}
	if pos, ok := b.FindFirst(false); !ok || pos != 0 {
		t.Fatalf("first clear bit should be 0, got %d, %v", pos, ok)
	}
	b.SetAll()
	if _, ok := b.FindFirst(false); ok {
		t.Fatalf("a full bitset has no clear bit")
	}
	b.Reset(9)
	if pos, ok := b.FindNext(false, 0); !ok || pos != 9 {
		t.Fatalf("the only clear bit is 9, got %d, %v", pos, ok)
	}
	if _, ok := b.FindNext(true, 20); ok {
		t.Fatalf("search past the end should find nothing")
	}
}

func TestBitSetBitwise(t *testing.T) {
	a := FromValue[uint8](12, 0xAAA)
	b := FromValue[uint8](12, 0x0FF)
	and, err := a.And(b)
	if err != nil {
		t.Fatalf("and failed: %v", err)
	}
	if v, _ := and.Uint64(); v != 0x0AA {
		t.Fatalf("and should give 0x0AA, got %#x", v)
	}
	or, err := a.Or(b)
	if err != nil {
		t.Fatalf("or failed: %v", err)
	}
	if v, _ := or.Uint64(); v != 0xAFF {
		t.Fatalf("or should give 0xAFF, got %#x", v)
	}
	xor, err := a.Xor(b)
	if err != nil {
		t.Fatalf("xor failed: %v", err)
	}
	if v, _ := xor.Uint64(); v != 0xA55 {
		t.Fatalf("xor should give 0xA55, got %#x", v)
	}
	not := a.Not()
	if v, _ := not.Uint64(); v != 0x555 {
		t.Fatalf("not should give 0x555, got %#x", v)
	}
	if v, _ := a.Uint64(); v != 0xAAA {
		t.Fatalf("copying operators must not touch the receiver, got %#x", v)
	}
}

func TestBitSetBitwiseInPlace(t *testing.T) {
	a := FromValue[uint8](12, 0xAAA)
	if err := a.AndWith(FromValue[uint8](12, 0x0FF)); err != nil {
		t.Fatalf("and with failed: %v", err)
	}
	if v, _ := a.Uint64(); v != 0x0AA {
		t.Fatalf("in place and should give 0x0AA, got %#x", v)
	}
	if err := a.OrWith(FromValue[uint8](12, 0x500)); err != nil {
		t.Fatalf("or with failed: %v", err)
	}
	if v, _ := a.Uint64(); v != 0x5AA {
		t.Fatalf("in place or should give 0x5AA, got %#x", v)
	}
	if err := a.XorWith(FromValue[uint8](12, 0xFFF)); err != nil {
		t.Fatalf("xor with failed: %v", err)
	}
	if v, _ := a.Uint64(); v != 0xA55 {
		t.Fatalf("in place xor should give 0xA55, got %#x", v)
	}
	if err := a.AndWith(New[uint8](16)); err != ErrSizeMismatch {
		t.Fatalf("mismatched sizes should fail, got %v", err)
	}
}

func TestBitSetEqual(t *testing.T) {
	a := FromValue[uint16](12, 0xABC)
	b := FromValue[uint16](12, 0xABC)
	if !a.Equal(b) {
		t.Fatalf("identical bitsets should compare equal")
	}
	b.Flip(0)
	if a.Equal(b) {
		t.Fatalf("differing bitsets should not compare equal")
	}
	if a.Equal(FromValue[uint16](13, 0xABC)) {
		t.Fatalf("differing sizes should not compare equal")
	}
}

func TestBitSetEqualAcross(t *testing.T) {
	narrow := FromValue[uint8](12, 0xABC)
	wide := FromValue[uint32](12, 0xABC)
	if !EqualAcross(narrow, wide) {
		t.Fatalf("same bits over different word types should compare equal")
	}
	if !EqualAcross(wide, narrow) {
		t.Fatalf("cross width comparison should commute")
	}
	if !EqualAcross(FromValue[uint16](40, 0xDEADBE), FromValue[uint64](40, 0xDEADBE)) {
		t.Fatalf("multi word against single word should compare equal")
	}
	wide.Flip(11)
	if EqualAcross(narrow, wide) {
		t.Fatalf("differing bits should not compare equal across widths")
	}
	if EqualAcross(FromValue[uint8](12, 1), FromValue[uint32](13, 1)) {
		t.Fatalf("differing sizes should not compare equal across widths")
	}
}

func TestBitSetClone(t *testing.T) {
	a := FromValue[uint8](12, 0xABC)
	c := a.Clone()
	if !a.Equal(c) {
		t.Fatalf("clone should compare equal to its source")
	}
	c.Flip(0)
	if a.Equal(c) {
		t.Fatalf("clone must not share storage with its source")
	}
}

func TestBitSetBind(t *testing.T) {
	buf := []uint8{0xFF, 0xFF, 0xFF}
	b, err := Bind(12, buf)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if got := b.Count(); got != 12 {
		t.Fatalf("bound bitset should see 12 set bits, got %d", got)
	}
	if buf[1] != 0x0F {
		t.Fatalf("binding should mask the last backing word, got %#x", buf[1])
	}
	b.Reset(0)
	if buf[0] != 0xFE {
		t.Fatalf("writes must land in the caller's buffer, got %#x", buf[0])
	}
	if buf[2] != 0xFF {
		t.Fatalf("words past the logical size must stay untouched, got %#x", buf[2])
	}
}

func TestBitSetBindErrors(t *testing.T) {
	if _, err := Bind[uint8](12, nil); err != ErrNilBuffer {
		t.Fatalf("nil buffer should fail, got %v", err)
	}
	if _, err := Bind(12, []uint8{0}); err != ErrBufferTooSmall {
		t.Fatalf("short buffer should fail, got %v", err)
	}
}

func TestBitSetRef(t *testing.T) {
	b := New[uint8](12)
	r := b.At(5)
	if r.Pos() != 5 {
		t.Fatalf("ref position should be 5, got %d", r.Pos())
	}
	if err := r.Write(true); err != nil {
		t.Fatalf("ref write failed: %v", err)
	}
	if got, _ := b.Test(5); !got {
		t.Fatalf("ref write should land in the owning bitset")
	}
	if err := r.Flip(); err != nil {
		t.Fatalf("ref flip failed: %v", err)
	}
	if got, err := r.Read(); err != nil || got {
		t.Fatalf("bit should be clear after flip, got %v, %v", got, err)
	}
	bad := b.At(12)
	if _, err := bad.Read(); err != ErrPositionOutOfRange {
		t.Fatalf("ref past the end should fail on use, got %v", err)
	}
}

func TestBitSetTopMaskInvariant(t *testing.T) {
	check := func(t *testing.T, b *BitSet[uint8], step string) {
		t.Helper()
		words := b.Words()
		if len(words) == 0 {
			return
		}
		if slack := words[len(words)-1] &^ b.TopMask(); slack != 0 {
			t.Fatalf("%s left bits above the logical size: %#x", step, slack)
		}
	}
	b := New[uint8](12)
	b.SetAll()
	check(t, b, "set all")
	b.FlipAll()
	check(t, b, "flip all")
	b = FromValue[uint8](12, ^uint64(0))
	check(t, b, "from value")
	b.ShiftLeft(3)
	check(t, b, "shift left")
	b.ShiftRight(2)
	check(t, b, "shift right")
	b.SetAll()
	check(t, b.Not(), "not")
	b.SetString("111111111111")
	check(t, b, "set string")
}

func TestBitSetCountConsistency(t *testing.T) {
	b := FromValue[uint8](20, 0xBEEF5)
	manual := uint(0)
	for pos := uint(0); pos < b.Size(); pos++ {
		if got, _ := b.Test(pos); got {
			manual++
		}
	}
	if got := b.Count(); got != manual {
		t.Fatalf("count should agree with per bit tests, %d vs %d", got, manual)
	}
}

func TestBitSetBytesRoundTrip(t *testing.T) {
	b := FromValue[uint16](20, 0xBEEF5)
	raw := b.Bytes()
	if len(raw) != 4 {
		t.Fatalf("two uint16 words should serialize to 4 bytes, got %d", len(raw))
	}
	back, err := FromBytes[uint16](20, raw)
	if err != nil {
		t.Fatalf("from bytes failed: %v", err)
	}
	if !b.Equal(back) {
		t.Fatalf("byte round trip should restore the bitset")
	}
	if _, err := FromBytes[uint16](20, make([]byte, 8)); err != ErrSizeMismatch {
		t.Fatalf("over long byte slices should fail, got %v", err)
	}
	short, err := FromBytes[uint16](20, raw[:2])
	if err != nil {
		t.Fatalf("short byte slices read as zero padded: %v", err)
	}
	if v, _ := short.Uint64(); v != 0xEEF5 {
		t.Fatalf("missing bytes should read zero, got %#x", v)
	}
}

func TestBitSetFingerprint(t *testing.T) {
	a := FromValue[uint8](20, 0xBEEF5)
	b := FromValue[uint8](20, 0xBEEF5)
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("equal bitsets should fingerprint equally")
	}
	b.Flip(3)
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("differing bitsets should fingerprint differently")
	}
}
