package bitset

// Ref is a lightweight accessor bound to one bit of one bitset. It carries
// no storage of its own; reads and writes go straight through to the owning
// bitset, so a Ref must not outlive it. Access is explicit through Read,
// Write and Flip rather than through conversions.
type Ref[W Word] struct {
	owner *BitSet[W]
	pos   uint
}

// At returns an accessor for the bit at _pos_. The position is validated on
// every access, not on construction.
func (b *BitSet[W]) At(pos uint) Ref[W] {
	return Ref[W]{owner: b, pos: pos}
}

// Pos returns the bit position the accessor is bound to.
func (r Ref[W]) Pos() uint {
	return r.pos
}

// Read returns the bit's value.
func (r Ref[W]) Read() (bool, error) {
	return r.owner.Test(r.pos)
}

// Write sets the bit to _value_.
func (r Ref[W]) Write(value bool) error {
	return r.owner.SetValue(r.pos, value)
}

// Flip inverts the bit.
func (r Ref[W]) Flip() error {
	return r.owner.Flip(r.pos)
}
