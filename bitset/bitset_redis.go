package bitset

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kwertop/gobitset"
	"github.com/kwertop/gobitset/internal/util"
)

// RedisBitSet is a fixed-size bitset stored in a Redis string value. Bits
// are addressed with GETBIT/SETBIT, so the structure can be shared across
// processes. The process-wide client must be registered first with
// gobitset.MakeRedisClient.
//
// Redis addresses bit 0 as the most significant bit of the first byte; the
// per-bit commands inherit that layout transparently, and the bulk
// Store/Snapshot bridge reflects each byte so the stored value lines up
// with the in-memory little-endian words.
type RedisBitSet struct {
	size uint
	key  string
}

// NewRedisBitSet creates a zero-filled bitset of _size_ bits under a
// generated Redis key.
func NewRedisBitSet(size uint) (*RedisBitSet, error) {
	key := util.GenerateRandomString(16)
	zero := make([]byte, (size+7)/8)
	err := gobitset.GetRedisClient().Set(context.Background(), key, string(zero), 0).Err()
	if err != nil {
		return nil, fmt.Errorf("gobitset: error while creating redis bitset: %v", err)
	}
	return &RedisBitSet{size: size, key: key}, nil
}

// FromRedisKey adopts an existing Redis string value of _size_ bits as a
// bitset. The stored value must hold at least ceil(size/8) bytes.
func FromRedisKey(size uint, key string) (*RedisBitSet, error) {
	val, err := gobitset.GetRedisClient().Get(context.Background(), key).Result()
	if err != nil {
		return nil, fmt.Errorf("gobitset: error reading redis key %q: %v", key, err)
	}
	if uint(len(val)) < (size+7)/8 {
		return nil, ErrBufferTooSmall
	}
	return &RedisBitSet{size: size, key: key}, nil
}

// StoreBitSet persists an in-memory bitset to Redis under a generated key
// and returns the Redis-backed handle addressing the same bits.
func StoreBitSet[W Word](b *BitSet[W]) (*RedisBitSet, error) {
	data := b.Bytes()[:(b.Size()+7)/8]
	util.ReverseBitsPerByte(data)
	key := util.GenerateRandomString(16)
	err := gobitset.GetRedisClient().Set(context.Background(), key, string(data), 0).Err()
	if err != nil {
		return nil, fmt.Errorf("gobitset: error while storing bitset: %v", err)
	}
	return &RedisBitSet{size: b.Size(), key: key}, nil
}

// Snapshot reads the stored bits back into an in-memory 8-bit-word bitset.
func (r *RedisBitSet) Snapshot() (*BitSet[uint8], error) {
	val, err := gobitset.GetRedisClient().Get(context.Background(), r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("gobitset: error reading redis bitset: %v", err)
	}
	data := []byte(val)
	if uint(len(data)) > (r.size+7)/8 {
		data = data[:(r.size+7)/8]
	}
	util.ReverseBitsPerByte(data)
	return FromBytes[uint8](r.size, data)
}

// Size returns the logical bit count.
func (r *RedisBitSet) Size() uint {
	return r.size
}

// Key returns the Redis key backing the bitset.
func (r *RedisBitSet) Key() string {
	return r.key
}

// Test reports whether the bit at _pos_ is set.
func (r *RedisBitSet) Test(pos uint) (bool, error) {
	if pos >= r.size {
		return false, ErrPositionOutOfRange
	}
	val, err := gobitset.GetRedisClient().GetBit(context.Background(), r.key, int64(pos)).Result()
	if err != nil {
		return false, err
	}
	return val != 0, nil
}

// TestMulti reads several bit positions in one pipelined round trip.
func (r *RedisBitSet) TestMulti(positions []uint) ([]bool, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("gobitset: at least 1 position is required")
	}
	for _, pos := range positions {
		if pos >= r.size {
			return nil, ErrPositionOutOfRange
		}
	}
	pipe := gobitset.GetRedisClient().Pipeline()
	ctx := context.Background()
	values := make([]*redis.IntCmd, len(positions))
	for i := range positions {
		values[i] = pipe.GetBit(ctx, r.key, int64(positions[i]))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	result := make([]bool, len(values))
	for i := range values {
		result[i] = values[i].Val() != 0
	}
	return result, nil
}

// Set sets the bit at _pos_.
func (r *RedisBitSet) Set(pos uint) error {
	return r.SetValue(pos, true)
}

// SetValue sets the bit at _pos_ to _value_.
func (r *RedisBitSet) SetValue(pos uint, value bool) error {
	if pos >= r.size {
		return ErrPositionOutOfRange
	}
	bit := 0
	if value {
		bit = 1
	}
	return gobitset.GetRedisClient().SetBit(context.Background(), r.key, int64(pos), bit).Err()
}

// SetMulti sets several bit positions in one pipelined round trip.
func (r *RedisBitSet) SetMulti(positions []uint) error {
	if len(positions) == 0 {
		return fmt.Errorf("gobitset: at least 1 position is required")
	}
	for _, pos := range positions {
		if pos >= r.size {
			return ErrPositionOutOfRange
		}
	}
	pipe := gobitset.GetRedisClient().Pipeline()
	ctx := context.Background()
	for i := range positions {
		pipe.SetBit(ctx, r.key, int64(positions[i]), 1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Reset clears the bit at _pos_.
func (r *RedisBitSet) Reset(pos uint) error {
	return r.SetValue(pos, false)
}

// Flip inverts the bit at _pos_.
func (r *RedisBitSet) Flip(pos uint) error {
	current, err := r.Test(pos)
	if err != nil {
		return err
	}
	return r.SetValue(pos, !current)
}

// Count returns the number of set bits.
func (r *RedisBitSet) Count() (uint, error) {
	bitRange := &redis.BitCount{Start: 0, End: -1}
	val, err := gobitset.GetRedisClient().BitCount(context.Background(), r.key, bitRange).Result()
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}

// Any reports whether at least one bit is set.
func (r *RedisBitSet) Any() (bool, error) {
	count, err := r.Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// None reports whether no bit is set.
func (r *RedisBitSet) None() (bool, error) {
	any, err := r.Any()
	if err != nil {
		return false, err
	}
	return !any, nil
}

// FindFirst returns the position of the first bit in _state_.
func (r *RedisBitSet) FindFirst(state bool) (uint, bool) {
	bit := int64(0)
	if state {
		bit = 1
	}
	index, err := gobitset.GetRedisClient().BitPos(context.Background(), r.key, bit).Result()
	if err != nil || index == -1 || uint(index) >= r.size {
		return 0, false
	}
	return uint(index), true
}

// Equal reports whether two Redis-backed bitsets of the same size hold the
// same bits. Stored values are compared only up to ceil(size/8) bytes, so
// an adopted key with trailing surplus bytes still compares by its logical
// content.
func (r *RedisBitSet) Equal(other *RedisBitSet) (bool, error) {
	if other == nil || r.size != other.size {
		return false, nil
	}
	ctx := context.Background()
	lhs, err := gobitset.GetRedisClient().Get(ctx, r.key).Result()
	if err != nil {
		return false, err
	}
	rhs, err := gobitset.GetRedisClient().Get(ctx, other.key).Result()
	if err != nil {
		return false, err
	}
	n := int((r.size + 7) / 8)
	if len(lhs) > n {
		lhs = lhs[:n]
	}
	if len(rhs) > n {
		rhs = rhs[:n]
	}
	return lhs == rhs, nil
}
