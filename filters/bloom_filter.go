/*
Package filters provides a capacity-bounded Bloom filter built on the
gobitset cores: an in-memory word-array bitset or a Redis-backed bitset.
*/
package filters

import (
	"fmt"
	"math"
	"sync"

	"github.com/dgryski/go-metro"

	"github.com/kwertop/gobitset/bitset"
	"github.com/kwertop/gobitset/internal/util"
)

// backing abstracts the two bitset flavors a BloomFilter can sit on.
type backing interface {
	setMulti(positions []uint) error
	hasMulti(positions []uint) ([]bool, error)
}

type memBacking struct {
	bits *bitset.BitSet[uint64]
}

func (m memBacking) setMulti(positions []uint) error {
	for _, pos := range positions {
		if err := m.bits.Set(pos); err != nil {
			return err
		}
	}
	return nil
}

func (m memBacking) hasMulti(positions []uint) ([]bool, error) {
	result := make([]bool, len(positions))
	for i, pos := range positions {
		ok, err := m.bits.Test(pos)
		if err != nil {
			return nil, err
		}
		result[i] = ok
	}
	return result, nil
}

type redisBacking struct {
	bits *bitset.RedisBitSet
}

func (r redisBacking) setMulti(positions []uint) error {
	return r.bits.SetMulti(positions)
}

func (r redisBacking) hasMulti(positions []uint) ([]bool, error) {
	return r.bits.TestMulti(positions)
}

// BloomFilter is a classic bloom filter. _size_ is the bitset size,
// _numHashes_ the number of hash functions applied per entrant. The lock
// only guards the in-memory variant; Redis serializes its own commands.
type BloomFilter struct {
	size      uint
	numHashes uint
	filter    backing
	mem       *bitset.BitSet[uint64]
	redis     *bitset.RedisBitSet
	lock      sync.RWMutex
}

// NewMemBloomFilter creates an in-memory bloom filter sized for _numItems_
// entrants at the acceptable false positive rate _errorRate_.
func NewMemBloomFilter(numItems uint, errorRate float64) (*BloomFilter, error) {
	if numItems == 0 {
		return nil, fmt.Errorf("gobitset: number of items must be greater than zero")
	}
	size := util.Max(util.CalculateFilterSize(numItems, errorRate), 1)
	numHashes := util.Max(util.CalculateNumHashes(size, numItems), 1)
	mem := bitset.New[uint64](size)
	return &BloomFilter{
		size:      size,
		numHashes: numHashes,
		filter:    memBacking{mem},
		mem:       mem,
	}, nil
}

// NewRedisBloomFilter creates a Redis-backed bloom filter sized for
// _numItems_ entrants at the acceptable false positive rate _errorRate_.
// The process-wide Redis client must be registered first.
func NewRedisBloomFilter(numItems uint, errorRate float64) (*BloomFilter, error) {
	if numItems == 0 {
		return nil, fmt.Errorf("gobitset: number of items must be greater than zero")
	}
	size := util.Max(util.CalculateFilterSize(numItems, errorRate), 1)
	numHashes := util.Max(util.CalculateNumHashes(size, numItems), 1)
	set, err := bitset.NewRedisBitSet(size)
	if err != nil {
		return nil, err
	}
	return &BloomFilter{
		size:      size,
		numHashes: numHashes,
		filter:    redisBacking{set},
		redis:     set,
	}, nil
}

func getHashes(data []byte) [2]uint64 {
	hash1, hash2 := metro.Hash128(data, 1373)
	return [2]uint64{hash1, hash2}
}

func (bloomFilter *BloomFilter) getIndex(hashes [2]uint64, i uint) uint {
	j := uint64(i)
	return uint((hashes[0] + j*hashes[1] + uint64(math.Floor(float64(math.Pow(float64(j), 3)-float64(j))/6))) % uint64(bloomFilter.size))
}

func (bloomFilter *BloomFilter) indexes(data []byte) []uint {
	hashes := getHashes(data)
	indexes := make([]uint, bloomFilter.numHashes)
	for i := uint(0); i < bloomFilter.numHashes; i++ {
		indexes[i] = bloomFilter.getIndex(hashes, i)
	}
	return indexes
}

// Insert writes _data_ into the bloom filter.
func (bloomFilter *BloomFilter) Insert(data []byte) error {
	if bloomFilter.mem != nil {
		bloomFilter.lock.Lock()
		defer bloomFilter.lock.Unlock()
	}
	return bloomFilter.filter.setMulti(bloomFilter.indexes(data))
}

// Lookup reports whether _data_ may have been inserted. False positives are
// possible at the configured rate; false negatives are not.
func (bloomFilter *BloomFilter) Lookup(data []byte) (bool, error) {
	if bloomFilter.mem != nil {
		bloomFilter.lock.RLock()
		defer bloomFilter.lock.RUnlock()
	}
	present, err := bloomFilter.filter.hasMulti(bloomFilter.indexes(data))
	if err != nil {
		return false, err
	}
	for _, ok := range present {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// InsertString writes a string into the bloom filter.
func (bloomFilter *BloomFilter) InsertString(data string) error {
	return bloomFilter.Insert([]byte(data))
}

// LookupString reports whether a string may have been inserted.
func (bloomFilter *BloomFilter) LookupString(data string) (bool, error) {
	return bloomFilter.Lookup([]byte(data))
}

// GetCap returns the size of the underlying bitset.
func (bloomFilter *BloomFilter) GetCap() uint {
	return bloomFilter.size
}

// GetNumHashes returns the number of hash functions applied per entrant.
func (bloomFilter *BloomFilter) GetNumHashes() uint {
	return bloomFilter.numHashes
}

// BloomPositiveRate returns the theoretical false positive rate for the
// current fill.
func (bloomFilter *BloomFilter) BloomPositiveRate() (float64, error) {
	var count uint
	if bloomFilter.mem != nil {
		bloomFilter.lock.RLock()
		count = bloomFilter.mem.Count()
		bloomFilter.lock.RUnlock()
	} else {
		var err error
		count, err = bloomFilter.redis.Count()
		if err != nil {
			return 0, err
		}
	}
	return math.Pow(float64(count)/float64(bloomFilter.size), float64(bloomFilter.numHashes)), nil
}

// Equals reports whether two bloom filters have identical geometry and bits.
// Both filters must use the same backing flavor.
func (aFilter *BloomFilter) Equals(bFilter *BloomFilter) (bool, error) {
	if aFilter.size != bFilter.size || aFilter.numHashes != bFilter.numHashes {
		return false, nil
	}
	if aFilter.mem != nil && bFilter.mem != nil {
		return aFilter.mem.Equal(bFilter.mem), nil
	}
	if aFilter.redis != nil && bFilter.redis != nil {
		return aFilter.redis.Equal(bFilter.redis)
	}
	return false, fmt.Errorf("gobitset: cannot compare filters with different backing bitsets")
}
