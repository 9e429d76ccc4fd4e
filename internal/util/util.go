// Package util holds small helpers shared by the gobitset packages.
package util

import (
	"math"
	"math/bits"
	"math/rand"
	"time"
	"unsafe"
)

var src = rand.NewSource(time.Now().UnixNano())

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

// Max returns the larger of two uints.
func Max(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two uints.
func Min(a, b uint) uint {
	if a < b {
		return a
	}
	return b
}

// CalculateFilterSize returns the bloom filter size for the desired number of
// entrants and false positive rate.
func CalculateFilterSize(length uint, errorRate float64) uint {
	return uint(math.Ceil(-((float64(length) * math.Log(errorRate)) / math.Pow(math.Log(2), 2))))
}

// CalculateNumHashes returns the number of hash functions for a bloom filter
// of the given size and number of entrants.
func CalculateNumHashes(size, length uint) uint {
	return uint(math.Ceil(float64((size / length)) * math.Log(2)))
}

// GenerateRandomString returns an alpha-numeric string of length n, used for
// Redis key generation.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	// A src.Int63() generates 63 random bits, enough for letterIdxMax characters!
	for i, cache, remain := n-1, src.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = src.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return *(*string)(unsafe.Pointer(&b))
}

// ReverseBitsPerByte reverses the bit order within every byte of b in place.
// Redis addresses bit 0 as the most significant bit of the first byte, so
// little-endian bit material must be reflected per byte on the way in and out.
func ReverseBitsPerByte(b []byte) {
	for i := range b {
		b[i] = bits.Reverse8(b[i])
	}
}
