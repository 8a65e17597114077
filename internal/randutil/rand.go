// Package randutil derives the random sources used for shuffling.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Two calls with
// the same seed produce the same shuffle sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForSeed returns New(seed) for a non-zero seed. A zero seed means "not
// configured" and yields a source seeded from crypto/rand.
func ForSeed(seed int64) *rand.Rand {
	if seed != 0 {
		return New(seed)
	}
	return New(Seed())
}

// Seed returns a fresh non-zero seed from crypto/rand
func Seed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("randutil: failed to read random seed: " + err.Error())
	}
	s := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}

// Derive returns the seed for the n-th child of a base seed, so that a run of
// sessions started from one seed is reproducible.
func Derive(base int64, n int) int64 {
	s := int64(mix(uint64(base)+uint64(n)*goldenRatio64) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
