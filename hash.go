package internpool

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
)

// hashMode selects which of the two hash families entry.hash values were
// computed under. All live entries in a table hash consistently under the
// table's current mode (spec §3 invariant 7).
//
// A Go string's code units are its UTF-8 bytes; that is what both hash
// families below consume, playing the role the spec's "32-bit word of
// code units" plays for a 16-bit-char runtime.
type hashMode uint8

const (
	hashModeDeterministic hashMode = iota
	hashModeRandomized
)

// chainLengthRehashThreshold is the traversed-chain length that, during a
// single insertion, triggers the one-way flip from deterministic to
// randomized hashing (spec §4.1 "Hash functions").
const chainLengthRehashThreshold = 100

var (
	processSeedOnce sync.Once
	processSeed     uint64
)

// processHashSeed returns the per-process Marvin seed, generated once and
// held for the process's lifetime (spec §9 "Global state").
func processHashSeed() uint64 {
	processSeedOnce.Do(func() {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			// crypto/rand failure on a supported platform is not
			// recoverable locally; fall back to a fixed, clearly
			// non-secret seed rather than leaving hashing undefined.
			processSeed = 0x9E3779B97F4A7C15
			return
		}
		processSeed = binary.LittleEndian.Uint64(b[:])
	})
	return processSeed
}

// hashValue computes the hash of s under the given mode. The table is the
// sole caller of this in the general case; the sharded pool's fast path
// (spec §4.3) calls it directly, outside the shard lock, on a snapshot of
// the shard's mode.
func hashValue(s string, mode hashMode) int32 {
	if mode == hashModeRandomized {
		return marvinHash(s, processHashSeed())
	}
	return djb2DoubleHash(s)
}

// HashValue exposes hashValue to callers outside this package (the
// sharded pool's fast path, spec §4.3) that need to hash a candidate
// against a mode snapshot before acquiring the shard lock that makes
// calling into Table safe.
func HashValue(s string, modeSnapshot uint8) int32 {
	return hashValue(s, hashMode(modeSnapshot))
}

// djb2DoubleHash is the deterministic hash: a 5381-seeded double running
// hash consuming bytes two at a time, each lane updated by a
// rotate-left-5-then-xor step, combined the same way .NET's legacy
// non-randomized string hash combines its two lanes.
func djb2DoubleHash(s string) int32 {
	h1 := int32(5381)
	h2 := h1

	n := len(s)
	i := 0
	for ; i+1 < n; i += 2 {
		h1 = rotl5(h1) ^ int32(s[i])
		h2 = rotl5(h2) ^ int32(s[i+1])
	}
	if i < n {
		h1 = rotl5(h1) ^ int32(s[i])
	}
	return h1 + h2*1566083941
}

func rotl5(v int32) int32 {
	u := uint32(v)
	return int32((u << 5) | (u >> 27))
}

// marvinHash is a Marvin-style keyed hash: the seed is split into two
// 32-bit state words, input bytes are folded in four at a time as 32-bit
// blocks with an add-rotate-xor mixing step, and a final mix avalanches
// the state once the (possibly partial) tail block is folded in with a
// length-terminating high bit. Unlike djb2DoubleHash it is keyed, so an
// attacker who cannot observe the process seed cannot predict which
// inputs collide; that is why the table flips to this mode under
// chain-length abuse (spec §4.1).
func marvinHash(s string, seed uint64) int32 {
	p0 := uint32(seed)
	p1 := uint32(seed >> 32)

	n := len(s)
	i := 0
	for ; i+4 <= n; i += 4 {
		block := uint32(s[i]) | uint32(s[i+1])<<8 | uint32(s[i+2])<<16 | uint32(s[i+3])<<24
		p0 += block
		p0, p1 = marvinBlock(p0, p1)
	}

	var tail uint32
	switch n - i {
	case 3:
		tail = uint32(s[i]) | uint32(s[i+1])<<8 | uint32(s[i+2])<<16 | 0x8000_0000
	case 2:
		tail = uint32(s[i]) | uint32(s[i+1])<<8 | 0x0080_0000
	case 1:
		tail = uint32(s[i]) | 0x0000_8000
	default:
		tail = 0x0000_0080
	}
	p0 += tail
	p0, p1 = marvinBlock(p0, p1)
	p0, p1 = marvinBlock(p0, p1)

	return int32(p1 ^ p0)
}

func marvinBlock(p0, p1 uint32) (uint32, uint32) {
	p1 ^= p0
	p0 = (p0 << 20) | (p0 >> 12)
	p0 += p1
	p1 = (p1 << 9) | (p1 >> 23)
	p1 ^= p0
	p0 = (p0 << 27) | (p0 >> 5)
	p0 += p1
	p1 = (p1 << 19) | (p1 >> 13)
	return p0, p1
}
