package internpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDjb2DoubleHashDeterministic(t *testing.T) {
	a := djb2DoubleHash("the quick brown fox")
	b := djb2DoubleHash("the quick brown fox")
	assert.Equal(t, a, b, "djb2DoubleHash should be deterministic")
}

func TestDjb2DoubleHashDistinguishesInputs(t *testing.T) {
	assert.NotEqual(t, djb2DoubleHash("abc"), djb2DoubleHash("abd"))
}

func TestMarvinHashKeyed(t *testing.T) {
	a := marvinHash("payload", 1)
	b := marvinHash("payload", 2)
	assert.NotEqual(t, a, b, "different seeds should (almost certainly) produce different hashes")
}

func TestMarvinHashStableForSeed(t *testing.T) {
	a := marvinHash("payload", 0xdeadbeef)
	b := marvinHash("payload", 0xdeadbeef)
	assert.Equal(t, a, b, "marvinHash should be stable for a fixed seed")
}

func TestMarvinHashAllTailLengths(t *testing.T) {
	for n := 0; n < 9; n++ {
		s := make([]byte, n)
		for i := range s {
			s[i] = byte('a' + i)
		}
		assert.NotPanics(t, func() { marvinHash(string(s), 42) })
	}
}

func TestHashValueDispatchesByMode(t *testing.T) {
	det := hashValue("value", hashModeDeterministic)
	assert.Equal(t, djb2DoubleHash("value"), det, "deterministic mode should dispatch to djb2DoubleHash")

	rnd := hashValue("value", hashModeRandomized)
	assert.Equal(t, marvinHash("value", processHashSeed()), rnd, "randomized mode should dispatch to marvinHash with the process seed")
}

func TestHashValueExportedWrapperMatches(t *testing.T) {
	assert.Equal(t, hashValue("value", hashModeDeterministic), HashValue("value", uint8(hashModeDeterministic)))
}
