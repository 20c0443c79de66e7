package internpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPrimeSmall(t *testing.T) {
	cases := map[int]int{0: 2, 1: 2, 2: 2, 3: 3, 4: 7, 8: 11}
	for in, want := range cases {
		assert.Equalf(t, want, nextPrime(in), "nextPrime(%d)", in)
	}
}

func TestNextPrimeBeyondTable(t *testing.T) {
	big := primeSizes[len(primeSizes)-1] + 1
	got := nextPrime(big)
	assert.True(t, isPrime(got), "nextPrime(%d) = %d is not prime", big, got)
	assert.GreaterOrEqual(t, got, big)
}

func TestFastModMatchesModulo(t *testing.T) {
	divisors := []uint32{2, 3, 7, 11, 97, 1000003}
	for _, d := range divisors {
		mul := fastModMultiplier(d)
		for _, v := range []uint32{0, 1, 2, d - 1, d, d + 1, 4294967295} {
			assert.Equalf(t, v%d, fastMod(v, d, mul), "fastMod(%d, %d)", v, d)
		}
	}
}
