package internpool

import "math/bits"

// primeSizes mirrors the small-prime table used by standard hash-table
// implementations to avoid repeated primality testing for common sizes;
// entries grow by roughly 1.2x (faster at the small end) up to 7,199,369
// to bound backing-array churn (spec §4.1 "Slot allocation").
var primeSizes = []int{
	3, 7, 11, 17, 23, 29, 37, 47, 59, 71, 89, 107, 131, 163, 197, 239, 293,
	353, 431, 521, 631, 761, 919, 1103, 1327, 1597, 1931, 2333, 2801, 3371,
	4049, 4861, 5839, 7013, 8419, 10103, 12143, 14591, 17519, 21023, 25229,
	30293, 36353, 43627, 52361, 62851, 75431, 90523, 108631, 130363, 156437,
	187751, 225307, 270371, 324449, 389357, 467237, 560689, 672827, 807403,
	968897, 1162687, 1395263, 1674319, 2009191, 2411033, 2893249, 3471899,
	4166287, 4999559, 5999471, 7199369,
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	limit := int(isqrt(n))
	for d := 3; d <= limit; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func isqrt(n int) int {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// nextPrime returns a prime >= min (spec §4.1's "resize to the next prime
// ≥ n"): 2 for min <= 2, else the first entry of the static table at or
// above min, which need not be the smallest such prime (4 yields 7, not
// 5). Beyond the table it returns the smallest prime >= min.
func nextPrime(min int) int {
	if min <= 2 {
		return 2
	}
	for _, p := range primeSizes {
		if p >= min {
			return p
		}
	}
	if min%2 == 0 {
		min++
	}
	for ; !isPrime(min); min += 2 {
	}
	return min
}

// expandedSize computes the next-prime backing size for a table that has
// just filled all `count` slots: at least 2*count+1 (spec §4.1).
func expandedSize(count int) int {
	return nextPrime(2*count + 1)
}

// fastModMultiplier precomputes Daniel Lemire's fastmod reciprocal for a
// divisor known in advance, so that bucket-index computation on a 64-bit
// target avoids a hardware division per probe (spec §4.1 "modulus
// computed via the precomputed fast-mod multiplier on 64-bit targets").
func fastModMultiplier(divisor uint32) uint64 {
	return ^uint64(0)/uint64(divisor) + 1
}

// fastMod returns value % divisor using the precomputed multiplier.
func fastMod(value uint32, divisor uint32, multiplier uint64) uint32 {
	hi, _ := bits.Mul64(multiplier*uint64(value), uint64(divisor))
	return uint32(hi)
}
