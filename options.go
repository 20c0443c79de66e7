package internpool

import "math"

// Option configures a Table at construction, following the functional
// options pattern: New accepts a variadic list of Option values so the
// constructor's signature never has to change as configuration grows.
type Option func(*config) error

type config struct {
	maxCount    int
	maxLength   int
	initialCap  int
}

func defaultConfig() config {
	return config{
		maxCount:   0, // unbounded
		maxLength:  math.MaxInt32,
		initialCap: 1,
	}
}

// WithMaxCount bounds the table to at most n live entries. Once full, an
// insert synchronously evicts a churn-pool victim first (spec §4.1
// "Eviction at capacity"). n must be positive.
func WithMaxCount(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return newArgumentError("maxCount", "must be positive")
		}
		c.maxCount = n
		return nil
	}
}

// WithMaxLength caps the length of candidates the table will store.
// Longer candidates are still returned to the caller (freshly
// materialized) but never occupy a slot (spec §3 invariant 3). n must be
// positive.
func WithMaxLength(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return newArgumentError("maxLength", "must be positive")
		}
		c.maxLength = n
		return nil
	}
}

// WithInitialCapacity pre-sizes the backing arrays to the next prime at
// or above n, avoiding early resizes for a table whose eventual size is
// known in advance. n must be non-negative.
func WithInitialCapacity(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return newArgumentError("initialCapacity", "must not be negative")
		}
		c.initialCap = n
		return nil
	}
}
