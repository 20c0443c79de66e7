package internpool

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternDedupesEqualValues(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	a, err := table.Intern("hello")
	require.NoError(t, err)
	b, err := table.Intern("hello")
	require.NoError(t, err)
	assert.Equal(t, a, b, "expected equal values to intern to the same string")

	stats := table.Stats()
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, int64(2), stats.Considered)
	assert.Equal(t, int64(1), stats.Added)
	assert.Equal(t, int64(1), stats.Deduped())
}

func TestInternEmptyStringNeverOccupiesASlot(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	v, err := table.Intern("")
	require.NoError(t, err)
	assert.Equal(t, "", v)
	assert.Equal(t, 0, table.Stats().Count)
}

func TestInternBeyondMaxLengthIsNotStored(t *testing.T) {
	table, err := New(WithMaxLength(4))
	require.NoError(t, err)

	long := "this value is longer than four bytes"
	v, err := table.Intern(long)
	require.NoError(t, err)
	assert.Equal(t, long, v, "expected the over-length candidate to be returned unchanged")
	assert.False(t, table.Contains(long), "over-length candidate should never be stored")
	assert.Equal(t, 0, table.Stats().Count)
}

func TestInternNullable(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	got, err := table.InternNullable(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, int64(1), table.Stats().Considered, "expected a nil candidate to still count toward Considered")

	s := "value"
	got, err = table.InternNullable(&s)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "value", *got)
}

func TestContainsAndRemove(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	_, err = table.Intern("value")
	require.NoError(t, err)
	assert.True(t, table.Contains("value"), "expected Contains to find the interned value")
	assert.True(t, table.Remove("value"), "expected Remove to report the value was present")
	assert.False(t, table.Contains("value"), "expected Contains to be false after Remove")
	assert.False(t, table.Remove("value"), "expected a second Remove to report false")
}

func TestEvictionAtCapacityPrefersSingleUseEntries(t *testing.T) {
	table, err := New(WithMaxCount(2))
	require.NoError(t, err)

	_, err = table.Intern("a")
	require.NoError(t, err)
	_, err = table.Intern("b")
	require.NoError(t, err)
	// Refresh "a" so "b" is the sole gen-0 (single-use) entry.
	_, err = table.Intern("a")
	require.NoError(t, err)
	_, err = table.Intern("c")
	require.NoError(t, err)

	assert.False(t, table.Contains("b"), "expected the single-use entry 'b' to have been evicted")
	assert.True(t, table.Contains("a"), "expected 'a' (reused) to remain")
	assert.True(t, table.Contains("c"), "expected 'c' (newly inserted) to remain")
	assert.Equal(t, int64(1), table.Stats().Evicted)
}

func TestEnumerateYieldsEveryLiveValue(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	want := map[string]bool{"a": true, "b": true, "c": true}
	for v := range want {
		_, err := table.Intern(v)
		require.NoError(t, err)
	}
	got := map[string]bool{}
	for v := range table.Enumerate() {
		got[v] = true
	}
	assert.Equal(t, want, got)
}

func TestEnumerateStopsWhenYieldReturnsFalse(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	for _, v := range []string{"a", "b", "c"} {
		_, err := table.Intern(v)
		require.NoError(t, err)
	}
	count := 0
	for range table.Enumerate() {
		count++
		if count == 1 {
			break
		}
	}
	assert.Equal(t, 1, count, "expected iteration to stop after the first yield")
}

func TestClearResetsLiveStateNotLifetimeCounters(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	_, err = table.Intern("a")
	require.NoError(t, err)
	table.Clear()
	assert.Equal(t, 0, table.Stats().Count)
	assert.Equal(t, int64(1), table.Stats().Added, "expected lifetime Added to survive Clear")
	assert.False(t, table.Contains("a"), "expected 'a' to be gone after Clear")
}

func TestEnsureCapacityAndTrimExcess(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	require.NoError(t, table.EnsureCapacity(1000))
	assert.GreaterOrEqual(t, len(table.entries), 1000, "expected backing array to grow to at least 1000")

	_, err = table.Intern("a")
	require.NoError(t, err)
	table.TrimExcess()
	assert.Less(t, len(table.entries), 1000, "expected TrimExcess to shrink the backing array")
	assert.True(t, table.Contains("a"), "expected 'a' to survive TrimExcess")
}

func TestEnsureCapacityRejectsNegative(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	assert.Error(t, table.EnsureCapacity(-1))
}

func TestHashModeFlipsAfterLongChainWalk(t *testing.T) {
	// A large initial capacity keeps allocSlot from ever triggering a
	// resize mid-loop, which would otherwise recompute the bucket array
	// this test deliberately collapses to a single bucket below.
	table, err := New(WithInitialCapacity(1000))
	require.NoError(t, err)
	assert.Equal(t, uint8(hashModeDeterministic), table.Mode(), "expected a fresh table to start in deterministic mode")

	// Force every insert into bucket 0 so the chain grows past the
	// rehash threshold, triggering the one-way flip to randomized mode.
	table.buckets = make([]int32, 1)
	table.bucketsMul = fastModMultiplier(1)
	for i := 0; i < chainLengthRehashThreshold+5; i++ {
		_, err := table.Intern("value-" + strconv.Itoa(i))
		require.NoError(t, err)
	}
	assert.Equal(t, uint8(hashModeRandomized), table.Mode(), "expected the table to have flipped to randomized mode")
}

func TestInternPrecomputedHashRecomputesOnStaleMode(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	staleHash := hashValue("value", hashModeRandomized)
	v, err := table.InternPrecomputedHash("value", staleHash, uint8(hashModeRandomized))
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.True(t, table.Contains("value"), "expected the value to have been inserted despite the stale mode snapshot")
}
