package shard

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolInternDedupes(t *testing.T) {
	p := NewPool()
	defer p.Close()

	a, err := p.Intern("value")
	require.NoError(t, err)
	b, err := p.Intern("value")
	require.NoError(t, err)
	assert.Equal(t, a, b, "expected equal values to dedupe")

	stats := p.Stats()
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, int64(1), stats.Added)
	assert.Equal(t, int64(2), stats.Considered)
}

func TestPoolRoutesAcrossShards(t *testing.T) {
	p := NewPool()
	defer p.Close()

	for i := 0; i < 200; i++ {
		_, err := p.Intern(strconv.Itoa(i) + "-value")
		require.NoError(t, err)
	}
	assert.Equal(t, 200, p.Stats().Count, "expected 200 live values across shards")
	populated := 0
	for i := range p.shards {
		if p.shards[i].table.Load() != nil {
			populated++
		}
	}
	assert.Greater(t, populated, 1, "expected the values to be routed to more than one shard")
}

func TestPoolInternNullable(t *testing.T) {
	p := NewPool()
	defer p.Close()

	got, err := p.InternNullable(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, int64(1), p.Stats().Considered, "expected a nil candidate to count toward Considered")

	s := "value"
	got, err = p.InternNullable(&s)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "value", *got)
}

func TestPoolOverLengthBypassesShards(t *testing.T) {
	p := NewPool()
	defer p.Close()

	long := make([]byte, maxSharedLength+1)
	for i := range long {
		long[i] = 'a'
	}
	v, err := p.Intern(string(long))
	require.NoError(t, err)
	assert.Len(t, v, len(long), "expected the over-length candidate to be returned unchanged")
	assert.False(t, p.Contains(string(long)), "an over-length candidate should never be stored in any shard")
	assert.Equal(t, int64(1), p.Stats().Considered, "expected the overflow candidate to still count toward Considered")
}

func TestPoolContainsAndRemove(t *testing.T) {
	p := NewPool()
	defer p.Close()

	_, err := p.Intern("value")
	require.NoError(t, err)
	assert.True(t, p.Contains("value"), "expected Contains to find the interned value")
	assert.True(t, p.Remove("value"), "expected Remove to report present")
	assert.False(t, p.Contains("value"), "expected Contains to be false after Remove")
}

func TestPoolEnumerate(t *testing.T) {
	p := NewPool()
	defer p.Close()

	want := map[string]bool{"a": true, "b": true, "c": true}
	for v := range want {
		_, err := p.Intern(v)
		require.NoError(t, err)
	}
	got := map[string]bool{}
	for v := range p.Enumerate() {
		got[v] = true
	}
	for v := range want {
		assert.True(t, got[v], "Enumerate did not yield %q", v)
	}
}

func TestPoolClearAndTrimExcess(t *testing.T) {
	p := NewPool()
	defer p.Close()

	_, err := p.Intern("value")
	require.NoError(t, err)
	p.TrimExcess()
	assert.True(t, p.Contains("value"), "expected TrimExcess to preserve live values")
	p.Clear()
	assert.False(t, p.Contains("value"), "expected Clear to empty every shard")
}

func TestSharedIsProcessWide(t *testing.T) {
	a := Shared()
	b := Shared()
	assert.Same(t, a, b, "expected Shared() to always return the same pool instance")
}
