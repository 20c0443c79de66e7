package setops

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seqOf(values ...string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}
}

func sorted(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}

func TestUnion(t *testing.T) {
	got := sorted(Union(seqOf("a", "b"), seqOf("b", "c")))
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestIntersect(t *testing.T) {
	got := sorted(Intersect(seqOf("a", "b", "c"), seqOf("b", "c", "d")))
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestExcept(t *testing.T) {
	got := sorted(Except(seqOf("a", "b", "c"), seqOf("b")))
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestEquals(t *testing.T) {
	assert.True(t, Equals(seqOf("a", "b", "b"), seqOf("b", "a")), "expected Equals to ignore order and duplicates")
	assert.False(t, Equals(seqOf("a", "b"), seqOf("a", "c")), "expected Equals to report false for differing sets")
}
