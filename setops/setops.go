// Package setops supplies the general collection-style set operations
// spec §1 names as an out-of-core collaborator ("set algebra over
// enumerated values... is expected to live alongside the pool, not
// inside it"), operating purely over the string sequences an
// internpool.Table or shard.Pool's Enumerate produces.
package setops

import "iter"

// Union returns the distinct values present in either a or b.
func Union(a, b iter.Seq[string]) []string {
	seen := make(map[string]struct{})
	for v := range a {
		seen[v] = struct{}{}
	}
	for v := range b {
		seen[v] = struct{}{}
	}
	return keys(seen)
}

// Intersect returns the distinct values present in both a and b.
func Intersect(a, b iter.Seq[string]) []string {
	inA := make(map[string]struct{})
	for v := range a {
		inA[v] = struct{}{}
	}
	result := make(map[string]struct{})
	for v := range b {
		if _, ok := inA[v]; ok {
			result[v] = struct{}{}
		}
	}
	return keys(result)
}

// Except returns the distinct values present in a but not in b.
func Except(a, b iter.Seq[string]) []string {
	inB := make(map[string]struct{})
	for v := range b {
		inB[v] = struct{}{}
	}
	result := make(map[string]struct{})
	for v := range a {
		if _, ok := inB[v]; !ok {
			result[v] = struct{}{}
		}
	}
	return keys(result)
}

// Equals reports whether a and b contain the same set of distinct
// values, ignoring order and duplicate occurrences.
func Equals(a, b iter.Seq[string]) bool {
	inA := make(map[string]struct{})
	for v := range a {
		inA[v] = struct{}{}
	}
	inB := make(map[string]struct{})
	for v := range b {
		inB[v] = struct{}{}
	}
	if len(inA) != len(inB) {
		return false
	}
	for v := range inA {
		if _, ok := inB[v]; !ok {
			return false
		}
	}
	return true
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	return out
}
