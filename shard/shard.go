// Package shard implements the thread-safe, sharded façade over
// multiple internpool.Table instances described by spec §4.3: a fixed
// array of shards selected by the candidate's first byte, each guarded
// by its own mutex, with no lock ever spanning more than one shard.
package shard

import (
	"sync"
	"sync/atomic"

	"github.com/dreamware/internpool"
)

// shardCount is the fixed power-of-two shard count (spec §4.3 "Shard
// count").
const shardCount = 32

// perShardMaxCount and perShardInitialCapacity are the shared pool's
// fixed shard shape (spec §4.3 "Per-shard capacity").
const (
	perShardMaxCount       = 10000
	perShardInitialCapacity = 1
)

// maxSharedLength is the shared pool's candidate length cap; anything
// longer is transcoded and returned fresh without entering any shard
// table (spec §4.3 "Max length for the shared pool").
const maxSharedLength = 640

// shardSlot owns one lazily constructed table and the mutex that
// serializes all access to it. The table pointer is constructed with a
// single-check-then-compare-and-swap so that two goroutines racing to use
// a cold shard for the first time never build two tables (spec §4.3).
type shardSlot struct {
	mu    sync.Mutex
	table atomic.Pointer[internpool.Table]

	// mode mirrors the live table's hashing mode so the fast path can
	// snapshot it without taking mu (spec §4.3 "Fast path").
	mode atomic.Uint32

	// released holds the cumulative stats of a table that was detached
	// under memory pressure (spec §4.4 step 3); nil until that happens.
	released atomic.Pointer[internpool.Stats]
}

func (s *shardSlot) ensureTable() *internpool.Table {
	if p := s.table.Load(); p != nil {
		return p
	}
	candidate, err := internpool.New(
		internpool.WithMaxCount(perShardMaxCount),
		internpool.WithMaxLength(maxSharedLength),
		internpool.WithInitialCapacity(perShardInitialCapacity),
	)
	if err != nil {
		// The options above are constants known to be valid; this
		// would only fail if that invariant were broken.
		panic(err)
	}
	if s.table.CompareAndSwap(nil, candidate) {
		return candidate
	}
	return s.table.Load()
}

// intern runs the fast path described in spec §4.3: hash computed on a
// mode snapshot outside the lock, then the real operation under the
// shard's own lock.
func (s *shardSlot) intern(value string) (string, error) {
	modeSnapshot := uint8(s.mode.Load())
	hash := internpool.HashValue(value, modeSnapshot)

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ensureTable()
	result, err := t.InternPrecomputedHash(value, hash, modeSnapshot)
	s.mode.Store(uint32(t.Mode()))
	return result, err
}

func (s *shardSlot) contains(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureTable().Contains(value)
}

func (s *shardSlot) remove(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureTable().Remove(value)
}

func (s *shardSlot) ensureCapacity(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureTable().EnsureCapacity(n)
}

func (s *shardSlot) trimExcess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureTable().TrimExcess()
}

func (s *shardSlot) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureTable().Clear()
}

// detach atomically releases this shard's table under memory pressure,
// retaining its cumulative counters in s.released so the pool's
// aggregated Stats keeps counting history the table itself can no longer
// report (spec §4.4 step 3).
func (s *shardSlot) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table.Load()
	if t == nil {
		return
	}

	snap := t.Stats()
	snap.Count = 0
	if prev := s.released.Load(); prev != nil {
		snap.Considered += prev.Considered
		snap.Added += prev.Added
		snap.Evicted += prev.Evicted
	}
	s.released.Store(&snap)
	s.table.Store(nil)
	s.mode.Store(0)
}

// stats merges this shard's live table snapshot, if any, with the
// cumulative totals of a table this shard previously detached (spec
// §4.4 step 3); the counters of a released table must keep counting
// toward the pool's lifetime totals even after the table itself is gone.
func (s *shardSlot) stats() internpool.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := internpool.Stats{}
	if p := s.table.Load(); p != nil {
		total = p.Stats()
	}
	if released := s.released.Load(); released != nil {
		total.Considered += released.Considered
		total.Added += released.Added
		total.Evicted += released.Evicted
	}
	return total
}

func (s *shardSlot) enumerate(yield func(string) bool) bool {
	s.mu.Lock()
	t := s.table.Load()
	if t == nil {
		s.mu.Unlock()
		return true
	}
	values := make([]string, 0, t.Stats().Count)
	for v := range t.Enumerate() {
		values = append(values, v)
	}
	s.mu.Unlock()

	for _, v := range values {
		if !yield(v) {
			return false
		}
	}
	return true
}

// shardIndex routes a value to exactly one shard by the low five bits of
// its first byte (spec §3 invariant 8, §4.3). An empty value has no first
// byte and is routed to shard 0, matching the Table-level handling of
// empty candidates (spec §3 invariant 2).
func shardIndex(value string) int {
	if len(value) == 0 {
		return 0
	}
	return int(value[0] & (shardCount - 1))
}
