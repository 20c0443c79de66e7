package shard

import (
	"iter"
	"strings"
	"sync/atomic"

	"github.com/dreamware/internpool"
)

// Pool is the process-wide, thread-safe intern pool: a fixed array of
// shards, each independently lockable, with an opportunistic background
// trimmer reacting to host memory pressure (spec §4.3, §4.4).
type Pool struct {
	shards [shardCount]shardSlot

	// overflowConsidered tracks candidates that bypassed every shard
	// table because they exceeded maxSharedLength, and nilConsidered
	// tracks nil NativeString candidates (spec §4.3; spec §8 "Nullable
	// behavior"): both still count toward Considered/Deduped in the
	// aggregated snapshot even though no shard ever saw them.
	overflowConsidered atomic.Int64
	nilConsidered      atomic.Int64

	trimmer trimmer
}

// NewPool constructs a sharded pool and arms its trim scheduler.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{}
	p.trimmer.logger = defaultLogger()
	for _, opt := range opts {
		opt(p)
	}
	p.trimmer.start(p)
	return p
}

// Shared is the process-wide pool, lazily constructed on first use
// (single-check then compare-and-swap, spec §9 "Global state").
var (
	sharedPool     atomic.Pointer[Pool]
)

// Shared returns the lazily constructed, process-wide pool instance.
func Shared() *Pool {
	if p := sharedPool.Load(); p != nil {
		return p
	}
	candidate := NewPool()
	if sharedPool.CompareAndSwap(nil, candidate) {
		return candidate
	}
	candidate.trimmer.stop()
	return sharedPool.Load()
}

// Intern returns the canonical instance for value, routing to the shard
// selected by its first byte. Values longer than maxSharedLength are
// copied and returned fresh without entering any shard (spec §4.3).
func (p *Pool) Intern(value string) (string, error) {
	if len(value) > maxSharedLength {
		p.overflowConsidered.Add(1)
		return strings.Clone(value), nil
	}
	return p.shards[shardIndex(value)].intern(value)
}

// InternNullable is the nullable-native-string overload (spec §6).
func (p *Pool) InternNullable(value *string) (*string, error) {
	if value == nil {
		p.nilConsidered.Add(1)
		return nil, nil
	}
	v, err := p.Intern(*value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Contains reports whether value is present in its shard.
func (p *Pool) Contains(value string) bool {
	if len(value) > maxSharedLength {
		return false
	}
	return p.shards[shardIndex(value)].contains(value)
}

// Remove deletes value from its shard, reporting whether it was present.
func (p *Pool) Remove(value string) bool {
	if len(value) > maxSharedLength {
		return false
	}
	return p.shards[shardIndex(value)].remove(value)
}

// EnsureCapacity asks every shard to ensure room for n entries. Shards
// that have not yet been touched are constructed to apply the request.
func (p *Pool) EnsureCapacity(n int) error {
	for i := range p.shards {
		if err := p.shards[i].ensureCapacity(n); err != nil {
			return err
		}
	}
	return nil
}

// TrimExcess shrinks every constructed shard's backing arrays.
func (p *Pool) TrimExcess() {
	for i := range p.shards {
		if p.shards[i].table.Load() != nil {
			p.shards[i].trimExcess()
		}
	}
}

// Clear empties every constructed shard.
func (p *Pool) Clear() {
	for i := range p.shards {
		if p.shards[i].table.Load() != nil {
			p.shards[i].clear()
		}
	}
}

// Enumerate yields every value across every shard, in an unspecified
// order, without holding more than one shard's lock at a time.
func (p *Pool) Enumerate() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range p.shards {
			if p.shards[i].table.Load() == nil {
				continue
			}
			if !p.shards[i].enumerate(yield) {
				return
			}
		}
	}
}

// Stats aggregates counters across every present shard plus the
// cumulative totals of shards released under memory pressure (spec §4.3
// "Global stats"), plus candidates that overflowed maxSharedLength.
func (p *Pool) Stats() internpool.Stats {
	total := internpool.Stats{Considered: p.overflowConsidered.Load() + p.nilConsidered.Load()}
	for i := range p.shards {
		snap := p.shards[i].stats()
		total.Count += snap.Count
		total.Considered += snap.Considered
		total.Added += snap.Added
		total.Evicted += snap.Evicted
	}
	return total
}

// Close stops the background trim scheduler. Not required for process
// lifetime use of Shared(); useful for tests that construct private pools.
func (p *Pool) Close() {
	p.trimmer.stop()
}
