package internpool

import (
	"iter"
	"strings"
)

// Table is a single-thread, open-addressed hash map of interned strings.
// It is the core described by spec §4.1: a bucket array of chain heads
// parallel to an entry array, a free-list threaded through freed slots,
// and an attached churn pool used to pick eviction victims when bounded.
//
// A Table assumes single-goroutine access per critical section; it does
// none of its own locking. Pool (the shard/ package) is what makes this
// safe to share across goroutines, one mutex per shard.
type Table struct {
	buckets    []int32 // 1-based chain head per bucket; 0 == empty
	bucketsMul uint64  // fastmod reciprocal for len(buckets)
	entries    []entry

	freeHead  int32 // -1 == no free slot
	freeCount int
	nextSlot  int32 // cursor into entries never yet allocated

	count      int
	currentUse int64 // monotonic use-order counter, stepped by 2 per op

	considered int64
	added      int64
	evicted    int64

	mode      hashMode
	maxCount  int
	maxLength int

	churn churnPool
}

// New constructs a Table. With no options it is unbounded in both count
// and candidate length.
func New(opts ...Option) (*Table, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	size := nextPrime(cfg.initialCap)
	t := &Table{
		buckets:    make([]int32, size),
		bucketsMul: fastModMultiplier(uint32(size)),
		entries:    make([]entry, size),
		freeHead:   -1,
		maxCount:   cfg.maxCount,
		maxLength:  cfg.maxLength,
	}
	return t, nil
}

// Intern returns the canonical stored instance equal to s, inserting s if
// no equal value is present. An empty s returns the canonical empty
// string without occupying a slot; an s longer than the table's
// configured max length is returned as a freshly materialized, unshared
// copy (spec §3 invariants 2-3).
func (t *Table) Intern(s string) (string, error) {
	t.considered++

	if len(s) == 0 {
		return "", nil
	}
	if len(s) > t.maxLength {
		return strings.Clone(s), nil
	}
	return t.lookupOrInsert(s)
}

// InternNullable is the nullable-native-string overload (spec §6): a nil
// s returns nil without touching count, but still counts once toward
// Considered and once toward Deduped (spec §8 "Nullable behavior").
func (t *Table) InternNullable(s *string) (*string, error) {
	if s == nil {
		t.considered++
		return nil, nil
	}
	v, err := t.Intern(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// lookupOrInsert implements spec §4.1's lookup_or_insert for an already
// precondition-checked candidate (non-empty, length <= max length).
func (t *Table) lookupOrInsert(s string) (string, error) {
	return t.lookupOrInsertWithHash(s, hashValue(s, t.mode))
}

// Mode reports the table's current hashing mode (0 = deterministic, 1 =
// randomized), so a caller holding a cheap snapshot outside a lock (the
// sharded pool's fast path, spec §4.3) can tell whether a hash it
// precomputed is still valid once it acquires the lock.
func (t *Table) Mode() uint8 { return uint8(t.mode) }

// InternPrecomputedHash is the fast-path entry point for a caller (the
// sharded pool) that already hashed s under a snapshot of the table's
// mode before acquiring the lock that makes calling into Table safe. If
// the table's mode changed since the snapshot was taken, the hash is
// recomputed (spec §4.3 "Fast path").
func (t *Table) InternPrecomputedHash(s string, hash int32, computedUnderMode uint8) (string, error) {
	t.considered++

	if len(s) == 0 {
		return "", nil
	}
	if len(s) > t.maxLength {
		return strings.Clone(s), nil
	}
	if hashMode(computedUnderMode) != t.mode {
		hash = hashValue(s, t.mode)
	}
	return t.lookupOrInsertWithHash(s, hash)
}

func (t *Table) lookupOrInsertWithHash(s string, hash int32) (string, error) {
	bucket := t.bucketIndex(hash)

	i := t.buckets[bucket] - 1
	chainLen := 0
	for i >= 0 {
		chainLen++
		if chainLen > len(t.entries) {
			return "", newConcurrentModificationError(len(t.entries))
		}
		e := &t.entries[i]
		if e.hash == hash && e.value == s {
			return t.refresh(int32(i)), nil
		}
		i = e.next
	}

	if t.mode == hashModeDeterministic && chainLen >= chainLengthRehashThreshold {
		t.flipToRandomized()
		return t.lookupOrInsertWithHash(s, hashValue(s, t.mode))
	}

	return t.insertNew(hash, bucket, s), nil
}

// refresh marks an entry freshly used: generation forced to 1, removed
// from its churn list first if it was being tracked there (spec §3
// invariant 4, §4.2 "Churn-removal on hit").
func (t *Table) refresh(idx int32) string {
	e := &t.entries[idx]
	if inChurn(e.lastUse) {
		t.churn.removeOnHit(e.lastUse)
	}
	t.currentUse += 2
	e.lastUse = t.currentUse | 1
	return e.value
}

// insertNew adds s as a brand-new entry, evicting a churn-pool victim
// first if the table is bounded and already at capacity (spec §4.1
// "Eviction at capacity").
func (t *Table) insertNew(hash int32, bucket uint32, s string) string {
	if t.maxCount > 0 && t.count+1 > t.maxCount {
		t.evictOne()
		bucket = t.bucketIndex(hash)
	}

	idx := t.allocSlot()
	t.currentUse += 2
	stamp := t.currentUse // generation 0: low bit already clear

	e := &t.entries[idx]
	e.hash = hash
	e.next = t.buckets[bucket] - 1
	e.value = s
	e.lastUse = stamp

	t.buckets[bucket] = idx + 1
	t.count++
	t.added++
	return s
}

// allocSlot returns a slot index ready to receive a new entry, preferring
// a freed slot over a virgin one, and growing the backing arrays if
// neither is available (spec §4.1 "Slot allocation").
func (t *Table) allocSlot() int32 {
	if t.freeHead != -1 {
		idx := t.freeHead
		t.freeHead = freeListNext(&t.entries[idx])
		t.freeCount--
		return idx
	}
	if int(t.nextSlot) == len(t.entries) {
		t.resizeTo(expandedSize(t.count))
	}
	idx := t.nextSlot
	t.nextSlot++
	return idx
}

func (t *Table) bucketIndex(hash int32) uint32 {
	return fastMod(uint32(hash), uint32(len(t.buckets)), t.bucketsMul)
}

// evictOne removes one churn-pool victim to make room for an insert.
func (t *Table) evictOne() {
	idx, ok := t.churn.selectVictim(t)
	if !ok {
		return
	}
	t.unlinkAndFree(idx)
	t.evicted++
}

// unlinkAndFree removes entry idx from its bucket chain and threads its
// slot onto the free list.
func (t *Table) unlinkAndFree(idx int32) {
	e := &t.entries[idx]
	bucket := t.bucketIndex(e.hash)

	cur := t.buckets[bucket] - 1
	prev := int32(-1)
	for cur != idx {
		prev = cur
		cur = t.entries[cur].next
	}
	if prev == -1 {
		t.buckets[bucket] = e.next + 1
	} else {
		t.entries[prev].next = e.next
	}

	e.value = ""
	e.hash = 0
	e.lastUse = 0
	setFreeListNext(e, t.freeHead)
	t.freeHead = idx
	t.freeCount++
	t.count--
}

// flipToRandomized performs the table's one, irreversible switchover from
// deterministic to randomized hashing (spec §4.1). Every live entry is
// rehashed and the bucket chains rebuilt before any lookup observes the
// new mode, so no caller ever sees a half-rehashed table (spec §9
// "Hash-mode flip").
func (t *Table) flipToRandomized() {
	t.mode = hashModeRandomized
	for i := range t.entries {
		if i >= int(t.nextSlot) {
			break
		}
		e := &t.entries[i]
		if isFreeSlot(e) {
			continue
		}
		e.hash = hashValue(e.value, t.mode)
	}
	t.rebuildBuckets()
}

func (t *Table) rebuildBuckets() {
	for i := range t.buckets {
		t.buckets[i] = 0
	}
	for i := range t.entries {
		e := &t.entries[i]
		if isFreeSlot(e) {
			continue
		}
		if i >= int(t.nextSlot) {
			continue
		}
		bucket := t.bucketIndex(e.hash)
		e.next = t.buckets[bucket] - 1
		t.buckets[bucket] = int32(i) + 1
	}
}

// resizeTo reallocates the backing arrays to newSize, compacting live
// entries to the front and rebuilding bucket chains. Used both to grow on
// overflow and to shrink in TrimExcess.
func (t *Table) resizeTo(newSize int) {
	newEntries := make([]entry, newSize)
	n := int32(0)
	for i := range t.entries {
		e := &t.entries[i]
		if isFreeSlot(e) || i >= int(t.nextSlot) {
			continue
		}
		newEntries[n] = *e
		n++
	}

	t.entries = newEntries
	t.buckets = make([]int32, newSize)
	t.bucketsMul = fastModMultiplier(uint32(newSize))
	t.freeHead = -1
	t.freeCount = 0
	t.nextSlot = n
	t.rebuildBuckets()
}

// Contains reports whether a value equal to s is currently stored,
// without refreshing its use stamp.
func (t *Table) Contains(s string) bool {
	if len(s) == 0 || len(s) > t.maxLength {
		return false
	}
	hash := hashValue(s, t.mode)
	bucket := t.bucketIndex(hash)
	i := t.buckets[bucket] - 1
	for i >= 0 {
		e := &t.entries[i]
		if e.hash == hash && e.value == s {
			return true
		}
		i = e.next
	}
	return false
}

// Remove deletes the entry equal to s, if present, reporting whether
// anything was removed.
func (t *Table) Remove(s string) bool {
	if len(s) == 0 || len(s) > t.maxLength {
		return false
	}
	hash := hashValue(s, t.mode)
	bucket := t.bucketIndex(hash)
	i := t.buckets[bucket] - 1
	for i >= 0 {
		e := &t.entries[i]
		if e.hash == hash && e.value == s {
			t.unlinkAndFree(int32(i))
			return true
		}
		i = e.next
	}
	return false
}

// Enumerate yields every stored value in an unspecified order (spec §6).
func (t *Table) Enumerate() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range t.entries {
			if i >= int(t.nextSlot) {
				break
			}
			e := &t.entries[i]
			if isFreeSlot(e) {
				continue
			}
			if !yield(e.value) {
				return
			}
		}
	}
}

// EnsureCapacity grows the backing arrays, if needed, to the next prime
// at or above n.
func (t *Table) EnsureCapacity(n int) error {
	if n < 0 {
		return newArgumentError("n", "must not be negative")
	}
	target := nextPrime(n)
	if target > len(t.entries) {
		t.resizeTo(target)
	}
	return nil
}

// TrimExcess shrinks the backing arrays down to the next prime at or
// above the current live count.
func (t *Table) TrimExcess() {
	target := nextPrime(t.count)
	if target < len(t.entries) {
		t.resizeTo(target)
	}
}

// Clear removes every entry. Lifetime counters (Considered, Added,
// Evicted) are left untouched; only current-state count is reset.
func (t *Table) Clear() {
	size := nextPrime(1)
	t.buckets = make([]int32, size)
	t.bucketsMul = fastModMultiplier(uint32(size))
	t.entries = make([]entry, size)
	t.freeHead = -1
	t.freeCount = 0
	t.nextSlot = 0
	t.count = 0
	t.churn = churnPool{}
}

// Stats returns a snapshot of the table's counters.
func (t *Table) Stats() Stats {
	return Stats{
		Count:      t.count,
		Considered: t.considered,
		Added:      t.added,
		Evicted:    t.evicted,
	}
}
