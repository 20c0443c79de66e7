package internpool

import "sort"

// churnListCapacity bounds each churn-pool generation to the 32 most
// eviction-worthy entries observed at the last regeneration (spec §3
// "Churn pool").
const churnListCapacity = 32

// churnEntry is the churn pool's snapshot of a table entry: its use-order
// stamp and its value, plus the entry's slot index so the table can flip
// the corresponding entry's sign bit without a second lookup. The spec
// (§9 "Reference graphs") describes the pool as holding only a
// `(last_use, value)` snapshot rather than a pointer; carrying the index
// alongside is an implementation convenience internal to this package; it
// does not let the pool outlive or alias a table entry beyond the
// snapshot's validity.
type churnEntry struct {
	index int32
	stamp int64 // magnitude of last_use at the time of the snapshot
	value string
}

// churnList is one of the two generation lists, kept sorted ascending by
// stamp so its front is always the oldest (most eviction-worthy) member
// and its back is always the newest member still tracked.
type churnList struct {
	entries []churnEntry
}

func (l *churnList) len() int { return len(l.entries) }

func (l *churnList) front() (churnEntry, bool) {
	if len(l.entries) == 0 {
		return churnEntry{}, false
	}
	return l.entries[0], true
}

func (l *churnList) removeFront() (churnEntry, bool) {
	if len(l.entries) == 0 {
		return churnEntry{}, false
	}
	e := l.entries[0]
	l.entries = append(l.entries[:0], l.entries[1:]...)
	return e, true
}

// removeStamp finds and removes the entry with the given stamp via binary
// search, per spec §4.2 "Churn-removal on hit": the table looks an entry
// up in its churn list by |last_use| when a hit lands on an in-churn
// entry, before refreshing its stamp.
func (l *churnList) removeStamp(stamp int64) (churnEntry, bool) {
	pos := sort.Search(len(l.entries), func(i int) bool { return l.entries[i].stamp >= stamp })
	if pos >= len(l.entries) || l.entries[pos].stamp != stamp {
		return churnEntry{}, false
	}
	e := l.entries[pos]
	l.entries = append(l.entries[:pos], l.entries[pos+1:]...)
	return e, true
}

// insert places e in sorted position. If the list is already at capacity
// and e is not older than the current maximum, e is rejected outright
// (inserted == false). If e is older than the maximum, the maximum is
// displaced to make room (spec §4.2 "Insertion of a candidate entry").
func (l *churnList) insert(e churnEntry) (displaced churnEntry, hadDisplaced bool, inserted bool) {
	if len(l.entries) < churnListCapacity {
		l.insertAt(e)
		return churnEntry{}, false, true
	}
	if len(l.entries) == 0 {
		return churnEntry{}, false, false
	}
	maxIdx := len(l.entries) - 1
	if e.stamp >= l.entries[maxIdx].stamp {
		return churnEntry{}, false, false
	}
	displaced = l.entries[maxIdx]
	l.entries = l.entries[:maxIdx]
	l.insertAt(e)
	return displaced, true, true
}

func (l *churnList) insertAt(e churnEntry) {
	pos := sort.Search(len(l.entries), func(i int) bool { return l.entries[i].stamp >= e.stamp })
	l.entries = append(l.entries, churnEntry{})
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = e
}

// churnPool is the two-generation LRU approximation described in spec
// §4.2: it holds candidate eviction victims without maintaining a full
// access-ordered list over the whole table.
type churnPool struct {
	gen0 churnList
	gen1 churnList
}

// regenerate rebuilds both generation lists from scratch by walking every
// live entry in t, classifying it by generation bit, and threading it
// into the corresponding list. Entries chosen into a list have their
// table-side stamp negated to mark churn-pool membership; entries
// considered but displaced during the walk (because a more eviction-worthy
// entry was found later) are restored to their original sign.
//
// It is triggered by eviction once both generation lists are empty (see
// selectVictim); while generation-1 still holds entries, victims are
// taken from it instead.
func (cp *churnPool) regenerate(t *Table) {
	cp.gen0 = churnList{}
	cp.gen1 = churnList{}

	for i := range t.entries {
		e := &t.entries[i]
		if isFreeSlot(e) {
			continue
		}
		if inChurn(e.lastUse) {
			// Already tracked; regeneration does not reconsider it.
			continue
		}
		stamp := e.lastUse
		gen := generation(stamp)
		cand := churnEntry{index: int32(i), stamp: stamp, value: e.value}

		list := &cp.gen0
		if gen == 1 {
			list = &cp.gen1
		}
		displaced, hadDisplaced, inserted := list.insert(cand)
		if inserted {
			e.lastUse = markInChurn(e.lastUse)
		}
		if hadDisplaced {
			t.entries[displaced.index].lastUse = clearInChurn(t.entries[displaced.index].lastUse)
		}
	}
}

// selectVictim returns the slot index of the entry the table should
// evict next, regenerating the pool first if both generations have run
// dry. Generation-0 (single-use entries) is preferred so that values seen
// only once are evicted before values that have been reused (spec §4.1
// "Eviction at capacity").
//
// A popped front is validated against the live table before being
// trusted: the table's entry at that slot may since have been freed (by
// an explicit Remove) or, via free-list reuse, now hold an unrelated
// value. Spec §9 describes the churn pool as holding a `(last_use,
// value)` snapshot used "as a lookup key rather than a pointer" for
// exactly this reason; a stale snapshot is simply discarded and the next
// front tried instead.
func (cp *churnPool) selectVictim(t *Table) (int32, bool) {
	for {
		if cp.gen0.len() == 0 && cp.gen1.len() == 0 {
			cp.regenerate(t)
		}
		e, ok := cp.gen0.removeFront()
		if !ok {
			e, ok = cp.gen1.removeFront()
		}
		if !ok {
			return 0, false
		}
		if cp.stillLive(t, e) {
			return e.index, true
		}
	}
}

// stillLive reports whether a churn snapshot still names the live entry
// it was taken from.
func (cp *churnPool) stillLive(t *Table, e churnEntry) bool {
	if e.index < 0 || int(e.index) >= len(t.entries) {
		return false
	}
	live := &t.entries[e.index]
	return !isFreeSlot(live) && live.value == e.value
}

// removeOnHit drops an entry's snapshot from whichever churn list
// currently holds it, given its still-negated last-use stamp, because
// the entry was just refreshed by a hit and is no longer an eviction
// candidate (spec §4.2 "Churn-removal on hit"). The caller overwrites
// the entry's own stamp immediately after, so no sign restoration is
// needed here.
func (cp *churnPool) removeOnHit(lastUse int64) {
	list := &cp.gen0
	if generation(lastUse) == 1 {
		list = &cp.gen1
	}
	list.removeStamp(magnitude(lastUse))
}
