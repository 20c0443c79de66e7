package internpool

// TrimLevel parametrizes how aggressively Table.Trim evicts stale
// entries during a background sweep (spec §4.1 "Trim").
type TrimLevel int

const (
	TrimMinor TrimLevel = iota
	TrimMedium
	TrimMajor
)

// maxInt64 stands in for "never evict on distance alone" when a trim
// level's generation-1 threshold is unbounded (minor trim, spec §4.1).
const maxInt64 = int64(1<<63 - 1)

func trimDistances(level TrimLevel, count int) (maxGen0, maxGen1 int64) {
	c := int64(count)
	switch level {
	case TrimMinor:
		return (c + c/2) * 2, maxInt64
	case TrimMedium:
		return c * 2, c * 2 * 2
	case TrimMajor:
		return c * 2, c * 2
	default:
		return c * 2, c * 2
	}
}

// Trim evicts entries whose distance from the table's current use
// counter exceeds the level-dependent threshold, or that are already
// marked in-churn. Survivors are compacted to the front of the entry
// array and the bucket chains are rebuilt (spec §4.1 "Trim").
func (t *Table) Trim(level TrimLevel) {
	maxGen0, maxGen1 := trimDistances(level, t.count)

	newEntries := make([]entry, len(t.entries))
	n := int32(0)
	for i := range t.entries {
		if i >= int(t.nextSlot) {
			break
		}
		e := &t.entries[i]
		if isFreeSlot(e) {
			continue
		}

		evict := false
		switch {
		case inChurn(e.lastUse):
			evict = true
		case generation(e.lastUse) == 0:
			evict = t.currentUse-magnitude(e.lastUse) > maxGen0
		default:
			evict = t.currentUse-magnitude(e.lastUse) > maxGen1
		}

		if evict {
			t.evicted++
			t.count--
			continue
		}
		newEntries[n] = *e
		n++
	}

	t.entries = newEntries
	t.buckets = make([]int32, len(t.entries))
	t.bucketsMul = fastModMultiplier(uint32(len(t.entries)))
	t.freeHead = -1
	t.freeCount = 0
	t.nextSlot = n
	t.rebuildBuckets()

	// Surviving churn-pool snapshots may reference indices that just
	// moved or stamps for entries that no longer exist; the pool is
	// cheap to rebuild lazily on the next eviction.
	t.churn = churnPool{}
}
