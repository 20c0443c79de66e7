package internpool

// entry is one slot in the table's parallel entry array. Slots are reused
// via a free-list threaded through next, so a live entry and a free slot
// share the same Go struct; which interpretation applies is determined by
// the table's freeHead bookkeeping and by next's own sign, per spec §3/§4.1.
type entry struct {
	hash    int32
	next    int32 // chain successor (>= -1) when live, free-list encoding (< -1) when free
	value   string
	lastUse int64 // magnitude: use-order stamp. sign: in churn pool. low bit: generation.
}

// startOfFreeList mirrors the encoding spec §3 invariant 5 describes:
// entries[i].next == startOfFreeList - j means slot i's free-list
// successor is slot j; j == -1 terminates the list.
const startOfFreeList = int32(-3)

func freeListNext(e *entry) int32 {
	return startOfFreeList - e.next
}

func setFreeListNext(e *entry, next int32) {
	e.next = startOfFreeList - next
}

func isFreeSlot(e *entry) bool {
	return e.next < -1
}

// generation returns 0 for an entry seen only on insert, 1 for an entry
// that has been hit since. Negating a last-use stamp to mark it "in
// churn" never changes this bit: two's-complement negation preserves
// parity, so the generation survives the churn-pool sign flip untouched.
func generation(lastUse int64) int {
	return int(lastUse & 1)
}

// inChurn reports whether the entry's last-use stamp is currently negated
// to mark its presence in one of the two churn-pool lists (spec §3
// invariant 4, §4.2).
func inChurn(lastUse int64) bool {
	return lastUse < 0
}

func magnitude(lastUse int64) int64 {
	if lastUse < 0 {
		return -lastUse
	}
	return lastUse
}

// markInChurn negates a stamp to record churn-pool membership; it is a
// no-op if the stamp is already negative.
func markInChurn(lastUse int64) int64 {
	if lastUse < 0 {
		return lastUse
	}
	return -lastUse
}

// clearInChurn restores a stamp's sign after the entry leaves the churn
// pool (by being hit, or by being chosen as a victim).
func clearInChurn(lastUse int64) int64 {
	return magnitude(lastUse)
}
